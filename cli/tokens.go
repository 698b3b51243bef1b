package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/lumen-language/Lumen-Kit/lexer"
	"github.com/lumen-language/Lumen-Kit/output"
	"github.com/lumen-language/Lumen-Kit/telemetry"
)

// LexCmd shows primitive tokens, before reclassification.
type LexCmd struct {
	File   FileOrStdin `help:"Source filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format string      `help:"Output format (${enum})." enum:"text,json,msgpack" default:"text" short:"f"`
}

// Run executes the lex command.
func (cmd *LexCmd) Run(ctx *kong.Context, globals *Globals) error {
	return dumpTokens(ctx, globals, &cmd.File, cmd.Format, "lex", func(src []byte, filename string) lexer.Stream {
		return lexer.NewScanner(src, filename)
	})
}

// TokensCmd shows the tokens a highlighter sees.
type TokensCmd struct {
	File   FileOrStdin `help:"Source filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format string      `help:"Output format (${enum})." enum:"text,json,msgpack" default:"text" short:"f"`
}

// Run executes the tokens command.
func (cmd *TokensCmd) Run(ctx *kong.Context, globals *Globals) error {
	return dumpTokens(ctx, globals, &cmd.File, cmd.Format, "tokens", func(src []byte, filename string) lexer.Stream {
		return lexer.NewReclassifier(lexer.NewScanner(src, filename))
	})
}

func dumpTokens(ctx *kong.Context, globals *Globals, file *FileOrStdin, format, name string, open func([]byte, string) lexer.Stream) error {
	src, err := file.Read(globals.stdin())
	if err != nil {
		return err
	}

	runCtx, timer, report := startTelemetry(ctx, globals, fmt.Sprintf("%s %s", name, filepath.Base(file.Filename)))
	defer report()

	scanTimer := timer.Child("scan")
	tokens, err := lexer.CollectContext(runCtx, telemetry.CountTokens(runCtx, open(src, file.Filename)))
	scanTimer.End()
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return output.WriteJSON(ctx.Stdout, src, tokens)
	case "msgpack":
		return output.WriteMsgpack(ctx.Stdout, src, tokens)
	default:
		writeTokenTable(ctx.Stdout, src, tokens)
		return nil
	}
}

// writeTokenTable writes one token per line as: TYPE line:col "text".
// EOF is omitted.
func writeTokenTable(w io.Writer, src []byte, tokens []lexer.Token) {
	typeWidth, posWidth := 0, 0
	for _, tok := range tokens {
		typeWidth = max(typeWidth, runewidth.StringWidth(tok.Type.String()))
		posWidth = max(posWidth, len(position(tok)))
	}

	for _, tok := range tokens {
		if tok.Type == lexer.EOF {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s %s %q\n",
			runewidth.FillRight(tok.Type.String(), typeWidth),
			runewidth.FillRight(position(tok), posWidth),
			tok.String(src))
	}
}

func position(tok lexer.Token) string {
	return fmt.Sprintf("%d:%d", tok.Line, tok.Column)
}
