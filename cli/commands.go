package cli

import (
	"io"
	"os"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing and token count telemetry on stderr."`

	// Stdin replaces os.Stdin for commands reading "-".
	Stdin io.Reader `kong:"-"`
}

func (g *Globals) stdin() io.Reader {
	if g.Stdin != nil {
		return g.Stdin
	}
	return os.Stdin
}

type Commands struct {
	Globals

	Lex       LexCmd       `cmd:"" help:"Show primitive tokens of a source file."`
	Tokens    TokensCmd    `cmd:"" help:"Show reclassified tokens of a source file."`
	Highlight HighlightCmd `cmd:"" help:"Render source files with syntax highlighting."`
	Check     CheckCmd     `cmd:"" help:"Report characters the scanner does not recognize."`
	Serve     ServeCmd     `cmd:"" help:"Serve a live-reloading highlighted preview of a file."`
	Theme     ThemeCmd     `cmd:"" help:"Manage highlighting themes."`
}
