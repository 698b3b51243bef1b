package cli

import (
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/lumen-language/Lumen-Kit/errors"
	"github.com/lumen-language/Lumen-Kit/lexer"
	"github.com/lumen-language/Lumen-Kit/telemetry"
)

// CheckCmd reports source the scanner cannot classify.
type CheckCmd struct {
	File FileOrStdin `help:"Source filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	JSON bool        `help:"Print diagnostics as JSON on stdout."`
}

// Run executes the check command. It exits with status 1 when anything was
// reported.
func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	src, err := cmd.File.Read(globals.stdin())
	if err != nil {
		return err
	}

	runCtx, _, report := startTelemetry(ctx, globals, fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
	defer report()

	s := lexer.NewReclassifier(lexer.NewScanner(src, cmd.File.Filename))
	errs := errors.Find(cmd.File.Filename, src, telemetry.CountTokens(runCtx, s))

	if cmd.JSON {
		_, _ = fmt.Fprintln(ctx.Stdout, errors.NewJSONFormatter().FormatAll(errs))
		if len(errs) > 0 {
			return NewCommandError(1)
		}
		return nil
	}

	if len(errs) == 0 {
		printSuccess(ctx.Stdout, "Check passed")
		return nil
	}

	_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(src).RenderAll(errs))
	_, _ = fmt.Fprintln(ctx.Stderr)
	printError(ctx.Stderr, fmt.Sprintf("%d unrecognized character(s) found", len(errs)))
	return NewCommandError(1)
}
