// Package cli implements the lumen-kit command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/lumen-language/Lumen-Kit/output"
	"github.com/lumen-language/Lumen-Kit/telemetry"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D7D7", Dark: "#00D7D7"})
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		fmt.Sprintf(format, args...),
	)
}

// promptYesNo asks a yes/no question. It answers false without asking when
// stdin is not a terminal.
func promptYesNo(stdin io.Reader, question string) (bool, error) {
	if !isTerminal(stdin) {
		return false, nil
	}

	var confirm bool
	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return confirm, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// startTelemetry installs a timing collector when --telemetry is set and
// starts the command's root timer. The returned function ends the timer
// and prints the report to stderr; it is safe to call more than once.
func startTelemetry(ctx *kong.Context, globals *Globals, name string) (context.Context, telemetry.Timer, func()) {
	runCtx := context.Background()
	if !globals.Telemetry {
		return runCtx, telemetry.FromContext(runCtx).Start(name), func() {}
	}

	collector := telemetry.NewTimingCollector()
	runCtx = telemetry.WithCollector(runCtx, collector)
	timer := collector.Start(name)

	done := false
	return runCtx, timer, func() {
		if done {
			return
		}
		done = true
		timer.End()
		_, _ = fmt.Fprintln(ctx.Stderr)
		collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
	}
}

// FileOrStdin accepts either a file path or "-" for stdin.
type FileOrStdin struct {
	Filename string
	Contents []byte
}

const stdinName = "<stdin>"

// Decode implements kong.MapperValue.
func (f *FileOrStdin) Decode(ctx *kong.DecodeContext) error {
	var filename string
	if err := ctx.Scan.PopValueInto("filename", &filename); err != nil {
		return err
	}
	f.Filename = filename
	return nil
}

// Read loads the contents, from stdin when no filename (or "-") was given.
func (f *FileOrStdin) Read(stdin io.Reader) ([]byte, error) {
	if f.Contents != nil {
		return f.Contents, nil
	}

	if f.Filename == "" || f.Filename == "-" || f.Filename == stdinName {
		contents, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		f.Filename = stdinName
		f.Contents = contents
		return contents, nil
	}

	contents, err := os.ReadFile(f.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	f.Contents = contents
	return contents, nil
}
