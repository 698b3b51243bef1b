package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	lumenkit "github.com/lumen-language/Lumen-Kit"
	"github.com/lumen-language/Lumen-Kit/output"
	"github.com/lumen-language/Lumen-Kit/style"
	"github.com/lumen-language/Lumen-Kit/telemetry"
	"github.com/lumen-language/Lumen-Kit/watch"
)

// HighlightCmd renders source files with syntax highlighting.
type HighlightCmd struct {
	Files  []string `help:"Source files to highlight (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format string   `help:"Output format (${enum})." enum:"ansi,html" default:"ansi" short:"f"`
	Theme  string   `help:"TOML theme file (see 'theme init')." env:"LUMENKIT_THEME" type:"path"`
	Color  string   `help:"When to emit ANSI colors (${enum})." enum:"auto,always,never" default:"auto" env:"LUMENKIT_COLOR"`
	Watch  bool     `help:"Re-render a single file whenever it changes." short:"w"`
}

// Run executes the highlight command.
func (cmd *HighlightCmd) Run(ctx *kong.Context, globals *Globals) error {
	files := cmd.Files
	if len(files) == 0 {
		files = []string{"-"}
	}
	if cmd.Watch && (len(files) != 1 || files[0] == "-") {
		return fmt.Errorf("--watch needs exactly one file")
	}
	if err := checkSingleStdin(files); err != nil {
		return err
	}

	opts, err := cmd.options(ctx.Stdout)
	if err != nil {
		return err
	}

	runCtx, timer, report := startTelemetry(ctx, globals, "highlight")
	defer report()

	sources, err := cmd.highlightAll(runCtx, timer, globals.stdin(), files, opts)
	if err != nil {
		return err
	}
	for i, out := range sources {
		if len(sources) > 1 && cmd.Format == "ansi" {
			if i > 0 {
				_, _ = fmt.Fprintln(ctx.Stdout)
			}
			_, _ = fmt.Fprintln(ctx.Stdout, pathStyle.Render("==> "+files[i]+" <=="))
		}
		if _, err := ctx.Stdout.Write(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if !cmd.Watch {
		return nil
	}
	report()

	watchCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	file := files[0]
	printInfof(ctx.Stderr, "Watching %s (Ctrl+C to stop)", pathStyle.Render(file))
	return watch.File(watchCtx, file, func() {
		out, err := cmd.highlight(watchCtx, nil, file, opts)
		if err != nil {
			log.Printf("Failed to highlight %s: %v", file, err)
			return
		}
		if cmd.Format == "ansi" && isTerminal(ctx.Stdout) {
			termenv.NewOutput(ctx.Stdout).ClearScreen()
		}
		_, _ = ctx.Stdout.Write(out)
	})
}

func checkSingleStdin(files []string) error {
	seen := false
	for _, f := range files {
		if f != "-" {
			continue
		}
		if seen {
			return fmt.Errorf("stdin ('-') can only be given once")
		}
		seen = true
	}
	return nil
}

// options resolves the theme and color flags into renderer options. In auto
// mode colors are used only when stdout is a terminal, at the profile the
// environment reports for it.
func (cmd *HighlightCmd) options(stdout io.Writer) ([]output.Option, error) {
	var opts []output.Option

	if cmd.Theme != "" {
		theme, err := style.LoadTheme(cmd.Theme)
		if err != nil {
			return nil, err
		}
		opts = append(opts, output.WithTheme(theme))
	}

	mode, err := output.ParseColorMode(cmd.Color)
	if err != nil {
		return nil, err
	}
	switch {
	case mode != output.ColorAuto:
		opts = append(opts, output.WithColor(mode))
	case isTerminal(stdout):
		opts = append(opts, output.WithProfile(termenv.NewOutput(stdout).EnvColorProfile()))
	default:
		opts = append(opts, output.WithColor(output.ColorNever))
	}
	return opts, nil
}

// highlightAll renders files concurrently and returns their output in
// argument order. The first failure cancels the rest.
func (cmd *HighlightCmd) highlightAll(ctx context.Context, parent telemetry.Timer, stdin io.Reader, files []string, opts []output.Option) ([][]byte, error) {
	out := make([][]byte, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			timer := parent.Child(file)
			defer timer.End()

			var err error
			out[i], err = cmd.highlight(gctx, stdin, file, opts)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (cmd *HighlightCmd) highlight(ctx context.Context, stdin io.Reader, file string, opts []output.Option) ([]byte, error) {
	src := FileOrStdin{Filename: file}
	contents, err := src.Read(stdin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	var buf bytes.Buffer
	if cmd.Format == "html" {
		err = lumenkit.HighlightHTML(ctx, contents, &buf, opts...)
	} else {
		err = lumenkit.Highlight(ctx, contents, &buf, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
	}
	return buf.Bytes(), nil
}
