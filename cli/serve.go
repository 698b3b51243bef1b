package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/lumen-language/Lumen-Kit/output"
	"github.com/lumen-language/Lumen-Kit/style"
	"github.com/lumen-language/Lumen-Kit/web"
)

// ServeCmd serves a live-reloading highlighted preview of a file.
type ServeCmd struct {
	File     string `help:"Source file to preview." arg:"" type:"path"`
	Port     int    `help:"Port to listen on." default:"8080"`
	Theme    string `help:"TOML theme file (see 'theme init')." env:"LUMENKIT_THEME" type:"path"`
	NoWatch  bool   `help:"Do not reload the page when the file changes."`
	ReadOnly bool   `help:"Reject edits through the API." short:"r"`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	file, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("failed to access file: %w", err)
	}

	var opts []output.Option
	if cmd.Theme != "" {
		theme, err := style.LoadTheme(cmd.Theme)
		if err != nil {
			return err
		}
		opts = append(opts, output.WithTheme(theme))
	}

	runCtx, _, report := startTelemetry(ctx, globals, "serve")
	defer report()

	runCtx, stop := signal.NotifyContext(runCtx, os.Interrupt)
	defer stop()

	server := cmd.server(file, opts)

	printInfof(ctx.Stdout, "Starting server on http://%s:%d", server.Host, server.Port)
	printInfof(ctx.Stdout, "Serving %s", pathStyle.Render(file))
	if cmd.ReadOnly {
		printInfof(ctx.Stdout, "Server running in READ-ONLY mode")
	}

	return server.Start(runCtx)
}

func (cmd *ServeCmd) server(file string, opts []output.Option) *web.Server {
	server := web.New(cmd.Port, file, opts...)
	server.ReadOnly = cmd.ReadOnly
	server.WatchEnabled = !cmd.NoWatch
	return server
}
