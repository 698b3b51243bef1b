package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/lumen-language/Lumen-Kit/output"
	"github.com/lumen-language/Lumen-Kit/style"
)

// ThemeCmd groups theme utilities.
type ThemeCmd struct {
	Init ThemeInitCmd `cmd:"" help:"Write the default theme to a TOML file for editing."`
	Show ThemeShowCmd `cmd:"" help:"Print every style key in its style."`
}

// ThemeInitCmd writes the default theme.
type ThemeInitCmd struct {
	Path  string `help:"Destination file." arg:"" optional:"" default:"lumen-kit.toml" type:"path"`
	Force bool   `help:"Overwrite an existing file without asking." short:"f"`
}

// Run executes the theme init command.
func (cmd *ThemeInitCmd) Run(ctx *kong.Context, globals *Globals) error {
	path, err := filepath.Abs(cmd.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !cmd.Force {
		confirmed, err := promptYesNo(globals.stdin(), fmt.Sprintf("File %q exists. Overwrite it?", path))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", path)
		}
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to access file: %w", err)
	}

	var buf bytes.Buffer
	if err := style.DefaultTheme().Encode(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write theme: %w", err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Wrote theme to %s", pathStyle.Render(path)))
	return nil
}

// ThemeShowCmd previews a theme.
type ThemeShowCmd struct {
	Theme string `help:"TOML theme file (default theme if omitted)." env:"LUMENKIT_THEME" type:"path"`
	Color string `help:"When to emit ANSI colors (${enum})." enum:"auto,always,never" default:"auto" env:"LUMENKIT_COLOR"`
}

// Run executes the theme show command.
func (cmd *ThemeShowCmd) Run(ctx *kong.Context) error {
	highlight := HighlightCmd{Theme: cmd.Theme, Color: cmd.Color}
	opts, err := highlight.options(ctx.Stdout)
	if err != nil {
		return err
	}
	styles := output.NewStyles(ctx.Stdout, opts...)

	keys := style.Keys()
	width := 0
	for _, k := range keys {
		width = max(width, runewidth.StringWidth(string(k)))
	}

	_, _ = fmt.Fprintf(ctx.Stdout, "%s\n\n", styles.Keyword(styles.Theme().Name))
	for _, k := range keys {
		name := string(k)
		_, _ = fmt.Fprintf(ctx.Stdout, "  %s  %s\n",
			styles.Render(runewidth.FillRight(name, width), []style.Key{k}),
			styles.Dim(describe(styles.Theme().Styles[k])))
	}
	return nil
}

// describe summarizes attributes, e.g. "#5FAFFF bold".
func describe(a style.Attributes) string {
	var parts []string
	if a.Foreground != "" {
		parts = append(parts, a.Foreground)
	}
	if a.Background != "" {
		parts = append(parts, "on "+a.Background)
	}
	for _, flag := range []struct {
		set  bool
		name string
	}{{a.Bold, "bold"}, {a.Italic, "italic"}, {a.Underline, "underline"}, {a.Faint, "faint"}} {
		if flag.set {
			parts = append(parts, flag.name)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
