// Package output renders reclassified token streams for people: ANSI
// escapes for terminals and inline-styled HTML for documents.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/lumen-language/Lumen-Kit/style"
)

// ColorMode selects whether terminal output carries escape sequences.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a --color flag value.
func ParseColorMode(v string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(v))) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	}
	return "", fmt.Errorf("invalid color mode %q (use auto, always or never)", v)
}

type options struct {
	theme   *style.Theme
	color   ColorMode
	profile *termenv.Profile
}

// Option configures a renderer.
type Option func(*options)

// WithTheme sets the theme. The default theme is used otherwise.
func WithTheme(theme *style.Theme) Option {
	return func(o *options) {
		o.theme = theme
	}
}

// WithColor sets the color mode. Defaults to ColorAuto, which detects the
// terminal behind the writer and honors NO_COLOR and CLICOLOR_FORCE.
func WithColor(mode ColorMode) Option {
	return func(o *options) {
		o.color = mode
	}
}

// WithProfile fixes the terminal color profile, overriding WithColor. Use it
// when rendering into a buffer that is later copied to a terminal.
func WithProfile(profile termenv.Profile) Option {
	return func(o *options) {
		o.profile = &profile
	}
}

func newOptions(opts []Option) *options {
	o := &options{color: ColorAuto}
	for _, opt := range opts {
		opt(o)
	}
	if o.theme == nil {
		o.theme = style.DefaultTheme()
	}
	return o
}

// Styles applies theme styles to text for a terminal.
type Styles struct {
	output *termenv.Output
	theme  *style.Theme
}

// NewStyles creates Styles for the given writer.
func NewStyles(w io.Writer, opts ...Option) *Styles {
	o := newOptions(opts)

	var termOpts []termenv.OutputOption
	switch {
	case o.profile != nil:
		termOpts = append(termOpts, termenv.WithProfile(*o.profile))
	case o.color == ColorAlways:
		termOpts = append(termOpts, termenv.WithProfile(termenv.TrueColor))
	case o.color == ColorNever:
		termOpts = append(termOpts, termenv.WithProfile(termenv.Ascii))
	}

	return &Styles{
		output: termenv.NewOutput(w, termOpts...),
		theme:  o.theme,
	}
}

// Render styles text with the combined attributes of keys.
func (s *Styles) Render(text string, keys []style.Key) string {
	if len(keys) == 0 {
		return text
	}
	return s.Apply(text, s.theme.Attributes(keys))
}

// Apply styles text with attrs. Multi-line text is styled line by line so
// that every line stands on its own in pagers and diffs.
func (s *Styles) Apply(text string, attrs style.Attributes) string {
	if attrs.IsZero() || text == "" {
		return text
	}
	if !strings.Contains(text, "\n") {
		return s.apply(text, attrs)
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = s.apply(line, attrs)
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Styles) apply(text string, attrs style.Attributes) string {
	st := s.output.String(text)
	if c := s.color(attrs.Foreground); c != nil {
		st = st.Foreground(c)
	}
	if c := s.color(attrs.Background); c != nil {
		st = st.Background(c)
	}
	if attrs.Bold {
		st = st.Bold()
	}
	if attrs.Italic {
		st = st.Italic()
	}
	if attrs.Underline {
		st = st.Underline()
	}
	if attrs.Faint {
		st = st.Faint()
	}
	return st.String()
}

// color converts a theme color for the output's profile. Invalid colors
// yield nil.
func (s *Styles) color(v string) termenv.Color {
	if !style.ValidColor(v) {
		return nil
	}
	return s.output.Color(v)
}

// Keyword returns text in the theme's keyword style, bold.
func (s *Styles) Keyword(text string) string {
	attrs := s.theme.Styles[style.Keyword]
	attrs.Bold = true
	return s.apply(text, attrs)
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.output.String(text).Faint().String()
}

// Warning returns text in the theme's unrecognized-token style.
func (s *Styles) Warning(text string) string {
	return s.Render(text, []style.Key{style.Unrecognized})
}

// Theme returns the theme in use.
func (s *Styles) Theme() *style.Theme {
	return s.theme
}

// Output returns the underlying termenv Output for advanced usage.
func (s *Styles) Output() *termenv.Output {
	return s.output
}
