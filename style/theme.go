package style

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Attributes describes how a styled token is presented. Colors are either
// hex ("#5FAFFF") or ANSI palette indexes ("4", "208"); empty means inherit.
type Attributes struct {
	Foreground string `toml:"foreground,omitempty"`
	Background string `toml:"background,omitempty"`
	Bold       bool   `toml:"bold,omitempty"`
	Italic     bool   `toml:"italic,omitempty"`
	Underline  bool   `toml:"underline,omitempty"`
	Faint      bool   `toml:"faint,omitempty"`
}

// IsZero reports whether a carries no styling at all.
func (a Attributes) IsZero() bool {
	return a == Attributes{}
}

// merge overlays o on a: set colors replace, flags accumulate.
func (a Attributes) merge(o Attributes) Attributes {
	if o.Foreground != "" {
		a.Foreground = o.Foreground
	}
	if o.Background != "" {
		a.Background = o.Background
	}
	a.Bold = a.Bold || o.Bold
	a.Italic = a.Italic || o.Italic
	a.Underline = a.Underline || o.Underline
	a.Faint = a.Faint || o.Faint
	return a
}

func (a Attributes) validate() error {
	for _, c := range []string{a.Foreground, a.Background} {
		if c != "" && !ValidColor(c) {
			return fmt.Errorf("invalid color %q (use #RRGGBB or an ANSI index 0-255)", c)
		}
	}
	return nil
}

// ValidColor reports whether c is a "#RRGGBB" hex color or an ANSI palette
// index between 0 and 255.
func ValidColor(c string) bool {
	if hex, ok := strings.CutPrefix(c, "#"); ok {
		if len(hex) != 6 {
			return false
		}
		_, err := strconv.ParseUint(hex, 16, 32)
		return err == nil
	}
	n, err := strconv.Atoi(c)
	return err == nil && n >= 0 && n <= 255
}

// Theme assigns attributes to style keys.
type Theme struct {
	Name   string
	Styles map[Key]Attributes
}

// UnknownKeyError reports style keys in a theme file that no token can carry.
type UnknownKeyError struct {
	Keys []string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown style key(s): %s", strings.Join(e.Keys, ", "))
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "default",
		Styles: map[Key]Attributes{
			Keyword:      {Foreground: "#AF87FF"},
			Callable:     {Foreground: "#5FAFFF", Bold: true},
			String:       {Foreground: "#87D75F"},
			Character:    {Foreground: "#87D75F"},
			Number:       {Foreground: "#FFAF5F"},
			Literal:      {Foreground: "#FF8787"},
			Comment:      {Foreground: "#808080", Italic: true},
			QuotedSymbol: {Foreground: "#00D7D7"},
			DataReader:   {Foreground: "#D787AF"},
			Metadata:     {Foreground: "#D7AF5F", Italic: true},
			ReaderMacro:  {Foreground: "#D7AF5F"},
			Qualifier:    {Faint: true},
			Comma:        {Faint: true},
			Paren:        {Faint: true},
			Brace:        {Faint: true},
			Bracket:      {Faint: true},
			Unrecognized: {Foreground: "#FFFFFF", Background: "#FF5F87"},
		},
	}
}

// Attributes combines the attributes of keys in order. Keys missing from
// the theme contribute nothing.
func (t *Theme) Attributes(keys []Key) Attributes {
	var attrs Attributes
	for _, k := range keys {
		attrs = attrs.merge(t.Styles[k])
	}
	return attrs
}

// Clone returns a deep copy of the theme.
func (t *Theme) Clone() *Theme {
	return &Theme{Name: t.Name, Styles: maps.Clone(t.Styles)}
}

// themeFile is the TOML layout of a theme:
//
//	name = "solarized"
//
//	[styles.keyword]
//	foreground = "#268BD2"
//	bold = true
type themeFile struct {
	Name   string                `toml:"name,omitempty"`
	Styles map[string]Attributes `toml:"styles"`
}

// LoadTheme reads a TOML theme file and overlays it on the default theme.
func LoadTheme(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open theme: %w", err)
	}
	defer func() { _ = f.Close() }()

	theme, err := DecodeTheme(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return theme, nil
}

// DecodeTheme parses a TOML theme and overlays it on the default theme.
// Styles given in the file replace the default for that key entirely.
func DecodeTheme(r io.Reader) (*Theme, error) {
	var file themeFile
	meta, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unsupported theme field %q", undecoded[0].String())
	}

	var unknown []string
	for name := range file.Styles {
		if !IsKnown(Key(name)) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, &UnknownKeyError{Keys: unknown}
	}

	for name, attrs := range file.Styles {
		if err := attrs.validate(); err != nil {
			return nil, fmt.Errorf("styles.%s: %w", name, err)
		}
	}

	theme := DefaultTheme()
	if file.Name != "" {
		theme.Name = file.Name
	}
	for name, attrs := range file.Styles {
		theme.Styles[Key(name)] = attrs
	}
	return theme, nil
}

// Encode writes the theme as TOML, styles sorted by key.
func (t *Theme) Encode(w io.Writer) error {
	file := themeFile{
		Name:   t.Name,
		Styles: make(map[string]Attributes, len(t.Styles)),
	}
	for k, attrs := range t.Styles {
		file.Styles[string(k)] = attrs
	}
	if err := toml.NewEncoder(w).Encode(file); err != nil {
		return fmt.Errorf("failed to encode theme: %w", err)
	}
	return nil
}
