package style

import (
	"bytes"
	stdErrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"golang.org/x/exp/slices"

	"github.com/lumen-language/Lumen-Kit/lexer"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		typ  lexer.TokenType
		want []Key
	}{
		{lexer.KEYWORD, []Key{Keyword}},
		{lexer.CALLABLE, []Key{Callable}},
		{lexer.CALLABLE_KEYWORD, []Key{Callable, Keyword}},
		{lexer.QUOTED_SYMBOL, []Key{QuotedSymbol}},
		{lexer.DATA_READER_TAG, []Key{DataReader}},
		{lexer.METADATA_HAT_SYMBOL, []Key{Metadata}},
		{lexer.SHARP, []Key{ReaderMacro}},
		{lexer.RATIO, []Key{Number}},
		{lexer.NIL, []Key{Literal}},
		{lexer.UNRECOGNIZED, []Key{Unrecognized}},
		{lexer.SYMBOL, nil},
		{lexer.WHITESPACE, nil},
		{lexer.EOF, nil},
		{lexer.TokenType(250), nil},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.typ))
		})
	}
}

func TestResolveIsTotal(t *testing.T) {
	for _, typ := range lexer.TokenTypes() {
		for _, k := range Resolve(typ) {
			assert.True(t, IsKnown(k), "%s resolves to unknown key %q", typ, k)
		}
	}
}

func TestDefaultThemeCoversKeys(t *testing.T) {
	theme := DefaultTheme()
	for _, k := range Keys() {
		_, ok := theme.Styles[k]
		assert.True(t, ok, "default theme has no style for %q", k)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.True(t, slices.IsSorted(keys))
	assert.True(t, IsKnown(Comma))
	assert.False(t, IsKnown(Key("commas")))

	// callers get their own copy
	keys[0] = "mutated"
	assert.NotEqual(t, Key("mutated"), Keys()[0])
	for _, k := range Keys() {
		assert.True(t, IsKnown(k), "%q", k)
	}
}

func TestThemeAttributesMerge(t *testing.T) {
	theme := &Theme{Styles: map[Key]Attributes{
		Callable: {Foreground: "1", Bold: true},
		Keyword:  {Foreground: "2", Italic: true},
	}}

	got := theme.Attributes(Resolve(lexer.CALLABLE_KEYWORD))
	assert.Equal(t, Attributes{Foreground: "2", Bold: true, Italic: true}, got)

	assert.True(t, theme.Attributes(nil).IsZero())
	assert.True(t, theme.Attributes([]Key{Comment}).IsZero())
}

func TestDecodeTheme(t *testing.T) {
	t.Run("overlays default", func(t *testing.T) {
		theme, err := DecodeTheme(strings.NewReader(`
name = "mono"

[styles.keyword]
bold = true

[styles.callable]
foreground = "#FFFFFF"
underline = true
`))
		assert.NoError(t, err)
		assert.Equal(t, "mono", theme.Name)
		assert.Equal(t, Attributes{Bold: true}, theme.Styles[Keyword])
		assert.Equal(t, Attributes{Foreground: "#FFFFFF", Underline: true}, theme.Styles[Callable])
		assert.Equal(t, DefaultTheme().Styles[String], theme.Styles[String])
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := DecodeTheme(strings.NewReader("[styles.keywrod]\nbold = true\n[styles.zzz]\n"))
		var keyErr *UnknownKeyError
		assert.True(t, stdErrors.As(err, &keyErr))
		assert.Equal(t, []string{"keywrod", "zzz"}, keyErr.Keys)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := DecodeTheme(strings.NewReader("[styles.keyword]\ncolour = \"red\"\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "colour")
	})

	t.Run("invalid color", func(t *testing.T) {
		for _, c := range []string{"red", "#12345", "#GGGGGG", "256", "-1"} {
			_, err := DecodeTheme(strings.NewReader("[styles.keyword]\nforeground = \"" + c + "\"\n"))
			assert.Error(t, err, c)
			assert.Contains(t, err.Error(), "styles.keyword")
		}

		theme, err := DecodeTheme(strings.NewReader("[styles.keyword]\nforeground = \"208\"\nbackground = \"#00aaFF\"\n"))
		assert.NoError(t, err)
		assert.Equal(t, Attributes{Foreground: "208", Background: "#00aaFF"}, theme.Styles[Keyword])
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeTheme(strings.NewReader("[styles.keyword\n"))
		assert.Error(t, err)
	})
}

func TestThemeEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, DefaultTheme().Encode(&buf))
	for _, k := range Keys() {
		assert.Contains(t, buf.String(), "[styles."+string(k)+"]")
	}

	theme, err := DecodeTheme(&buf)
	assert.NoError(t, err)
	assert.Equal(t, DefaultTheme(), theme)
}

func TestLoadTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.toml")
	assert.NoError(t, os.WriteFile(path, []byte("[styles.comment]\nfaint = true\n"), 0600))

	theme, err := LoadTheme(path)
	assert.NoError(t, err)
	assert.Equal(t, Attributes{Faint: true}, theme.Styles[Comment])

	_, err = LoadTheme(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestThemeClone(t *testing.T) {
	theme := DefaultTheme()
	clone := theme.Clone()
	clone.Styles[Keyword] = Attributes{}
	assert.NotEqual(t, theme.Styles[Keyword], clone.Styles[Keyword])
}
