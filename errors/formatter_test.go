package errors

import (
	"encoding/json"
	stdErrors "errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/lumen-language/Lumen-Kit/lexer"
)

func find(src string) []error {
	return Find("core.clj", []byte(src), lexer.NewReclassifier(lexer.NewScanner([]byte(src), "core.clj")))
}

func TestFind(t *testing.T) {
	errs := find("(foo |\n  bar \xff\xfe| baz)")
	assert.Equal(t, 2, len(errs))

	var first *UnrecognizedError
	assert.True(t, stdErrors.As(errs[0], &first))
	assert.Equal(t, Position{Filename: "core.clj", Offset: 5, Line: 1, Column: 6}, first.Pos)
	assert.Equal(t, "|", first.Text)
	assert.Equal(t, `core.clj:1:6: unrecognized character "|"`, first.Error())

	second := errs[1].(*UnrecognizedError)
	assert.Equal(t, Position{Filename: "core.clj", Offset: 13, Line: 2, Column: 7}, second.Pos)
	assert.Equal(t, "\xff\xfe|", second.Text)
	assert.Equal(t, `core.clj:2:7: unrecognized byte "\xff\xfe|"`, second.Error())
}

func TestFindClean(t *testing.T) {
	assert.Equal(t, 0, len(find("(defn f [x] (inc x))")))
	assert.Equal(t, 0, len(find("")))
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "3:4", Position{Line: 3, Column: 4}.String())
	assert.Equal(t, "a.clj:3:4", Position{Filename: "a.clj", Line: 3, Column: 4}.String())
}

func TestTextFormatter_Format(t *testing.T) {
	src := "(ns app)\n\n(foo |bar)\n"
	errs := find(src)
	assert.Equal(t, 1, len(errs))

	t.Run("without source", func(t *testing.T) {
		assert.Equal(t, `core.clj:3:6: unrecognized character "|"`, NewTextFormatter().Format(errs[0]))
	})

	t.Run("with source", func(t *testing.T) {
		got := NewTextFormatter(WithSource([]byte(src))).Format(errs[0])
		want := "core.clj:3:6: unrecognized character \"|\"\n\n" +
			"   \n" +
			"   (foo |bar)\n" +
			"        ^\n"
		assert.Equal(t, want, got)
	})

	t.Run("more context", func(t *testing.T) {
		got := NewTextFormatter(WithSource([]byte(src)), WithContextLines(5)).Format(errs[0])
		want := "core.clj:3:6: unrecognized character \"|\"\n\n" +
			"   (ns app)\n" +
			"   \n" +
			"   (foo |bar)\n" +
			"        ^\n"
		assert.Equal(t, want, got)
	})

	t.Run("plain error", func(t *testing.T) {
		err := stdErrors.New("boom")
		assert.Equal(t, "boom", NewTextFormatter(WithSource([]byte(src))).Format(err))
	})

	t.Run("position out of range", func(t *testing.T) {
		err := &UnrecognizedError{Pos: Position{Line: 40, Column: 1}, Text: "|"}
		assert.Equal(t, err.Error(), NewTextFormatter(WithSource([]byte(src))).Format(err))
	})
}

func TestCaretPadding(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		column int
		want   string
	}{
		{"first column", "|x", 1, ""},
		{"ascii", "ab|", 3, "  "},
		{"tab", "\t(a |", 5, "\t   "},
		{"wide", "(世界 |", 5, "      "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, caretPadding(tt.line, tt.column))
		})
	}
}

func TestTextFormatter_FormatAll(t *testing.T) {
	errs := find("| |")
	assert.Equal(t, 2, len(errs))

	got := NewTextFormatter().FormatAll(errs)
	assert.Equal(t, "core.clj:1:1: unrecognized character \"|\"\n\ncore.clj:1:3: unrecognized character \"|\"", got)
	assert.Equal(t, "", NewTextFormatter().FormatAll(nil))
}

func TestJSONFormatter(t *testing.T) {
	errs := find("(a |)")
	jf := NewJSONFormatter()

	var single ErrorJSON
	assert.NoError(t, json.Unmarshal([]byte(jf.Format(errs[0])), &single))
	assert.Equal(t, ErrorJSON{
		Type:     "*errors.UnrecognizedError",
		Message:  `core.clj:1:4: unrecognized character "|"`,
		Position: &PositionJSON{Filename: "core.clj", Offset: 3, Line: 1, Column: 4},
		Details:  map[string]string{"text": "|"},
	}, single)

	var all []ErrorJSON
	assert.NoError(t, json.Unmarshal([]byte(jf.FormatAll(append(errs, stdErrors.New("boom")))), &all))
	assert.Equal(t, 2, len(all))
	assert.Equal(t, "boom", all[1].Message)
	assert.Zero(t, all[1].Position)

	assert.Equal(t, "[]", jf.FormatAll(nil))
}
