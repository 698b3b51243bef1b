package lumenkit

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/lumen-language/Lumen-Kit/lexer"
	"github.com/lumen-language/Lumen-Kit/output"
	"github.com/lumen-language/Lumen-Kit/telemetry"
)

func TestTokenize(t *testing.T) {
	src := []byte("(str/join :sep 'xs)")
	tokens := Tokenize(src)

	var types []lexer.TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []lexer.TokenType{
		lexer.LPAREN, lexer.CALLABLE, lexer.WHITESPACE, lexer.KEYWORD, lexer.WHITESPACE, lexer.QUOTE, lexer.QUOTED_SYMBOL, lexer.RPAREN, lexer.EOF,
	}, types)

	assert.Equal(t, "str/join", tokens[1].String(src))
	assert.Equal(t, tokens, lexer.Collect(Reclassify(src)))
}

func TestHighlight(t *testing.T) {
	src := []byte("(defn f [x]\n  (inc x)) ; done\n")

	var buf bytes.Buffer
	assert.NoError(t, Highlight(context.Background(), src, &buf, output.WithColor(output.ColorNever)))
	assert.Equal(t, string(src), buf.String())

	buf.Reset()
	assert.NoError(t, Highlight(context.Background(), src, &buf, output.WithColor(output.ColorAlways)))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestHighlightHTML(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, HighlightHTML(context.Background(), []byte("(inc 1)"), &buf))
	assert.True(t, strings.HasPrefix(buf.String(), `<pre class="lumen-kit">`))
	assert.Contains(t, buf.String(), `>inc</span>`)
}

func TestHighlightCountsTokens(t *testing.T) {
	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)

	var buf bytes.Buffer
	assert.NoError(t, Highlight(ctx, []byte("(a :b)"), &buf, output.WithColor(output.ColorNever)))
	assert.Equal(t, map[string]int{
		"(":          1,
		"CALLABLE":   1,
		"WHITESPACE": 1,
		"KEYWORD":    1,
		")":          1,
	}, collector.Counts())
}
