package lexer

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func newTestLookahead(types ...TokenType) *lookahead {
	tokens := make([]Token, len(types))
	for i, typ := range types {
		tokens[i] = Token{Type: typ, Start: i * 2, End: i*2 + 2, Line: 1, Column: i*2 + 1}
	}
	return newLookahead(NewSliceStream(tokens))
}

func TestLookaheadEmitAs(t *testing.T) {
	b := newTestLookahead(SYMBOL, WHITESPACE)

	assert.Equal(t, SYMBOL, b.currentLookahead().Type)
	b.advanceRaw()
	assert.Equal(t, WHITESPACE, b.currentLookahead().Type)
	assert.Equal(t, 1, b.pending())

	b.emitAs(CALLABLE)
	assert.Equal(t, 0, b.pending())

	tok, ok := b.head()
	assert.True(t, ok)
	assert.Equal(t, Token{Type: CALLABLE, Start: 0, End: 2, Line: 1, Column: 1}, tok)
}

func TestLookaheadEmitCollapsedAs(t *testing.T) {
	b := newTestLookahead(COLON, SYMBOL, SLASH, SYMBOL, WHITESPACE)
	for i := 0; i < 4; i++ {
		b.advanceRaw()
	}

	b.emitCollapsedAs(KEYWORD, 4)

	tok, ok := b.head()
	assert.True(t, ok)
	assert.Equal(t, Token{Type: KEYWORD, Start: 0, End: 8, Line: 1, Column: 1}, tok)

	b.pop()
	_, ok = b.head()
	assert.False(t, ok, "collapsed tokens must not surface separately")
}

func TestLookaheadSurfacesInConsumptionOrder(t *testing.T) {
	b := newTestLookahead(COLON, SYMBOL, SLASH)
	b.advanceRaw()
	b.advanceRaw()
	b.advanceRaw()

	b.emitCollapsedAs(KEYWORD, 2)
	b.pass()

	first, _ := b.head()
	b.pop()
	second, _ := b.head()

	assert.Equal(t, KEYWORD, first.Type)
	assert.Equal(t, SLASH, second.Type)
	assert.Equal(t, first.End, second.Start)
}

func TestLookaheadPassLayout(t *testing.T) {
	b := newTestLookahead(WHITESPACE, LINE_COMMENT, WHITESPACE, SYMBOL)
	b.passLayout()

	assert.Equal(t, SYMBOL, b.currentLookahead().Type)
	assert.Equal(t, 3, len(b.ready))
	assert.Equal(t, LINE_COMMENT, b.ready[1].Type)
}

func TestLookaheadAdvanceRawStopsAtEOF(t *testing.T) {
	b := newTestLookahead(SYMBOL)
	b.advanceRaw()
	b.advanceRaw()
	b.advanceRaw()

	assert.Equal(t, 1, b.pending())
	assert.Equal(t, EOF, b.currentLookahead().Type)
}

func TestLookaheadContractViolations(t *testing.T) {
	t.Run("collapse nothing consumed", func(t *testing.T) {
		b := newTestLookahead(SYMBOL)
		assert.Panics(t, func() {
			b.emitCollapsedAs(KEYWORD, 1)
		})
	})

	t.Run("collapse zero tokens", func(t *testing.T) {
		b := newTestLookahead(SYMBOL)
		b.advanceRaw()
		assert.Panics(t, func() {
			b.emitCollapsedAs(KEYWORD, 0)
		})
	})

	t.Run("collapse more than consumed", func(t *testing.T) {
		b := newTestLookahead(SYMBOL, SYMBOL)
		b.advanceRaw()
		assert.Panics(t, func() {
			b.emitCollapsedAs(KEYWORD, 2)
		})
	})

	t.Run("pass nothing consumed", func(t *testing.T) {
		b := newTestLookahead()
		assert.Panics(t, func() {
			b.pass()
		})
	})
}
