package lexer

import "fmt"

// lookahead stages primitive tokens between the underlying stream and the
// tokens a Reclassifier emits.
//
// Tokens move through two queues. advanceRaw moves the stream's current
// token into consumed; emitAs and emitCollapsedAs move the oldest consumed
// tokens into ready under a new type. Consumed tokens are always surfaced in
// the order they were pulled, which keeps the emitted stream gapless.
type lookahead struct {
	src      Stream
	consumed []Token // pulled from src, not yet emitted
	ready    []Token // emitted, waiting to be read
}

func newLookahead(src Stream) *lookahead {
	return &lookahead{
		src:      src,
		consumed: make([]Token, 0, 4),
		ready:    make([]Token, 0, 8),
	}
}

// currentLookahead returns the token the stream is positioned on.
func (b *lookahead) currentLookahead() Token {
	return b.src.Token()
}

// advanceRaw consumes the current token. It never moves past EOF.
func (b *lookahead) advanceRaw() {
	tok := b.src.Token()
	if tok.Type == EOF {
		return
	}
	b.consumed = append(b.consumed, tok)
	b.src.Advance()
}

// emitAs surfaces the oldest consumed token unchanged in range, as typ.
func (b *lookahead) emitAs(typ TokenType) {
	b.emitCollapsedAs(typ, 1)
}

// pass surfaces the oldest consumed token with its own type.
func (b *lookahead) pass() {
	if len(b.consumed) == 0 {
		panic("lexer: pass with no consumed tokens")
	}
	b.emitAs(b.consumed[0].Type)
}

// emitCollapsedAs surfaces the oldest n consumed tokens as one token of type
// typ spanning [start of first, end of last).
func (b *lookahead) emitCollapsedAs(typ TokenType, n int) {
	if n < 1 || n > len(b.consumed) {
		panic(fmt.Sprintf("lexer: cannot collapse %d tokens, %d consumed", n, len(b.consumed)))
	}
	first, last := b.consumed[0], b.consumed[n-1]
	b.ready = append(b.ready, Token{
		Type:   typ,
		Start:  first.Start,
		End:    last.End,
		Line:   first.Line,
		Column: first.Column,
	})
	b.consumed = b.consumed[:copy(b.consumed, b.consumed[n:])]
}

// passLayout consumes and surfaces whitespace and comments unchanged.
func (b *lookahead) passLayout() {
	for b.currentLookahead().Type.IsLayout() {
		b.advanceRaw()
		b.pass()
	}
}

// pending reports how many consumed tokens have not been emitted yet.
func (b *lookahead) pending() int {
	return len(b.consumed)
}

// head returns the oldest ready token.
func (b *lookahead) head() (Token, bool) {
	if len(b.ready) == 0 {
		return Token{}, false
	}
	return b.ready[0], true
}

// pop discards the oldest ready token.
func (b *lookahead) pop() {
	if len(b.ready) == 0 {
		return
	}
	b.ready = b.ready[:copy(b.ready, b.ready[1:])]
}
