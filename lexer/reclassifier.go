package lexer

// Reclassifier decorates a primitive Stream and relabels tokens whose meaning
// depends on their neighbors.
//
// Each step looks at the token the underlying stream is positioned on and
// applies exactly one rule, chosen by that token's type:
//
//	#sym      DATA_READER_TAG    (one token)
//	'a.b/c    QUOTED_SYMBOL      (one token after the quote, layout skipped)
//	:a/b      KEYWORD            (one token, no layout allowed after ':')
//	(a.b      CALLABLE for "a"   (layout skipped, stops at '.' and ':')
//	(:a       CALLABLE_KEYWORD   (one token)
//	^a        METADATA_HAT_SYMBOL (layout skipped, stops at '.' and ':')
//
// Everything else passes through unchanged. A step reads a bounded number of
// tokens and never looks back, so the Reclassifier is itself a Stream.
type Reclassifier struct {
	buf *lookahead
}

var _ Stream = (*Reclassifier)(nil)

// NewReclassifier returns a Reclassifier reading primitive tokens from src.
func NewReclassifier(src Stream) *Reclassifier {
	return &Reclassifier{buf: newLookahead(src)}
}

// Tokenize scans and reclassifies source in one pass, returning all emitted
// tokens including the terminating EOF.
func Tokenize(source []byte, filename string) []Token {
	return Collect(NewReclassifier(NewScanner(source, filename)))
}

// Token returns the current emitted token.
func (r *Reclassifier) Token() Token {
	r.fill()
	if tok, ok := r.buf.head(); ok {
		return tok
	}
	return r.buf.currentLookahead()
}

// Advance moves to the next emitted token.
func (r *Reclassifier) Advance() {
	r.fill()
	r.buf.pop()
}

// fill runs one rule when no emitted token is waiting.
func (r *Reclassifier) fill() {
	if _, ok := r.buf.head(); ok {
		return
	}
	if r.buf.currentLookahead().Type == EOF {
		return
	}
	r.step()
	if n := r.buf.pending(); n != 0 {
		panic("lexer: rule left consumed tokens unemitted")
	}
}

func (r *Reclassifier) step() {
	switch r.buf.currentLookahead().Type {
	case SHARP:
		r.sharp()
	case QUOTE:
		r.quote()
	case COLON, DOUBLE_COLON:
		r.keyword()
	case LPAREN:
		r.callable()
	case HAT, SHARP_HAT:
		r.metadata()
	default:
		r.buf.advanceRaw()
		r.buf.pass()
	}
}

// sharp merges "#" with a following symbol into a data reader tag.
//
// For any other follower the "#" is emitted alone and the follower is left
// in place. A regex string or set brace then passes through with its own
// type, and "#(" still gets its head classified by the paren rule.
func (r *Reclassifier) sharp() {
	b := r.buf
	b.advanceRaw()
	if b.currentLookahead().Type == SYMBOL {
		b.advanceRaw()
		b.emitCollapsedAs(DATA_READER_TAG, 2)
		return
	}
	b.emitAs(SHARP)
}

// quote classifies the symbol run after a quote. A non-symbol follower is
// passed through untouched, so the head of a quoted list is not a callable.
func (r *Reclassifier) quote() {
	b := r.buf
	b.advanceRaw()
	b.pass()
	b.passLayout()

	switch b.currentLookahead().Type {
	case EOF:
	case SYMBOL:
		r.symbolRun(QUOTED_SYMBOL, false, 0)
	default:
		b.advanceRaw()
		b.pass()
	}
}

// keyword merges a colon with an adjacent name, and with an adjacent
// "/name" qualifier, into a single keyword token. :nil and :true are
// keywords like any other.
func (r *Reclassifier) keyword() {
	b := r.buf
	b.advanceRaw()
	if !b.currentLookahead().Type.IsName() {
		b.pass()
		return
	}
	b.advanceRaw()

	n := 2
	if b.currentLookahead().Type == SLASH {
		b.advanceRaw()
		if b.currentLookahead().Type.IsName() {
			b.advanceRaw()
			n = 4
		}
	}
	b.emitCollapsedAs(KEYWORD, n)

	// a "/" with no name after it
	if b.pending() > 0 {
		b.pass()
	}
}

// callable classifies the head of a list.
func (r *Reclassifier) callable() {
	b := r.buf
	b.advanceRaw()
	b.pass()
	b.passLayout()

	tok := b.currentLookahead()
	switch {
	case tok.Type == SYMBOL:
		r.symbolRun(CALLABLE, true, 0)
	case tok.Type.IsColon():
		b.advanceRaw()
		if !b.currentLookahead().Type.IsName() {
			b.pass()
			return
		}
		r.symbolRun(CALLABLE_KEYWORD, true, 1)
	}
}

// metadata classifies the tag symbol of ^Tag shorthand metadata.
func (r *Reclassifier) metadata() {
	b := r.buf
	b.advanceRaw()
	b.pass()
	b.passLayout()

	if b.currentLookahead().Type == SYMBOL {
		r.symbolRun(METADATA_HAT_SYMBOL, true, 0)
	}
}

// symbolRun consumes the maximal run of symbol-like tokens starting at the
// current token and emits it, together with the prior tokens already
// consumed, as one token of type typ.
//
// Symbols and slashes always continue a run. Unless strict, dots and colons
// continue it too; in strict mode they end it and are left for the next step.
func (r *Reclassifier) symbolRun(typ TokenType, strict bool, prior int) {
	b := r.buf
	b.advanceRaw()
	n := prior + 1
	for continuesRun(b.currentLookahead().Type, strict) {
		b.advanceRaw()
		n++
	}
	b.emitCollapsedAs(typ, n)
}

func continuesRun(t TokenType, strict bool) bool {
	switch {
	case t == SYMBOL || t == SLASH:
		return true
	case t.IsDot() || t.IsColon():
		return !strict
	}
	return false
}
