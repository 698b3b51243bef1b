package lexer

// Scanner implements a zero-copy primitive scanner for Clojure-dialect
// reader syntax.
//
// Unlike a parser-facing lexer it keeps layout: whitespace and comments are
// tokens, so the token sequence covers every byte of the source. It knows
// nothing about context; see Reclassifier for that.

import (
	"unicode"
	"unicode/utf8"
)

const eof = -1

// Scanner tokenizes source code into primitive tokens.
type Scanner struct {
	source   []byte // Source buffer, never modified
	filename string // Filename for diagnostics
	pos      int    // Current byte position
	line     int    // Current line (1-indexed)
	column   int    // Current column in runes (1-indexed)
	current  Token  // Token the scanner is positioned on
}

var _ Stream = (*Scanner)(nil)

// NewScanner creates a scanner positioned on the first token of source.
func NewScanner(source []byte, filename string) *Scanner {
	s := &Scanner{
		source:   source,
		filename: filename,
		line:     1,
		column:   1,
	}
	s.current = s.scanToken()
	return s
}

// Filename returns the filename the scanner was created with.
func (s *Scanner) Filename() string {
	return s.filename
}

// Source returns the scanned buffer.
func (s *Scanner) Source() []byte {
	return s.source
}

// Token returns the current token.
func (s *Scanner) Token() Token {
	return s.current
}

// Advance moves to the next token. Advancing past EOF has no effect.
func (s *Scanner) Advance() {
	if s.current.Type == EOF {
		return
	}
	s.current = s.scanToken()
}

// ScanAll scans the remaining source and returns all tokens, including the
// terminating EOF token.
func (s *Scanner) ScanAll() []Token {
	// Layout tokens roughly double the count of a parser-facing lexer,
	// empirically ~1 token per 4 bytes of Lisp source.
	tokens := make([]Token, 0, len(s.source)/4+16)
	for {
		tokens = append(tokens, s.current)
		if s.current.Type == EOF {
			return tokens
		}
		s.Advance()
	}
}

// scanToken scans the next token from the current position.
func (s *Scanner) scanToken() Token {
	start := s.pos
	line := s.line
	col := s.column

	r, size := s.peekRune()
	if size == 0 {
		return Token{EOF, start, start, line, col}
	}

	switch {
	// Invalid UTF-8 surfaces one byte at a time
	case r == utf8.RuneError && size == 1:
		s.next()
		return Token{UNRECOGNIZED, start, s.pos, line, col}

	case isSpace(r):
		for r, size := s.peekRune(); size > 0 && isSpace(r); r, size = s.peekRune() {
			s.next()
		}
		return Token{WHITESPACE, start, s.pos, line, col}

	case r == ';':
		s.skipLine()
		return Token{LINE_COMMENT, start, s.pos, line, col}

	case r == '"':
		s.next()
		s.scanString()
		return Token{STRING, start, s.pos, line, col}

	case r == '\\':
		return s.scanCharacter(start, line, col)

	case isDigit(r):
		return s.scanNumber(start, line, col)

	case (r == '+' || r == '-') && isDigit(rune(s.peekByte(1))):
		return s.scanNumber(start, line, col)

	case isSymbolStart(r):
		return s.scanSymbol(start, line, col)
	}

	s.next()

	switch r {
	case ':':
		if s.match(':') {
			return Token{DOUBLE_COLON, start, s.pos, line, col}
		}
		return Token{COLON, start, s.pos, line, col}
	case ',':
		if s.match('@') {
			return Token{COMMA_AT, start, s.pos, line, col}
		}
		return Token{COMMA, start, s.pos, line, col}
	case '.':
		if s.match('-') {
			return Token{DOT_DASH, start, s.pos, line, col}
		}
		return Token{DOT, start, s.pos, line, col}
	case '/':
		return Token{SLASH, start, s.pos, line, col}

	case '\'':
		return Token{QUOTE, start, s.pos, line, col}
	case '`':
		return Token{SYNTAX_QUOTE, start, s.pos, line, col}
	case '~':
		if s.match('@') {
			return Token{TILDE_AT, start, s.pos, line, col}
		}
		return Token{TILDE, start, s.pos, line, col}
	case '@':
		return Token{AT, start, s.pos, line, col}
	case '^':
		return Token{HAT, start, s.pos, line, col}
	case '#':
		return s.scanDispatch(start, line, col)

	case '(':
		return Token{LPAREN, start, s.pos, line, col}
	case ')':
		return Token{RPAREN, start, s.pos, line, col}
	case '{':
		return Token{LBRACE, start, s.pos, line, col}
	case '}':
		return Token{RBRACE, start, s.pos, line, col}
	case '[':
		return Token{LBRACKET, start, s.pos, line, col}
	case ']':
		return Token{RBRACKET, start, s.pos, line, col}
	}

	return Token{UNRECOGNIZED, start, s.pos, line, col}
}

// scanDispatch scans the two or three character reader macros starting with
// '#'. The '#' is already consumed.
func (s *Scanner) scanDispatch(start, line, col int) Token {
	switch s.peekByte(0) {
	case '^':
		s.next()
		return Token{SHARP_HAT, start, s.pos, line, col}
	case '_':
		s.next()
		return Token{SHARP_COMMENT, start, s.pos, line, col}
	case '=':
		s.next()
		return Token{SHARP_EQ, start, s.pos, line, col}
	case ':':
		s.next()
		return Token{SHARP_NS, start, s.pos, line, col}
	case '\'':
		s.next()
		return Token{SHARP_QUOTE, start, s.pos, line, col}
	case '?':
		s.next()
		if s.match('@') {
			return Token{SHARP_QMARK_AT, start, s.pos, line, col}
		}
		return Token{SHARP_QMARK, start, s.pos, line, col}
	case '!':
		// #! shebang line
		s.skipLine()
		return Token{LINE_COMMENT, start, s.pos, line, col}
	}
	return Token{SHARP, start, s.pos, line, col}
}

// scanString scans to the closing quote, honoring backslash escapes.
// The opening quote is already consumed. An unterminated string runs to EOF.
func (s *Scanner) scanString() {
	for {
		switch s.next() {
		case eof, '"':
			return
		case '\\':
			s.next()
		}
	}
}

// scanCharacter scans a character literal: \a, \newline, \u03A9, \(.
func (s *Scanner) scanCharacter(start, line, col int) Token {
	s.next() // backslash
	r := s.next()
	if r == eof {
		return Token{UNRECOGNIZED, start, s.pos, line, col}
	}
	// Named and unicode characters continue with letters and digits
	if isLetter(r) {
		for isLetter(rune(s.peekByte(0))) || isDigit(rune(s.peekByte(0))) {
			s.next()
		}
	}
	return Token{CHARACTER, start, s.pos, line, col}
}

// scanNumber scans a number literal:
//
//	[-+]?[0-9]+(\.[0-9]*)?([eE][-+]?[0-9]+)?[NM]?
//	[-+]?0[xX][0-9a-fA-F]+N?
//	[-+]?[0-9]+[rR][0-9a-zA-Z]+
//	[-+]?[0-9]+/[0-9]+
func (s *Scanner) scanNumber(start, line, col int) Token {
	if b := s.peekByte(0); b == '+' || b == '-' {
		s.next()
	}

	if s.peekByte(0) == '0' && (s.peekByte(1) == 'x' || s.peekByte(1) == 'X') && isHexDigit(s.peekByte(2)) {
		s.next()
		s.next()
		for isHexDigit(s.peekByte(0)) {
			s.next()
		}
		s.match('N')
		return Token{HEX, start, s.pos, line, col}
	}

	s.skipDigits()

	switch b := s.peekByte(0); {
	case (b == 'r' || b == 'R') && isAlnum(s.peekByte(1)):
		s.next()
		for isAlnum(s.peekByte(0)) {
			s.next()
		}
		return Token{RADIX, start, s.pos, line, col}

	case b == '/' && isDigit(rune(s.peekByte(1))):
		s.next()
		s.skipDigits()
		return Token{RATIO, start, s.pos, line, col}

	case b == '.':
		s.next()
		s.skipDigits()
	}

	if b := s.peekByte(0); b == 'e' || b == 'E' {
		next := s.peekByte(1)
		if isDigit(rune(next)) || ((next == '+' || next == '-') && isDigit(rune(s.peekByte(2)))) {
			s.next()
			s.next()
			s.skipDigits()
		}
	}

	if b := s.peekByte(0); b == 'N' || b == 'M' {
		s.next()
	}

	return Token{NUMBER, start, s.pos, line, col}
}

// scanSymbol scans a symbol. Symbols never contain '.', '/' or ':'; those
// are separate tokens so the Reclassifier can see qualified names.
func (s *Scanner) scanSymbol(start, line, col int) Token {
	s.next()
	for r, size := s.peekRune(); size > 0 && isSymbolChar(r); r, size = s.peekRune() {
		s.next()
	}

	switch string(s.source[start:s.pos]) {
	case "true", "false":
		return Token{BOOLEAN, start, s.pos, line, col}
	case "nil":
		return Token{NIL, start, s.pos, line, col}
	}
	return Token{SYMBOL, start, s.pos, line, col}
}

// skipLine consumes up to, but not including, the next newline.
func (s *Scanner) skipLine() {
	for s.pos < len(s.source) && s.source[s.pos] != '\n' {
		s.next()
	}
}

func (s *Scanner) skipDigits() {
	for isDigit(rune(s.peekByte(0))) {
		s.next()
	}
}

// peekRune decodes the rune at the current position. size is 0 at EOF.
func (s *Scanner) peekRune() (rune, int) {
	if s.pos >= len(s.source) {
		return eof, 0
	}
	if b := s.source[s.pos]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(s.source[s.pos:])
}

// peekByte returns the byte offset bytes ahead, or 0 past the end.
func (s *Scanner) peekByte(offset int) byte {
	if s.pos+offset >= len(s.source) {
		return 0
	}
	return s.source[s.pos+offset]
}

// next consumes one rune and updates line and column.
func (s *Scanner) next() rune {
	r, size := s.peekRune()
	if size == 0 {
		return eof
	}
	s.pos += size
	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return r
}

// match consumes b if it is the next byte.
func (s *Scanner) match(b byte) bool {
	if s.peekByte(0) != b {
		return false
	}
	s.next()
	return true
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return r >= utf8.RuneSelf && unicode.IsSpace(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

func isAlnum(b byte) bool {
	return isLetter(rune(b)) || isDigit(rune(b))
}

func isHexDigit(b byte) bool {
	return isDigit(rune(b)) || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

func isSymbolStart(r rune) bool {
	if isLetter(r) {
		return true
	}
	switch r {
	case '*', '+', '!', '-', '_', '?', '<', '>', '=', '$', '&', '%':
		return true
	}
	return r >= utf8.RuneSelf && r != utf8.RuneError && !unicode.IsSpace(r)
}

func isSymbolChar(r rune) bool {
	return isSymbolStart(r) || isDigit(r) || r == '\'' || r == '#'
}
