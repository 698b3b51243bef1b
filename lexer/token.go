package lexer

// TokenType represents the type of a token. Primitive scanner types and the
// synthetic types produced by the Reclassifier share one enumeration, so a
// reclassified stream can stand in wherever a primitive one is expected.
type TokenType uint8

const (
	// Special tokens
	EOF TokenType = iota
	UNRECOGNIZED

	// Layout
	WHITESPACE   // space, tab, newline
	LINE_COMMENT // ; comment

	// Literals
	STRING    // "string"
	CHARACTER // \c, \newline, \u03A9
	NUMBER    // 42, -1.5e3, 10N
	HEX       // 0xFF
	RADIX     // 2r1010
	RATIO     // 22/7
	BOOLEAN   // true, false
	NIL       // nil
	SYMBOL    // foo, +, ->>

	// Qualifiers
	COLON        // :
	DOUBLE_COLON // ::
	COMMA        // ,
	DOT          // .
	DOT_DASH     // .-
	SLASH        // /

	// Reader macros
	QUOTE          // '
	SYNTAX_QUOTE   // `
	TILDE          // ~
	COMMA_AT       // ,@
	TILDE_AT       // ~@
	AT             // @
	HAT            // ^
	SHARP_HAT      // #^
	SHARP          // #
	SHARP_COMMENT  // #_
	SHARP_EQ       // #=
	SHARP_NS       // #:
	SHARP_QMARK    // #?
	SHARP_QMARK_AT // #?@
	SHARP_QUOTE    // #'

	// Brackets
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]

	// Reclassified (never produced by the Scanner)
	CALLABLE            // (foo ...)
	KEYWORD             // :foo, ::foo, :ns/foo
	CALLABLE_KEYWORD    // (:foo m)
	QUOTED_SYMBOL       // 'foo.bar
	DATA_READER_TAG     // #inst
	METADATA_HAT_SYMBOL // ^String
)

var tokenNames = map[TokenType]string{
	EOF:          "EOF",
	UNRECOGNIZED: "UNRECOGNIZED",

	WHITESPACE:   "WHITESPACE",
	LINE_COMMENT: "LINE_COMMENT",

	STRING:    "STRING",
	CHARACTER: "CHARACTER",
	NUMBER:    "NUMBER",
	HEX:       "HEX",
	RADIX:     "RADIX",
	RATIO:     "RATIO",
	BOOLEAN:   "BOOLEAN",
	NIL:       "NIL",
	SYMBOL:    "SYMBOL",

	COLON:        ":",
	DOUBLE_COLON: "::",
	COMMA:        ",",
	DOT:          ".",
	DOT_DASH:     ".-",
	SLASH:        "/",

	QUOTE:          "'",
	SYNTAX_QUOTE:   "`",
	TILDE:          "~",
	COMMA_AT:       ",@",
	TILDE_AT:       "~@",
	AT:             "@",
	HAT:            "^",
	SHARP_HAT:      "#^",
	SHARP:          "#",
	SHARP_COMMENT:  "#_",
	SHARP_EQ:       "#=",
	SHARP_NS:       "#:",
	SHARP_QMARK:    "#?",
	SHARP_QMARK_AT: "#?@",
	SHARP_QUOTE:    "#'",

	LPAREN:   "(",
	RPAREN:   ")",
	LBRACE:   "{",
	RBRACE:   "}",
	LBRACKET: "[",
	RBRACKET: "]",

	CALLABLE:            "CALLABLE",
	KEYWORD:             "KEYWORD",
	CALLABLE_KEYWORD:    "CALLABLE_KEYWORD",
	QUOTED_SYMBOL:       "QUOTED_SYMBOL",
	DATA_READER_TAG:     "DATA_READER_TAG",
	METADATA_HAT_SYMBOL: "METADATA_HAT_SYMBOL",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// TokenTypes returns every defined token type in declaration order.
func TokenTypes() []TokenType {
	types := make([]TokenType, 0, len(tokenNames))
	for t := EOF; t <= METADATA_HAT_SYMBOL; t++ {
		types = append(types, t)
	}
	return types
}

// IsLayout reports whether the type is whitespace or a comment.
func (t TokenType) IsLayout() bool {
	return t == WHITESPACE || t == LINE_COMMENT
}

// IsName reports whether the type can name a keyword: a symbol, or one of
// the literals true, false and nil which the scanner splits off as their own
// types.
func (t TokenType) IsName() bool {
	return t == SYMBOL || t == BOOLEAN || t == NIL
}

// IsColon reports whether the type is a single or double colon.
func (t TokenType) IsColon() bool {
	return t == COLON || t == DOUBLE_COLON
}

// IsDot reports whether the type is a dot or dot-dash access token.
func (t TokenType) IsDot() bool {
	return t == DOT || t == DOT_DASH
}

// IsReclassified reports whether the type can only be produced by a Reclassifier.
func (t TokenType) IsReclassified() bool {
	return t >= CALLABLE && t <= METADATA_HAT_SYMBOL
}

// Token represents a lexical token with zero-copy semantics.
// Instead of storing the token text, we store byte offsets into the
// original source buffer.
type Token struct {
	Type   TokenType
	Start  int // Byte offset into source buffer
	End    int // End offset (exclusive)
	Line   int // Line number (1-indexed)
	Column int // Column number in runes (1-indexed)
}

// String materializes the token text from the source buffer.
func (t Token) String(source []byte) string {
	return string(t.Bytes(source))
}

// Bytes returns a zero-copy view of the token text.
func (t Token) Bytes(source []byte) []byte {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
