// Package style maps emitted token types to style keys and style keys to
// presentation attributes.
//
// The mapping from token type to key is a fixed table (Resolve). The mapping
// from key to colors is a Theme, which can be replaced or loaded from TOML
// without affecting how tokens are classified.
package style

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lumen-language/Lumen-Kit/lexer"
)

// Key identifies a style a token can carry.
type Key string

const (
	Keyword      Key = "keyword"
	Callable     Key = "callable"
	String       Key = "string"
	Character    Key = "character"
	Number       Key = "number"
	Literal      Key = "literal"
	Comment      Key = "comment"
	QuotedSymbol Key = "quoted-symbol"
	DataReader   Key = "data-reader"
	Metadata     Key = "metadata"
	ReaderMacro  Key = "reader-macro"
	Qualifier    Key = "qualifier"
	Comma        Key = "comma"
	Paren        Key = "paren"
	Brace        Key = "brace"
	Bracket      Key = "bracket"
	Unrecognized Key = "unrecognized"
)

var (
	keyword      = []Key{Keyword}
	callable     = []Key{Callable}
	readerMacro  = []Key{ReaderMacro}
	qualifier    = []Key{Qualifier}
	number       = []Key{Number}
	paren        = []Key{Paren}
	brace        = []Key{Brace}
	bracket      = []Key{Bracket}
	unrecognized = []Key{Unrecognized}
)

// Types without an entry (whitespace, plain symbols, EOF) carry no style.
var table = map[lexer.TokenType][]Key{
	lexer.UNRECOGNIZED: unrecognized,
	lexer.LINE_COMMENT: {Comment},

	lexer.STRING:    {String},
	lexer.CHARACTER: {Character},
	lexer.NUMBER:    number,
	lexer.HEX:       number,
	lexer.RADIX:     number,
	lexer.RATIO:     number,
	lexer.BOOLEAN:   {Literal},
	lexer.NIL:       {Literal},

	lexer.COLON:        keyword,
	lexer.DOUBLE_COLON: keyword,
	lexer.COMMA:        {Comma},
	lexer.DOT:          qualifier,
	lexer.DOT_DASH:     qualifier,
	lexer.SLASH:        qualifier,

	lexer.QUOTE:          readerMacro,
	lexer.SYNTAX_QUOTE:   readerMacro,
	lexer.TILDE:          readerMacro,
	lexer.COMMA_AT:       readerMacro,
	lexer.TILDE_AT:       readerMacro,
	lexer.AT:             readerMacro,
	lexer.HAT:            readerMacro,
	lexer.SHARP_HAT:      readerMacro,
	lexer.SHARP:          readerMacro,
	lexer.SHARP_COMMENT:  {Comment},
	lexer.SHARP_EQ:       readerMacro,
	lexer.SHARP_NS:       readerMacro,
	lexer.SHARP_QMARK:    readerMacro,
	lexer.SHARP_QMARK_AT: readerMacro,
	lexer.SHARP_QUOTE:    readerMacro,

	lexer.LPAREN:   paren,
	lexer.RPAREN:   paren,
	lexer.LBRACE:   brace,
	lexer.RBRACE:   brace,
	lexer.LBRACKET: bracket,
	lexer.RBRACKET: bracket,

	lexer.CALLABLE:            callable,
	lexer.KEYWORD:             keyword,
	lexer.CALLABLE_KEYWORD:    {Callable, Keyword},
	lexer.QUOTED_SYMBOL:       {QuotedSymbol},
	lexer.DATA_READER_TAG:     {DataReader},
	lexer.METADATA_HAT_SYMBOL: {Metadata},
}

// Resolve returns the style keys for a token type, in increasing priority.
// The result is nil for types rendered in the default style and must not be
// modified.
func Resolve(t lexer.TokenType) []Key {
	return table[t]
}

// knownKeys holds every key in table, sorted.
var knownKeys = func() []Key {
	set := make(map[Key]struct{})
	for _, keys := range table {
		for _, k := range keys {
			set[k] = struct{}{}
		}
	}
	keys := maps.Keys(set)
	slices.Sort(keys)
	return keys
}()

// Keys returns every style key Resolve can produce, sorted.
func Keys() []Key {
	return slices.Clone(knownKeys)
}

// IsKnown reports whether k is a key Resolve can produce.
func IsKnown(k Key) bool {
	_, found := slices.BinarySearch(knownKeys, k)
	return found
}
