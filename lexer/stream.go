// Package lexer turns Lisp source in the Clojure reader dialect into tokens
// for syntax highlighting.
//
// Scanning happens in two layers. The Scanner recognizes context-free atoms
// (symbols, numbers, punctuation, strings, layout). The Reclassifier wraps any
// Stream and relabels or merges runs of those atoms based on what precedes
// them: a symbol after "(" becomes CALLABLE, ":" followed by a symbol becomes
// a single KEYWORD, "#" followed by a symbol becomes a DATA_READER_TAG and so
// on.
//
// Both layers are pull based and produce a gapless, ordered cover of the
// source:
//
//	s := lexer.NewReclassifier(lexer.NewScanner(src, "core.clj"))
//	for tok := s.Token(); tok.Type != lexer.EOF; tok = s.Token() {
//		fmt.Println(tok.Type, tok.String(src))
//		s.Advance()
//	}
//
// A Stream is not safe for concurrent use. Scan the same text concurrently by
// giving every goroutine its own Scanner and Reclassifier.
package lexer

import "context"

// Stream is a pull interface over a token sequence.
//
// Token returns the token the stream is positioned on without consuming it.
// Once the input is exhausted Token returns a zero-width EOF token, and
// Advance becomes a no-op.
type Stream interface {
	Token() Token
	Advance()
}

// Collect drains a stream into a slice. The trailing EOF token is included.
func Collect(s Stream) []Token {
	var tokens []Token
	for {
		tok := s.Token()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
		s.Advance()
	}
}

// CollectContext drains a stream like Collect, stopping early with the
// context's error when it is cancelled.
func CollectContext(ctx context.Context, s Stream) ([]Token, error) {
	var tokens []Token
	for {
		if err := ctx.Err(); err != nil {
			return tokens, err
		}
		tok := s.Token()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
		s.Advance()
	}
}

// sliceStream replays a fixed token slice, either one gathered with Collect
// or a hand-built primitive sequence.
type sliceStream struct {
	tokens []Token
	pos    int
}

// NewSliceStream returns a Stream over tokens. A terminating EOF token is
// synthesized at the end offset of the last token when tokens lacks one.
func NewSliceStream(tokens []Token) Stream {
	return &sliceStream{tokens: tokens}
}

func (s *sliceStream) Token() Token {
	if s.pos < len(s.tokens) {
		return s.tokens[s.pos]
	}
	end := 0
	if n := len(s.tokens); n > 0 {
		end = s.tokens[n-1].End
	}
	return Token{Type: EOF, Start: end, End: end}
}

func (s *sliceStream) Advance() {
	if s.pos < len(s.tokens) && s.tokens[s.pos].Type != EOF {
		s.pos++
	}
}
