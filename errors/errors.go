// Package errors turns lexical problems in highlighted source into
// diagnostics and renders them as text or JSON.
//
// Highlighting itself never fails: characters the scanner cannot classify
// become UNRECOGNIZED tokens and are rendered like any other token. Find
// collects them as *UnrecognizedError values for callers (such as the check
// command) that want to report them.
package errors

import (
	"fmt"
	"unicode/utf8"

	"github.com/lumen-language/Lumen-Kit/lexer"
)

// Position is a location in a source file. Line and Column are 1-based;
// Column counts runes.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// UnrecognizedError reports a run of source the scanner could not classify.
type UnrecognizedError struct {
	Pos  Position
	Text string
}

func (e *UnrecognizedError) Error() string {
	what := "character"
	if !utf8.ValidString(e.Text) {
		what = "byte"
	}
	return fmt.Sprintf("%s: unrecognized %s %q", e.Pos, what, e.Text)
}

// GetPosition returns the error's position.
func (e *UnrecognizedError) GetPosition() Position {
	return e.Pos
}

// Find drains s and returns an error for every UNRECOGNIZED token. Adjacent
// unrecognized tokens are reported once.
func Find(filename string, src []byte, s lexer.Stream) []error {
	var (
		errs []error
		last *UnrecognizedError
	)
	for tok := s.Token(); tok.Type != lexer.EOF; tok = s.Token() {
		if tok.Type != lexer.UNRECOGNIZED {
			last = nil
			s.Advance()
			continue
		}

		if last != nil && last.Pos.Offset+len(last.Text) == tok.Start {
			last.Text += tok.String(src)
		} else {
			last = &UnrecognizedError{
				Pos: Position{
					Filename: filename,
					Offset:   tok.Start,
					Line:     tok.Line,
					Column:   tok.Column,
				},
				Text: tok.String(src),
			}
			errs = append(errs, last)
		}
		s.Advance()
	}
	return errs
}
