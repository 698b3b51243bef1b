// Package lumenkit highlights Lisp source written in the Clojure reader
// dialect.
//
// The functions here compose the lexer, style and output packages for the
// common cases. Use those packages directly to plug in another token source
// or renderer.
package lumenkit

import (
	"context"
	"io"

	"github.com/lumen-language/Lumen-Kit/lexer"
	"github.com/lumen-language/Lumen-Kit/output"
	"github.com/lumen-language/Lumen-Kit/telemetry"
)

// Tokenize returns the reclassified tokens of src, ending with EOF.
func Tokenize(src []byte) []lexer.Token {
	return lexer.Tokenize(src, "")
}

// Reclassify returns a stream of reclassified tokens over src.
func Reclassify(src []byte) lexer.Stream {
	return lexer.NewReclassifier(lexer.NewScanner(src, ""))
}

// Highlight writes src to w with ANSI styling. Tokens are counted into the
// telemetry collector carried by ctx, if any.
func Highlight(ctx context.Context, src []byte, w io.Writer, opts ...output.Option) error {
	return render(ctx, src, output.NewTerminal(w, opts...))
}

// HighlightHTML writes src to w as a styled HTML <pre> block.
func HighlightHTML(ctx context.Context, src []byte, w io.Writer, opts ...output.Option) error {
	return render(ctx, src, output.NewHTML(w, opts...))
}

func render(ctx context.Context, src []byte, r output.Renderer) error {
	return r.Render(ctx, src, telemetry.CountTokens(ctx, Reclassify(src)))
}
