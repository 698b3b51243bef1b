package telemetry

import (
	"context"

	"github.com/lumen-language/Lumen-Kit/lexer"
)

// countingStream reports every token it advances past to a collector,
// keyed by token type.
type countingStream struct {
	lexer.Stream
	collector Collector
}

// CountTokens wraps s so that each token consumed is counted under its type
// name. When ctx carries no collector s is returned unchanged.
func CountTokens(ctx context.Context, s lexer.Stream) lexer.Stream {
	if !Enabled(ctx) {
		return s
	}
	return &countingStream{Stream: s, collector: FromContext(ctx)}
}

func (c *countingStream) Advance() {
	if tok := c.Token(); tok.Type != lexer.EOF {
		c.collector.Count(tok.Type.String(), 1)
	}
	c.Stream.Advance()
}
