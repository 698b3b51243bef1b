// Package telemetry collects hierarchical timings and token counts for a
// run of the highlighter.
//
// Collectors travel through a context, so instrumented code does not change
// its signatures and pays nothing when telemetry is disabled:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.FromContext(ctx).Start("highlight core.clj")
//	s := telemetry.CountTokens(ctx, lexer.NewReclassifier(scanner))
//	// ... drain s ...
//	timer.End()
//
//	collector.Report(os.Stderr, styles)
package telemetry

import (
	"context"
	"io"

	"github.com/lumen-language/Lumen-Kit/output"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector receives timings and counters.
type Collector interface {
	// Start begins timing an operation. End the returned Timer when the
	// operation completes.
	Start(name string) Timer

	// Count adds delta to the named counter.
	Count(name string, delta int)

	// Report writes the collected data. styles may be nil for plain output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation's timing.
type Timer interface {
	// End stops the timer.
	End()

	// Child starts a timer nested under this one.
	Child(name string) Timer
}

// WithCollector returns a context carrying collector.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the context's collector, or a collector that discards
// everything.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// Enabled reports whether ctx carries a real collector.
func Enabled(ctx context.Context) bool {
	_, ok := FromContext(ctx).(noOpCollector)
	return !ok
}
