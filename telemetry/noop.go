package telemetry

import (
	"io"

	"github.com/lumen-language/Lumen-Kit/output"
)

// noOpCollector is used when telemetry is disabled.
type noOpCollector struct{}

func (noOpCollector) Start(string) Timer {
	return noOpTimer{}
}

func (noOpCollector) Count(string, int) {}

func (noOpCollector) Report(io.Writer, *output.Styles) {}

type noOpTimer struct{}

func (noOpTimer) End() {}

func (noOpTimer) Child(string) Timer {
	return noOpTimer{}
}
