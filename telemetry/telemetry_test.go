package telemetry

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/lumen-language/Lumen-Kit/lexer"
	"github.com/lumen-language/Lumen-Kit/output"
)

func TestNoOpCollector(t *testing.T) {
	collector := noOpCollector{}

	timer := collector.Start("test")
	timer.Child("child").End()
	timer.End()
	collector.Count("SYMBOL", 3)

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, "", buf.String())
}

func TestFromContext(t *testing.T) {
	ctx := context.Background()
	_, ok := FromContext(ctx).(noOpCollector)
	assert.True(t, ok)
	assert.False(t, Enabled(ctx))

	collector := NewTimingCollector()
	ctx = WithCollector(ctx, collector)
	assert.True(t, Enabled(ctx))
	got, ok := FromContext(ctx).(*TimingCollector)
	assert.True(t, ok)
	assert.True(t, got == collector)
}

func TestTimingCollectorTree(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("highlight")
	first := root.Child("core.clj")
	first.Child("scan").End()
	first.End()
	root.Child("util.clj").End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, 4, len(lines), buf.String())
	assert.True(t, strings.HasPrefix(lines[0], "highlight: "))
	assert.True(t, strings.HasPrefix(lines[1], "├─ core.clj: "))
	assert.True(t, strings.HasPrefix(lines[2], "│  └─ scan: "))
	assert.True(t, strings.HasPrefix(lines[3], "└─ util.clj: "))
}

func TestTimingCollectorStartNests(t *testing.T) {
	collector := NewTimingCollector()

	outer := collector.Start("outer")
	inner := collector.Start("inner")
	inner.End()
	sibling := collector.Start("sibling")
	sibling.End()
	outer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Contains(t, buf.String(), "├─ inner: ")
	assert.Contains(t, buf.String(), "└─ sibling: ")
}

func TestTimingCollectorConcurrentChildren(t *testing.T) {
	collector := NewTimingCollector()
	root := collector.Start("root")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			root.Child("file").End()
			collector.Count("SYMBOL", 1)
		}()
	}
	wg.Wait()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, 8, strings.Count(buf.String(), "file: "))
	assert.Equal(t, map[string]int{"SYMBOL": 8}, collector.Counts())
}

func TestCounts(t *testing.T) {
	collector := NewTimingCollector()
	collector.Count("SYMBOL", 2)
	collector.Count("KEYWORD", 5)
	collector.Count("(", 2)

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, "tokens: 9\n  KEYWORD 5\n  (       2\n  SYMBOL  2\n", buf.String())

	counts := collector.Counts()
	counts["KEYWORD"] = 0
	assert.Equal(t, 5, collector.Counts()["KEYWORD"])
}

func TestCountTokens(t *testing.T) {
	src := []byte("(defn f [x] :k)")

	plain := lexer.NewReclassifier(lexer.NewScanner(src, "t.clj"))
	assert.True(t, CountTokens(context.Background(), plain) == lexer.Stream(plain))

	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)
	s := CountTokens(ctx, lexer.NewReclassifier(lexer.NewScanner(src, "t.clj")))
	tokens := lexer.Collect(s)
	s.Advance()

	counts := collector.Counts()
	assert.Equal(t, 1, counts["CALLABLE"])
	assert.Equal(t, 1, counts["KEYWORD"])
	assert.Equal(t, 2, counts["SYMBOL"])
	assert.Equal(t, 0, counts["EOF"])

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(tokens)-1, total)
}

func TestReportStyled(t *testing.T) {
	collector := NewTimingCollector()
	collector.Start("run").End()
	collector.Count("SYMBOL", 1)

	var buf bytes.Buffer
	collector.Report(&buf, output.NewStyles(&buf, output.WithColor(output.ColorNever)))
	assert.Contains(t, buf.String(), "run: ")
	assert.Contains(t, buf.String(), "tokens: 1\n")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{1 * time.Millisecond, "1ms"},
		{999 * time.Millisecond, "999ms"},
		{1 * time.Second, "1.00s"},
		{1500 * time.Millisecond, "1.50s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.duration))
	}
}

func TestEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	NewTimingCollector().Report(&buf, nil)
	assert.Equal(t, "", buf.String())
}
