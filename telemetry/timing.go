package telemetry

import (
	"io"
	"sync"
	"time"

	"golang.org/x/exp/maps"

	"github.com/lumen-language/Lumen-Kit/output"
)

// TimingCollector records a tree of timers and a set of named counters.
// It is safe for concurrent use: files highlighted in parallel each hang a
// Child timer off a shared parent.
type TimingCollector struct {
	mu      sync.Mutex
	root    *timerNode
	current *timerNode
	counts  map[string]int
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	parent   *timerNode
	children []*timerNode
}

// NewTimingCollector creates an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{counts: make(map[string]int)}
}

// Start begins timing an operation. The first timer becomes the root; later
// ones nest under the most recently started timer that has not ended.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: time.Now()}
	if c.root == nil {
		c.root = node
	} else {
		node.parent = c.current
		c.current.children = append(c.current.children, node)
	}
	c.current = node

	return &timingTimer{collector: c, node: node}
}

// Count adds delta to the named counter.
func (c *TimingCollector) Count(name string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name] += delta
}

// Counts returns a copy of the counters.
func (c *TimingCollector) Counts() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return maps.Clone(c.counts)
}

// Report writes the timing tree followed by the counters. Nothing is written
// when no timer was started and no counter was touched.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root != nil {
		formatTimingTree(w, c.root, styles)
	}
	if len(c.counts) > 0 {
		formatCounts(w, c.counts, styles)
	}
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.node.end = time.Now()
	if t.collector.current == t.node && t.node.parent != nil {
		t.collector.current = t.node.parent
	}
}

// Child starts a timer nested under t without moving the collector's
// current position.
func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	node := &timerNode{name: name, start: time.Now(), parent: t.node}
	t.node.children = append(t.node.children, node)

	return &timingTimer{collector: t.collector, node: node}
}
