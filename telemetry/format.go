package telemetry

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lumen-language/Lumen-Kit/output"
)

// slowThreshold marks timings worth a warning color.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree writes the timer tree:
//
//	highlight: 12ms
//	├─ core.clj: 9ms
//	└─ util.clj: 3ms
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(root.duration()))

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles)
	}
}

func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	d := node.duration()
	tree, timing := prefix+branch, formatDuration(d)
	if styles != nil {
		tree = styles.Dim(tree)
		if d >= slowThreshold {
			timing = styles.Warning(timing)
		} else {
			timing = styles.Dim(timing)
		}
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", tree, node.name, timing)

	for i, child := range node.children {
		formatNode(w, child, prefix+extension, i == len(node.children)-1, styles)
	}
}

// formatCounts writes counters sorted by descending count, then name, with
// the counts right-aligned.
func formatCounts(w io.Writer, counts map[string]int, styles *output.Styles) {
	names := maps.Keys(counts)
	slices.SortFunc(names, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})

	width := 0
	for _, name := range names {
		width = max(width, runewidth.StringWidth(name))
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	header := "tokens"
	if styles != nil {
		header = styles.Keyword(header)
	}
	_, _ = fmt.Fprintf(w, "%s: %d\n", header, total)

	for _, name := range names {
		pad := runewidth.FillRight(name, width)
		if styles != nil {
			pad = styles.Dim(pad)
		}
		_, _ = fmt.Fprintf(w, "  %s %d\n", pad, counts[name])
	}
}

func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return time.Since(n.start)
	}
	return n.end.Sub(n.start)
}

// formatDuration shows milliseconds below one second and seconds otherwise.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
