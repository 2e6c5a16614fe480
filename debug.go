package transform2

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-cycle timing for one Scene stage.
// Only populated when Scene.debug is true.
type debugStats struct {
	stage         Stage
	pre           time.Duration
	propagateTime time.Duration
	post          time.Duration
	propagated    int
}

// debugLog prints timing stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.pre + stats.propagateTime + stats.post
	_, _ = fmt.Fprintf(os.Stderr,
		"[transform2] %s pre: %v | %s: %v (%d changed) | post: %v | total: %v\n",
		stats.stage, stats.pre, PropagateName, stats.propagateTime, stats.propagated, stats.post, total)
}

// debugSync prints how many slots a sync pass wrote.
func debugSync(stage Stage, name string, n int) {
	_, _ = fmt.Fprintf(os.Stderr, "[transform2] %s %s: %d written\n", stage, name, n)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("transform2 debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[transform2] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
