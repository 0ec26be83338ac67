package prefab

import (
	"fmt"
	"io"
	"os"
)

// globalDebug enables build-time warnings for unusually wide nodes.
var globalDebug bool

// debugOut receives debug warnings.
var debugOut io.Writer = os.Stderr

// SetDebugMode enables or disables debug warnings on stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugMaxChildCount is the sibling count above which Child warns. Sibling
// chains nest one level per child, so very wide nodes recurse that deep
// during realization.
const debugMaxChildCount = 1000

func debugCheckChildCount[B any](n *ParentNode[B]) {
	if c := n.children.Len(); c > debugMaxChildCount {
		_, _ = fmt.Fprintf(debugOut, "[prefab] warning: node %v has %d children (threshold %d)\n",
			n.parent, c, debugMaxChildCount)
	}
}
