package scene

import (
	"fmt"
	"io"
	"os"
)

// globalDebug is set by Scene.SetDebugMode. Nodes carry no scene pointer,
// so the flag is package-wide.
var globalDebug bool

var debugOut io.Writer = os.Stderr

const (
	debugMaxDepth    = 32
	debugMaxChildren = 1000
)

func debugCheckLive(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("scene debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckShape warns when a freshly attached node sits too deep or makes
// its parent too wide.
func debugCheckShape(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxDepth {
		warnf("node %q is %d levels deep (threshold %d)", n.Name, depth, debugMaxDepth)
	}
	if p := n.Parent; p != nil && len(p.children) > debugMaxChildren {
		warnf("node %q has %d children (threshold %d)", p.Name, len(p.children), debugMaxChildren)
	}
}

func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(debugOut, "[prefab/scene] warning: "+format+"\n", args...)
}
