package scene

import "slices"

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the tint of a fresh node.
var ColorWhite = Color{1, 1, 1, 1}

var lastNodeID uint32

// Node is one entity of the scene host. Its Sprite is the bundle last
// inserted into it and doubles as the node's local placement: X and Y offset
// it from the parent, Scale sizes it and everything below it.
type Node struct {
	Sprite

	ID     uint32
	Parent *Node
	// Alpha fades the node together with its subtree.
	Alpha   float64
	Visible bool

	children []*Node

	world      [6]float64
	worldAlpha float64
	dirty      bool
	disposed   bool
}

// NewNode returns a visible, white, unparented node.
func NewNode(name string) *Node {
	lastNodeID++
	return &Node{
		Sprite:  Sprite{Name: name, Color: ColorWhite},
		ID:      lastNodeID,
		Alpha:   1,
		Visible: true,
		dirty:   true,
	}
}

// AddChild makes child the last child of n, detaching it from any previous
// parent. It panics on a nil child or when child is n or one of its
// ancestors.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if globalDebug {
		debugCheckLive(n, "AddChild")
		debugCheckLive(child, "AddChild")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("scene: adding child would create a cycle")
		}
	}
	if child.Parent != nil {
		child.Parent.unlink(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	child.MarkDirty()
	if globalDebug {
		debugCheckShape(child)
	}
}

// RemoveChild detaches child from n. It panics if child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("scene: child's parent is not this node")
	}
	n.unlink(child)
	child.Parent = nil
	child.MarkDirty()
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns the children in spawn order. The slice MUST NOT be
// mutated.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns len(n.Children()).
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the i-th child.
func (n *Node) ChildAt(i int) *Node { return n.children[i] }

// Dispose detaches n and marks it and its whole subtree disposed. Disposed
// nodes refuse further inserts and spawns.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	var subtree []*Node
	n.walk(func(d *Node) { subtree = append(subtree, d) })
	for _, d := range subtree {
		d.disposed = true
		d.ID = 0
		d.Parent = nil
		d.children = nil
	}
}

// IsDisposed reports whether Dispose was called on n or an ancestor.
func (n *Node) IsDisposed() bool { return n.disposed }

func (n *Node) unlink(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

// walk visits n and its descendants, parents first.
func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}
