package scene

// A node's placement is the affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// Sprites only translate and scale uniformly, so a local matrix is always
// [s, 0, 0, s, X, Y].
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

func (s Sprite) localTransform() [6]float64 {
	k := s.scale()
	return [6]float64{k, 0, 0, k, s.X, s.Y}
}

func compose(parent, local [6]float64) [6]float64 {
	return [6]float64{
		parent[0]*local[0] + parent[2]*local[1],
		parent[1]*local[0] + parent[3]*local[1],
		parent[0]*local[2] + parent[2]*local[3],
		parent[1]*local[2] + parent[3]*local[3],
		parent[0]*local[4] + parent[2]*local[5] + parent[4],
		parent[1]*local[4] + parent[3]*local[5] + parent[5],
	}
}

func apply(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// refresh recomputes world placement below n. A stale parent forces its
// whole subtree to recompute.
func (n *Node) refresh(parent [6]float64, parentAlpha float64, stale bool) {
	stale = stale || n.dirty
	if stale {
		n.world = compose(parent, n.localTransform())
		n.worldAlpha = parentAlpha * n.Alpha
		n.dirty = false
	}
	for _, c := range n.children {
		c.refresh(n.world, n.worldAlpha, stale)
	}
}

// SetPosition moves the node within its parent.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.dirty = true
}

// SetScale sets the node's uniform scale.
func (n *Node) SetScale(s float64) {
	n.Scale = s
	n.dirty = true
}

// MarkDirty schedules the node's subtree for recomputation. Call it after
// writing Sprite fields directly.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// LocalToWorld maps a point in the node's space to scene space, as of the
// last transform update.
func (n *Node) LocalToWorld(x, y float64) (float64, float64) {
	return apply(n.world, x, y)
}

// WorldAlpha is the product of Alpha along the path from the root, as of
// the last transform update.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}
