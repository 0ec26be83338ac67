package prefabtest

// Graph is the entity graph a recorder's log describes.
type Graph[B any] struct {
	// Roots lists entities spawned without a parent, in spawn order.
	Roots []int
	// Children maps an entity to its children in spawn order.
	Children map[int][]int
	// Parent maps a child entity to its parent.
	Parent map[int]int
	// Bundles maps an entity to the bundles inserted into it, in order.
	Bundles map[int][]B
}

// Graph rebuilds the entity graph from the recorded commands.
func (r *Recorder[B]) Graph() Graph[B] {
	g := Graph[B]{
		Children: make(map[int][]int),
		Parent:   make(map[int]int),
		Bundles:  make(map[int][]B),
	}
	for _, c := range r.log {
		switch c.Op {
		case OpSpawn:
			if c.Parent == 0 {
				g.Roots = append(g.Roots, c.Entity)
				continue
			}
			g.Parent[c.Entity] = c.Parent
			g.Children[c.Parent] = append(g.Children[c.Parent], c.Entity)
		case OpInsert:
			g.Bundles[c.Entity] = append(g.Bundles[c.Entity], c.Bundle)
		}
	}
	return g
}

// Count returns the number of commands of the given op.
func (r *Recorder[B]) Count(op Op) int {
	n := 0
	for _, c := range r.log {
		if c.Op == op {
			n++
		}
	}
	return n
}
