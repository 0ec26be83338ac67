package scene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup eases a set of node fields together. Register it with
// Scene.AddTween or call Update yourself. It stops early when its node is
// disposed.
type TweenGroup struct {
	Done bool

	node  *Node
	lanes []lane
}

// lane drives one float64 field.
type lane struct {
	tw  *gween.Tween
	dst *float64
	end float64
}

func (g *TweenGroup) add(dst *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.lanes = append(g.lanes, lane{
		tw:  gween.New(float32(*dst), float32(to), duration, fn),
		dst: dst,
		end: to,
	})
}

// Update advances every lane by dt seconds. Finished lanes land exactly on
// their target value.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.node.disposed {
		g.Done = true
		return
	}
	done := true
	for _, l := range g.lanes {
		v, finished := l.tw.Update(dt)
		if finished {
			*l.dst = l.end
			continue
		}
		*l.dst = float64(v)
		done = false
	}
	g.node.MarkDirty()
	g.Done = done
}

// TweenSprite eases the node from its current sprite toward to. Every field
// but Name is animated, so when the group finishes the node looks as if to
// had been inserted into it.
func TweenSprite(n *Node, to Sprite, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{node: n}
	n.Scale = n.scale()
	for _, f := range []struct {
		dst *float64
		to  float64
	}{
		{&n.X, to.X},
		{&n.Y, to.Y},
		{&n.Width, to.Width},
		{&n.Height, to.Height},
		{&n.Scale, to.scale()},
		{&n.Color.R, to.Color.R},
		{&n.Color.G, to.Color.G},
		{&n.Color.B, to.Color.B},
		{&n.Color.A, to.Color.A},
	} {
		g.add(f.dst, f.to, duration, fn)
	}
	return g
}

// TweenPosition eases the node to (x, y) within its parent.
func TweenPosition(n *Node, x, y float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{node: n}
	g.add(&n.X, x, duration, fn)
	g.add(&n.Y, y, duration, fn)
	return g
}

// TweenAlpha fades the node and its subtree to alpha.
func TweenAlpha(n *Node, alpha float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{node: n}
	g.add(&n.Alpha, alpha, duration, fn)
	return g
}
