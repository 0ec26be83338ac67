package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is the 1x1 source image every quad is stretched from.
var whitePixel *ebiten.Image

// quad is one solid rectangle in draw order.
type quad struct {
	node      *Node
	transform [6]float64
	w, h      float64
	color     Color
	alpha     float64
}

// collectQuads appends a quad for every drawable node under n in tree order:
// parents before children, siblings in child order. Invisible nodes hide
// their whole subtree.
func collectQuads(buf []quad, n *Node) []quad {
	if !n.Visible {
		return buf
	}
	if n.Width > 0 && n.Height > 0 && n.Color.A > 0 && n.worldAlpha > 0 {
		buf = append(buf, quad{
			node:      n,
			transform: n.world,
			w:         n.Width,
			h:         n.Height,
			color:     n.Color,
			alpha:     n.Color.A * n.worldAlpha,
		})
	}
	for _, child := range n.children {
		buf = collectQuads(buf, child)
	}
	return buf
}

// Draw renders the scene onto screen. World transforms are refreshed first.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.UpdateTransforms()
	s.quadBuf = collectQuads(s.quadBuf[:0], s.root)
	if len(s.quadBuf) == 0 {
		return
	}
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}

	var op ebiten.DrawImageOptions
	for i := range s.quadBuf {
		q := &s.quadBuf[i]
		op.GeoM.Reset()
		op.GeoM.Scale(q.w, q.h)
		op.GeoM.Concat(affineToGeoM(q.transform))
		op.ColorScale.Reset()
		op.ColorScale.Scale(
			float32(q.color.R*q.alpha),
			float32(q.color.G*q.alpha),
			float32(q.color.B*q.alpha),
			float32(q.alpha),
		)
		screen.DrawImage(whitePixel, &op)
	}
}

// affineToGeoM converts [a, b, c, d, tx, ty] to an ebiten.GeoM.
func affineToGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}
