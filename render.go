package transform2

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Draw renders every visible node with an Image. World space has its origin
// at the screen center with Y pointing up; nodes are drawn centered on their
// origin in ascending global depth, ties broken by tree order.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	s.drawBuf = s.collectDrawable(s.drawBuf[:0])
	b := screen.Bounds()
	view := viewGeoM(float64(b.Dx()), float64(b.Dy()))

	var op ebiten.DrawImageOptions
	for _, n := range s.drawBuf {
		img := n.Image
		if !n.Region.IsZero() {
			img = img.SubImage(n.Region.rect()).(*ebiten.Image)
		}
		op.GeoM = spriteGeoM(n, img, view)
		op.ColorScale.Reset()
		a := n.Color.A
		op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
		screen.DrawImage(img, &op)
	}

	if s.ShowStats {
		s.drawStats(screen)
	}
}

// collectDrawable appends visible drawable nodes in draw order to buf.
// Invisible nodes hide their whole subtree.
func (s *Scene) collectDrawable(buf []*Node) []*Node {
	var visit func(n *Node)
	visit = func(n *Node) {
		if !n.Visible {
			return
		}
		if n.Image != nil {
			buf = append(buf, n)
		}
		for _, child := range n.children {
			visit(child)
		}
	}
	visit(s.root)
	sort.SliceStable(buf, func(i, j int) bool {
		return globalDepth(buf[i]) < globalDepth(buf[j])
	})
	return buf
}

func globalDepth(n *Node) float32 {
	return n.Global.Get()[14]
}

// viewGeoM maps world space (origin centered, Y up) to screen pixels.
func viewGeoM(w, h float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(1, -1)
	g.Translate(w/2, h/2)
	return g
}

// nodeGeoM projects the node's global matrix onto the 2D plane.
func nodeGeoM(n *Node) ebiten.GeoM {
	m := n.Global.Get()
	var g ebiten.GeoM
	g.SetElement(0, 0, float64(m[0]))
	g.SetElement(1, 0, float64(m[1]))
	g.SetElement(0, 1, float64(m[4]))
	g.SetElement(1, 1, float64(m[5]))
	g.SetElement(0, 2, float64(m[12]))
	g.SetElement(1, 2, float64(m[13]))
	return g
}

// spriteGeoM centers img on the node origin, flips it upright for the Y-up
// view, then applies the node and view transforms.
func spriteGeoM(n *Node, img *ebiten.Image, view ebiten.GeoM) ebiten.GeoM {
	b := img.Bounds()
	var g ebiten.GeoM
	g.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	g.Scale(1, -1)
	g.Concat(nodeGeoM(n))
	g.Concat(view)
	return g
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}
