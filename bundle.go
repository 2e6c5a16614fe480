package transform2

import "github.com/hajimehoshi/ebiten/v2"

// BundleOption customizes a node built by one of the bundle constructors.
type BundleOption func(n *Node)

// WithGlobal2 makes the node track its GlobalTransform2.
func WithGlobal2() BundleOption {
	return func(n *Node) {
		n.TrackGlobal2()
	}
}

// WithTransform2 replaces the bundle's default Transform2.
func WithTransform2(t Transform2) BundleOption {
	return func(n *Node) {
		n.SetTransform2(t)
	}
}

func applyBundle(n *Node, t Transform2, opts []BundleOption) *Node {
	n.SetTransform2(t)
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewSpatial2 creates an undrawn node with an identity Transform2.
func NewSpatial2(name string, opts ...BundleOption) *Node {
	return applyBundle(NewNode(name), Identity, opts)
}

// NewSpatial2At creates an undrawn node with a Transform2 at translation.
func NewSpatial2At(name string, translation Vec2, opts ...BundleOption) *Node {
	return applyBundle(NewNode(name), FromTranslation(translation), opts)
}

// NewSprite2 creates a node drawing the whole of img, centered on its
// origin, with an identity Transform2.
func NewSprite2(name string, img *ebiten.Image, opts ...BundleOption) *Node {
	n := NewNode(name)
	n.Image = img
	return applyBundle(n, Identity, opts)
}

// NewSpriteSheet2 creates a node drawing region index of atlas with an
// identity Transform2.
func NewSpriteSheet2(name string, atlas *Atlas, index int, opts ...BundleOption) *Node {
	n := NewNode(name)
	n.Image = atlas.Image
	n.Region = atlas.Region(index)
	return applyBundle(n, Identity, opts)
}
