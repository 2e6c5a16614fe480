package transform2

import "github.com/go-gl/mathgl/mgl32"

// identityMatrix is the root parent transform.
var identityMatrix = mgl32.Ident4()

// updateGlobalTransform recomputes a node's Global slot from its parent's
// global matrix and its own Local slot. parentRecomputed indicates whether
// the parent was recomputed this pass, which forces recomputation of this
// node even if its Local slot did not move. It returns the number of nodes
// whose Global generation advanced.
func updateGlobalTransform(n *Node, parent mgl32.Mat4, parentRecomputed bool) int {
	// The cursor tracks Local on every visit, forced recomputes included.
	localMoved := n.propagated.Observe(n.Local.Generation())
	recompute := localMoved || n.transformDirty || parentRecomputed

	changed := 0
	if recompute {
		if n.Global.Set(parent.Mul4(n.Local.Get().Matrix())) {
			changed++
		}
		n.transformDirty = false
	}

	g := n.Global.Get()
	for _, child := range n.children {
		changed += updateGlobalTransform(child, g, recompute)
	}
	return changed
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point on the 2D plane to this node's
// local coordinate space. Returns the input unchanged if the global matrix
// is singular.
func (n *Node) WorldToLocal(wx, wy float32) (lx, ly float32) {
	g := n.Global.Get()
	if d := g.Det(); d > -1e-12 && d < 1e-12 {
		return wx, wy
	}
	p := g.Inv().Mul4x1(mgl32.Vec4{wx, wy, 0, 1})
	return p[0], p[1]
}

// LocalToWorld converts a local-space point on the 2D plane to world space.
func (n *Node) LocalToWorld(lx, ly float32) (wx, wy float32) {
	p := n.Global.Get().Mul4x1(mgl32.Vec4{lx, ly, 0, 1})
	return p[0], p[1]
}
