package transform2

// GlobalTransform2 is the 2D readback of a node's host global transform. It
// already includes the node's own Transform2 composed with every ancestor's.
// Only the global sync produces non-identity values.
type GlobalTransform2 struct {
	t   Transform2
	set bool
}

func newGlobalTransform2(t Transform2) GlobalTransform2 {
	return GlobalTransform2{t: t, set: true}
}

// Transform2 returns the composed pose.
func (g GlobalTransform2) Transform2() Transform2 {
	if !g.set {
		return Identity
	}
	return g.t
}

// Translation returns the composed world-space translation.
func (g GlobalTransform2) Translation() Vec2 {
	return g.Transform2().Translation
}

// Depth returns the composed depth.
func (g GlobalTransform2) Depth() float32 {
	return g.Transform2().Depth
}

// Rotation returns the composed rotation in radians.
func (g GlobalTransform2) Rotation() float32 {
	return g.Transform2().Rotation
}

// Scale returns the composed per-axis scale.
func (g GlobalTransform2) Scale() Vec2 {
	return g.Transform2().Scale
}

func (g GlobalTransform2) String() string {
	return g.Transform2().String()
}
