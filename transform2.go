package transform2

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector used for translations and scales.
type Vec2 struct {
	X, Y float32
}

var (
	// Vec2Zero is the zero vector.
	Vec2Zero = Vec2{}
	// Vec2One has both components set to 1.
	Vec2One = Vec2{1, 1}
)

// Splat returns a Vec2 with both components set to v.
func Splat(v float32) Vec2 {
	return Vec2{v, v}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Mul returns v scaled by s.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Transform2 is a node's authored local 2D pose. Rotation is in radians and
// uses the screen convention: a positive angle turns the X axis toward the
// Y axis as seen on screen (clockwise with Y pointing up).
//
// Depth places the node along the axis orthogonal to the plane. Children
// inherit it additively, so it doubles as a draw-order offset.
type Transform2 struct {
	Translation Vec2
	Depth       float32
	Rotation    float32
	Scale       Vec2
}

// Identity is the pose with no translation, depth or rotation and unit scale.
var Identity = Transform2{Scale: Vec2One}

// Default returns Identity. The zero Transform2 has zero scale and is
// rarely what callers want.
func Default() Transform2 {
	return Identity
}

// FromTranslation returns Identity moved to translation.
func FromTranslation(translation Vec2) Transform2 {
	t := Identity
	t.Translation = translation
	return t
}

// FromTranslationDepth returns Identity moved to translation at depth.
func FromTranslationDepth(translation Vec2, depth float32) Transform2 {
	t := Identity
	t.Translation = translation
	t.Depth = depth
	return t
}

// FromRotation returns Identity rotated by rotation radians.
func FromRotation(rotation float32) Transform2 {
	t := Identity
	t.Rotation = rotation
	return t
}

// FromScale returns Identity scaled by scale.
func FromScale(scale Vec2) Transform2 {
	t := Identity
	t.Scale = scale
	return t
}

// FromDepth returns Identity at depth.
func FromDepth(depth float32) Transform2 {
	t := Identity
	t.Depth = depth
	return t
}

// WithTranslation returns a copy of t with the given translation.
func (t Transform2) WithTranslation(translation Vec2) Transform2 {
	t.Translation = translation
	return t
}

// WithDepth returns a copy of t with the given depth.
func (t Transform2) WithDepth(depth float32) Transform2 {
	t.Depth = depth
	return t
}

// WithRotation returns a copy of t with the given rotation.
func (t Transform2) WithRotation(rotation float32) Transform2 {
	t.Rotation = rotation
	return t
}

// WithScale returns a copy of t with the given scale.
func (t Transform2) WithScale(scale Vec2) Transform2 {
	t.Scale = scale
	return t
}

// String formats t as "{ T[x, y], D[d], R[r], S[sx, sy] }".
func (t Transform2) String() string {
	return fmt.Sprintf("{ T[%v, %v], D[%v], R[%v], S[%v, %v] }",
		t.Translation.X, t.Translation.Y, t.Depth, t.Rotation, t.Scale.X, t.Scale.Y)
}

// ApproxEqual reports whether every field of t is within eps of o.
// Rotations are compared modulo 2π.
func (t Transform2) ApproxEqual(o Transform2, eps float32) bool {
	return near(t.Translation.X, o.Translation.X, eps) &&
		near(t.Translation.Y, o.Translation.Y, eps) &&
		near(t.Depth, o.Depth, eps) &&
		near(angleDelta(t.Rotation, o.Rotation), 0, eps) &&
		near(t.Scale.X, o.Scale.X, eps) &&
		near(t.Scale.Y, o.Scale.Y, eps)
}

// IsFinite reports whether no field of t is NaN or infinite. Nothing in this
// package rejects non-finite poses; they propagate into the host transform.
func (t Transform2) IsFinite() bool {
	for _, v := range [...]float32{
		t.Translation.X, t.Translation.Y, t.Depth, t.Rotation, t.Scale.X, t.Scale.Y,
	} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func near(a, b, eps float32) bool {
	d := a - b
	return d <= eps && d >= -eps
}

// angleDelta returns a-b wrapped into [-π, π].
func angleDelta(a, b float32) float32 {
	d := math.Remainder(float64(a)-float64(b), 2*math.Pi)
	return float32(d)
}
