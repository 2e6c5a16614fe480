package transform2

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// axisZ is the axis orthogonal to the 2D plane.
var axisZ = mgl32.Vec3{0, 0, 1}

// Transform3 is the host's local transform: a translation, a pure rotation
// and a per-axis scale, applied scale first.
type Transform3 struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// Identity3 returns the identity host transform.
func Identity3() Transform3 {
	return Transform3{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix returns the affine matrix T·R·S.
func (t Transform3) Matrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2])
	sc := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return tr.Mul4(t.Rotation.Mat4()).Mul4(sc)
}

// Transform3 converts t into the host's local representation.
//
//	translation = (x, y, depth)
//	rotation    = -Rotation about Z
//	scale       = (sx, sy, 1)
//
// The rotation is negated so the screen convention maps onto the host's
// right-handed one.
func (t Transform2) Transform3() Transform3 {
	return Transform3{
		Translation: mgl32.Vec3{t.Translation.X, t.Translation.Y, t.Depth},
		Rotation:    mgl32.QuatRotate(-t.Rotation, axisZ),
		Scale:       mgl32.Vec3{t.Scale.X, t.Scale.Y, 1},
	}
}

// Decompose splits an affine matrix into scale, rotation and translation.
// The X scale carries the sign of the basis determinant so reflections
// survive. A zero-length axis leaves that basis column unnormalized and the
// returned rotation is then only approximate.
func Decompose(m mgl32.Mat4) (scale mgl32.Vec3, rotation mgl32.Quat, translation mgl32.Vec3) {
	x := mgl32.Vec3{m[0], m[1], m[2]}
	y := mgl32.Vec3{m[4], m[5], m[6]}
	z := mgl32.Vec3{m[8], m[9], m[10]}

	sign := float32(1)
	if x.Dot(y.Cross(z)) < 0 {
		sign = -1
	}
	scale = mgl32.Vec3{x.Len() * sign, y.Len(), z.Len()}

	x = divAxis(x, scale[0])
	y = divAxis(y, scale[1])
	z = divAxis(z, scale[2])

	rotation = mgl32.Mat4ToQuat(mgl32.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}).Normalize()
	translation = mgl32.Vec3{m[12], m[13], m[14]}
	return scale, rotation, translation
}

func divAxis(v mgl32.Vec3, s float32) mgl32.Vec3 {
	if s == 0 {
		return v
	}
	return v.Mul(1 / s)
}

// eulerZ returns the Z angle of q decomposed in Z-Y-X order.
func eulerZ(q mgl32.Quat) float32 {
	x, y, z, w := float64(q.V[0]), float64(q.V[1]), float64(q.V[2]), float64(q.W)
	return float32(math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z)))
}

// GlobalFromMatrix projects a host global matrix onto the 2D plane.
// It is exact when no ancestor tilted the plane; otherwise rotation and
// scale are a best-effort projection.
func GlobalFromMatrix(m mgl32.Mat4) GlobalTransform2 {
	scale, rotation, translation := Decompose(m)
	return newGlobalTransform2(Transform2{
		Translation: Vec2{translation[0], translation[1]},
		Depth:       translation[2],
		Rotation:    -eulerZ(rotation),
		Scale:       Vec2{scale[0], scale[1]},
	})
}
