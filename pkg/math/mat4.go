package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Compose builds a local-to-parent matrix as T * R * S.
func Compose(position mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) mgl64.Mat4 {
	t := mgl64.Translate3D(position[0], position[1], position[2])
	s := mgl64.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(rotation.Mat4()).Mul4(s)
}

// Translation returns the translation column of m.
func Translation(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}

// Decompose splits an affine matrix into position, rotation and scale.
//
// A negative determinant is absorbed into the X scale. When the determinant
// or any axis length is below eps the rotation cannot be recovered: ok is
// false, rotation is the identity, and position and the measured axis
// lengths are still returned.
func Decompose(m mgl64.Mat4, eps float64) (position mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3, ok bool) {
	position = Translation(m)

	c0 := m.Col(0).Vec3()
	c1 := m.Col(1).Vec3()
	c2 := m.Col(2).Vec3()
	scale = mgl64.Vec3{c0.Len(), c1.Len(), c2.Len()}

	det := m.Mat3().Det()
	if det < 0 {
		scale[0] = -scale[0]
	}

	if math.Abs(det) < eps || math.Abs(scale[0]) < eps || scale[1] < eps || scale[2] < eps {
		return position, mgl64.QuatIdent(), scale, false
	}

	rm := mgl64.Mat3FromCols(c0.Mul(1/scale[0]), c1.Mul(1/scale[1]), c2.Mul(1/scale[2]))
	rotation = mgl64.Mat4ToQuat(rm.Mat4()).Normalize()
	if math.IsNaN(rotation.W) || !IsFinite(rotation.V) {
		return position, mgl64.QuatIdent(), scale, false
	}
	return position, rotation, scale, true
}

// Mat4Near reports whether a and b differ by at most eps per element.
func Mat4Near(a, b mgl64.Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
