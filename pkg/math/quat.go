package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Euler angles are in degrees and applied in Z, X, Y order
// (R = Ry * Rx * Rz): roll first, then pitch, then yaw.

// EulerToQuat converts Euler angles in degrees to a unit quaternion.
func EulerToQuat(e mgl64.Vec3) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(e[0]), Right)
	qy := mgl64.QuatRotate(mgl64.DegToRad(e[1]), Up)
	qz := mgl64.QuatRotate(mgl64.DegToRad(e[2]), mgl64.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz).Normalize()
}

// QuatToEuler converts a quaternion to Euler angles in degrees.
// Pitch is in [-90, 90]; yaw and roll are in (-180, 180]. At gimbal lock
// (pitch = +-90) roll is reported as zero and folded into yaw.
func QuatToEuler(q mgl64.Quat) mgl64.Vec3 {
	m := q.Normalize().Mat4()

	sinX := -m.At(1, 2)
	sinX = mgl64.Clamp(sinX, -1, 1)
	x := math.Asin(sinX)

	var y, z float64
	if math.Abs(sinX) < 1-1e-9 {
		y = math.Atan2(m.At(0, 2), m.At(2, 2))
		z = math.Atan2(m.At(1, 0), m.At(1, 1))
	} else {
		y = math.Atan2(-m.At(2, 0), m.At(0, 0))
		z = 0
	}

	return mgl64.Vec3{mgl64.RadToDeg(x), mgl64.RadToDeg(y), mgl64.RadToDeg(z)}
}

// QuatNear reports whether a and b describe the same rotation within eps.
// q and -q are treated as equal.
func QuatNear(a, b mgl64.Quat, eps float64) bool {
	return math.Abs(math.Abs(a.Normalize().Dot(b.Normalize()))-1) <= eps
}
