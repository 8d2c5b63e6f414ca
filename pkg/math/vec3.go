// Package math provides the small set of geometry helpers the scene graph
// needs on top of mgl64: Euler conversion, matrix composition and
// decomposition, and tolerance comparisons.
package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis vectors in the engine's right-handed, Y-up frame.
var (
	Right   = mgl64.Vec3{1, 0, 0}
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, -1}
	One     = mgl64.Vec3{1, 1, 1}
)

// Vec3Near reports whether a and b differ by at most eps per component.
func Vec3Near(a, b mgl64.Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Vec3Min returns the component-wise minimum.
func Vec3Min(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

// Vec3Max returns the component-wise maximum.
func Vec3Max(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}
