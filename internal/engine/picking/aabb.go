package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	gmath "github.com/Faultbox/scenegraph/pkg/math"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyAABB returns a box that contains nothing; extending it with any point
// yields that point.
func EmptyAABB() AABB {
	inf := gomath.Inf(1)
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// NewAABB creates an AABB from two corners, ordering each axis.
func NewAABB(a, b mgl64.Vec3) AABB {
	return AABB{Min: gmath.Vec3Min(a, b), Max: gmath.Vec3Max(a, b)}
}

// FromArray converts the [minX, minY, minZ, maxX, maxY, maxZ] layout used
// by entity.Entity.Bounds.
func FromArray(b [6]float64) AABB {
	return NewAABB(mgl64.Vec3{b[0], b[1], b[2]}, mgl64.Vec3{b[3], b[4], b[5]})
}

// IsEmpty reports whether the box contains no points.
func (b AABB) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// Extend grows the box to contain p.
func (b AABB) Extend(p mgl64.Vec3) AABB {
	return AABB{Min: gmath.Vec3Min(b.Min, p), Max: gmath.Vec3Max(b.Max, p)}
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b AABB) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// TransformAABB maps a local box through m and returns the world box that
// encloses its eight corners. Rotation and negative scale are handled.
func TransformAABB(local AABB, m mgl64.Mat4) AABB {
	out := EmptyAABB()
	for i := 0; i < 8; i++ {
		corner := mgl64.Vec3{local.Min.X(), local.Min.Y(), local.Min.Z()}
		if i&1 != 0 {
			corner[0] = local.Max.X()
		}
		if i&2 != 0 {
			corner[1] = local.Max.Y()
		}
		if i&4 != 0 {
			corner[2] = local.Max.Z()
		}
		out = out.Extend(mgl64.TransformCoordinate(corner, m))
	}
	return out
}
