// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/scenegraph/internal/engine/picking"
	"github.com/Faultbox/scenegraph/internal/game/entity"
)

// BoxVertexCount is the number of line endpoints per box (12 edges x 2).
const BoxVertexCount = 24

// DefaultPadding is the default padding for selection boxes.
const DefaultPadding = 0.05

// BoxLines returns line endpoints for a wireframe box grown by padding on
// every side. Empty boxes produce no lines.
func BoxLines(b picking.AABB, padding float64) []mgl64.Vec3 {
	if b.IsEmpty() {
		return nil
	}
	pad := mgl64.Vec3{padding, padding, padding}
	lo, hi := b.Min.Sub(pad), b.Max.Add(pad)

	corner := func(x, y, z bool) mgl64.Vec3 {
		c := lo
		if x {
			c[0] = hi[0]
		}
		if y {
			c[1] = hi[1]
		}
		if z {
			c[2] = hi[2]
		}
		return c
	}

	return []mgl64.Vec3{
		// Bottom face
		corner(false, false, false), corner(true, false, false),
		corner(true, false, false), corner(true, false, true),
		corner(true, false, true), corner(false, false, true),
		corner(false, false, true), corner(false, false, false),
		// Top face
		corner(false, true, false), corner(true, true, false),
		corner(true, true, false), corner(true, true, true),
		corner(true, true, true), corner(false, true, true),
		corner(false, true, true), corner(false, true, false),
		// Vertical edges
		corner(false, false, false), corner(false, true, false),
		corner(true, false, false), corner(true, true, false),
		corner(true, false, true), corner(true, true, true),
		corner(false, false, true), corner(false, true, true),
	}
}

// SceneLines appends the world-space boxes of every visible mesh under root
// to dst. Hidden entities hide their subtree.
func SceneLines(dst []mgl64.Vec3, root *entity.Entity, padding float64) []mgl64.Vec3 {
	root.Walk(func(e *entity.Entity) bool {
		if !e.Visible {
			return false
		}
		if e.Type != entity.TypeMesh {
			return true
		}
		if box, ok := picking.EntityBounds(e); ok {
			dst = append(dst, BoxLines(box, padding)...)
		}
		return true
	})
	return dst
}
