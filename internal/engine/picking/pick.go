package picking

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/scenegraph/internal/game/entity"
)

// EntityBounds returns the world-space box of a single entity: the
// transformed local bounds for meshes, the world position for any other
// entity with a transform. ok is false for transformless entities.
func EntityBounds(e *entity.Entity) (box AABB, ok bool) {
	if e.Transform() == nil {
		return AABB{}, false
	}
	if e.Type == entity.TypeMesh {
		return TransformAABB(FromArray(e.Bounds), e.Transform().WorldMatrix()), true
	}
	p := e.Transform().WorldPosition()
	return AABB{Min: p, Max: p}, true
}

// WorldBounds returns the box enclosing every visible entity under root,
// root included. Invisible entities hide their subtree.
func WorldBounds(root *entity.Entity) AABB {
	box := EmptyAABB()
	root.Walk(func(e *entity.Entity) bool {
		if !e.Visible {
			return false
		}
		if b, ok := EntityBounds(e); ok {
			box = box.Union(b)
		}
		return true
	})
	return box
}

// Hit is one ray/entity intersection.
type Hit struct {
	Entity   *entity.Entity
	Distance float64
	Point    mgl64.Vec3
}

// Pick returns the nearest visible mesh under root hit by ray.
func Pick(root *entity.Entity, ray Ray) (Hit, bool) {
	var best Hit
	found := false
	root.Walk(func(e *entity.Entity) bool {
		if !e.Visible {
			return false
		}
		if e.Type != entity.TypeMesh || e.Transform() == nil {
			return true
		}
		box, _ := EntityBounds(e)
		if t, hit := ray.IntersectAABB(box); hit && (!found || t < best.Distance) {
			best = Hit{Entity: e, Distance: t, Point: ray.At(t)}
			found = true
		}
		return true
	})
	return best, found
}
