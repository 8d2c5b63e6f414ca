package entity

import (
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/engine/transform"
	"github.com/Faultbox/scenegraph/internal/logger"
)

// AddChild appends child to this entity's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this entity (cycle).
func (e *Entity) AddChild(child *Entity) {
	e.AddChildAt(child, len(e.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (e *Entity) AddChildAt(child *Entity, index int) {
	if child == nil {
		panic("entity: cannot add nil child")
	}
	if child.destroyed || e.destroyed {
		panic("entity: cannot attach a destroyed entity")
	}
	if isAncestor(child, e) {
		panic("entity: adding child would create a cycle")
	}
	if index < 0 || index > len(e.children) {
		panic("entity: child index out of range")
	}
	if child.parent == e {
		e.removeChildByPtr(child)
		if index > len(e.children) {
			index = len(e.children)
		}
	} else if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}

	child.parent = e
	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = child

	logger.Debug("entity reparented",
		zap.Uint32("id", child.ID),
		zap.String("name", child.Name),
		zap.String("parent", e.Name),
	)
	transform.Reparented(child)
}

// RemoveChild detaches child from this entity.
// Panics if child's parent is not this entity.
func (e *Entity) RemoveChild(child *Entity) {
	if child.parent != e {
		panic("entity: child's parent is not this entity")
	}
	e.removeChildByPtr(child)
	child.parent = nil

	logger.Debug("entity detached", zap.Uint32("id", child.ID), zap.String("name", child.Name))
	transform.Reparented(child)
}

// RemoveFromParent detaches this entity from its parent.
// No-op if this entity has no parent.
func (e *Entity) RemoveFromParent() {
	if e.parent == nil {
		return
	}
	e.parent.RemoveChild(e)
}

// SetParent moves e under parent, or detaches it when parent is nil. The
// local transform is kept, so the world transform follows the new parent.
func (e *Entity) SetParent(parent *Entity) {
	if parent == nil {
		e.RemoveFromParent()
		return
	}
	parent.AddChild(e)
}

// SetParentKeepWorld moves e under parent while preserving its world
// transform. It returns false if the new local matrix could not be
// decomposed (see transform.Transform.SetLocalMatrix).
func (e *Entity) SetParentKeepWorld(parent *Entity) bool {
	if e.Transform() == nil {
		e.SetParent(parent)
		return true
	}
	world := e.Transform().WorldMatrix()
	e.SetParent(parent)
	return e.Transform().SetWorldMatrix(world)
}

// Parent returns the parent entity, or nil.
func (e *Entity) Parent() *Entity {
	return e.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Entity) Children() []*Entity {
	return e.children
}

// NumChildren returns the number of children.
func (e *Entity) NumChildren() int {
	return len(e.children)
}

// ChildAt returns the child at the given index.
func (e *Entity) ChildAt(index int) *Entity {
	return e.children[index]
}

// Walk visits e and its descendants depth-first. Returning false from fn
// skips the entity's children.
func (e *Entity) Walk(fn func(*Entity) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// Find returns the first entity named name in e's subtree, or nil.
func (e *Entity) Find(name string) *Entity {
	var found *Entity
	e.Walk(func(c *Entity) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// Destroy removes this entity from its parent and recursively destroys it
// and all descendants, releasing their transforms.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.RemoveFromParent()
	e.destroy()
}

func (e *Entity) destroy() {
	e.destroyed = true
	for _, child := range e.children {
		child.parent = nil
		child.destroy()
	}
	e.children = nil
	if e.Transform() != nil {
		e.Transform().Destroy()
	}
	e.UserData = nil
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Entity) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.parent.
func (e *Entity) removeChildByPtr(child *Entity) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}
