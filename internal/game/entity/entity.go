// Package entity implements scene-graph entities: named elements arranged in
// a parent/child hierarchy, each with an optional transform slot.
package entity

import (
	"github.com/Faultbox/scenegraph/internal/engine/transform"
)

// Type represents the type of entity.
type Type uint8

const (
	TypeNode   Type = iota // plain spatial node
	TypeGroup              // logical grouping, no transform
	TypeCamera             // viewpoint
	TypeMesh               // renderable with local bounds
	TypeLight
)

var typeNames = map[Type]string{
	TypeNode:   "node",
	TypeGroup:  "group",
	TypeCamera: "camera",
	TypeMesh:   "mesh",
	TypeLight:  "light",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseType converts a type name to a Type. Unknown names map to TypeNode.
func ParseType(s string) Type {
	for t, name := range typeNames {
		if name == s {
			return t
		}
	}
	return TypeNode
}

// idCounter is a plain counter; the hierarchy is single-threaded.
var idCounter uint32

func nextID() uint32 {
	idCounter++
	return idCounter
}

// Entity is one element of the scene hierarchy.
type Entity struct {
	ID   uint32
	Type Type
	Name string

	// Bounds is the local-space bounding box of mesh entities as
	// [minX, minY, minZ, maxX, maxY, maxZ].
	Bounds [6]float64

	// Visible is used by bounds and picking queries.
	Visible bool

	UserData any

	xf        *transform.Transform
	parent    *Entity
	children  []*Entity
	destroyed bool
}

// New creates an entity of the given type. Every type except TypeGroup gets
// a transform.
func New(name string, entityType Type) *Entity {
	e := &Entity{
		ID:      nextID(),
		Type:    entityType,
		Name:    name,
		Visible: true,
	}
	if entityType != TypeGroup {
		e.xf = transform.New(e)
	}
	return e
}

// NewNode creates a spatial node.
func NewNode(name string) *Entity {
	return New(name, TypeNode)
}

// NewGroup creates a transformless group.
func NewGroup(name string) *Entity {
	return New(name, TypeGroup)
}

// ParentOwner implements transform.Owner.
func (e *Entity) ParentOwner() transform.Owner {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// EachChildOwner implements transform.Owner.
func (e *Entity) EachChildOwner(fn func(transform.Owner)) {
	for _, c := range e.children {
		fn(c)
	}
}

// Transform returns the entity's spatial state, nil for groups. Entities
// that have one take part in world-space resolution; entities without one
// are looked through. The slot is fixed at creation.
func (e *Entity) Transform() *transform.Transform {
	return e.xf
}

// OwnedTransform implements transform.Owner.
func (e *Entity) OwnedTransform() *transform.Transform {
	return e.xf
}

// IsDestroyed returns true if this entity has been destroyed.
func (e *Entity) IsDestroyed() bool {
	return e.destroyed
}

// Path returns the slash-separated names from the root to e.
func (e *Entity) Path() string {
	if e.parent == nil {
		return e.Name
	}
	return e.parent.Path() + "/" + e.Name
}
