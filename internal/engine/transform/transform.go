// Package transform implements the lazily evaluated spatial state of a
// scene-graph node.
//
// A Transform stores three source values (position, scale and whichever
// rotation representation was assigned last) and caches every value derived
// from them: the other rotation representation, the local matrix and the
// world-space position, rotation, scale and matrix. Each cached value has a
// dirty bit. Setters mark bits and push invalidation down the subtree;
// getters recompute on demand and clear their bit.
//
// The package is single-threaded. Callers that mutate a hierarchy from more
// than one goroutine must serialize access themselves.
package transform

import (
	"weak"

	"github.com/go-gl/mathgl/mgl64"

	gmath "github.com/Faultbox/scenegraph/pkg/math"
)

// Owner is the scene-graph element a Transform is attached to. Owners
// without a transform are skipped when resolving parents and traversed
// through when propagating to children.
type Owner interface {
	// ParentOwner returns the parent element, or nil at the root.
	ParentOwner() Owner
	// EachChildOwner calls fn for every direct child element.
	EachChildOwner(fn func(Owner))
	// OwnedTransform returns the element's transform, or nil if it has none.
	OwnedTransform() *Transform
}

// Stats counts the work a Transform has done. Tests and the demo use it to
// check that cached reads stay cheap.
type Stats struct {
	ParentWalks int // ancestor-chain resolutions
	Recomputes  int // cached values rebuilt by getters
	Visits      int // propagation calls that reached this node
	Notifies    int // subscriber notification passes
}

// Transform is the spatial state of one scene-graph node.
type Transform struct {
	owner Owner

	// Source values.
	localPosition mgl64.Vec3
	localEuler    mgl64.Vec3 // degrees, valid when LocalEuler is clear
	localQuat     mgl64.Quat // valid when LocalQuat is clear
	localScale    mgl64.Vec3

	// Derived values.
	localMatrix   mgl64.Mat4
	worldPosition mgl64.Vec3
	worldEuler    mgl64.Vec3
	worldQuat     mgl64.Quat
	lossyScale    mgl64.Vec3
	worldMatrix   mgl64.Mat4

	dirty Flags

	parent      weak.Pointer[Transform]
	hasParent   bool
	parentDirty bool

	subscribers []weak.Pointer[Token]

	stats     Stats
	destroyed bool
}

// New creates a Transform for owner with identity rotation, zero position
// and unit scale. owner may be nil for a free-standing transform.
func New(owner Owner) *Transform {
	return &Transform{
		owner:       owner,
		localQuat:   mgl64.QuatIdent(),
		localScale:  gmath.One,
		localMatrix: mgl64.Ident4(),
		worldMatrix: mgl64.Ident4(),
		worldQuat:   mgl64.QuatIdent(),
		lossyScale:  gmath.One,
		dirty:       LocalMatrix | WmWpWeWqWs,
		parentDirty: true,
	}
}

// Owner returns the element this transform belongs to.
func (t *Transform) Owner() Owner {
	return t.owner
}

// Dirty returns the current dirty bits.
func (t *Transform) Dirty() Flags {
	return t.dirty
}

// Stats returns the work counters.
func (t *Transform) Stats() Stats {
	return t.stats
}

// ResetStats zeroes the work counters.
func (t *Transform) ResetStats() {
	t.stats = Stats{}
}

// Destroy detaches the transform from its owner and parent and releases
// every subscriber. Live tokens are raised once on the way out, whatever
// the dirty state. Tokens closed afterwards are no-ops. A destroyed
// transform keeps answering getters as a root.
func (t *Transform) Destroy() {
	if t.destroyed {
		return
	}
	for _, wp := range t.subscribers {
		if tok := wp.Value(); tok != nil {
			tok.changed = true
			tok.owner = nil
		}
	}
	t.subscribers = nil
	t.owner = nil
	t.parent = weak.Pointer[Transform]{}
	t.hasParent = false
	t.parentDirty = true
	t.dirty.Set(WmWpWeWqWs)
	t.destroyed = true
}

// IsDestroyed reports whether Destroy has been called.
func (t *Transform) IsDestroyed() bool {
	return t.destroyed
}
