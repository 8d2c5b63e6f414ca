package transform

import "weak"

// Parent returns the transform of the nearest ancestor that has one, or nil
// when there is none. The result is cached until Reparent is called.
func (t *Transform) Parent() *Transform {
	if !t.parentDirty {
		if !t.hasParent {
			return nil
		}
		if p := t.parent.Value(); p != nil {
			return p
		}
	}

	t.stats.ParentWalks++
	var found *Transform
	if t.owner != nil {
		for o := t.owner.ParentOwner(); o != nil; o = o.ParentOwner() {
			if p := o.OwnedTransform(); p != nil {
				found = p
				break
			}
		}
	}

	if found != nil {
		t.parent = weak.Make(found)
	} else {
		t.parent = weak.Pointer[Transform]{}
	}
	t.hasParent = found != nil
	t.parentDirty = false
	return found
}

// Reparent records that the owner's ancestry changed. It is the only way to
// invalidate the cached parent, and it invalidates every world-space value
// in the subtree.
func (t *Transform) Reparent() {
	t.parentDirty = true
	t.propagateAll()
}

// Reparented notifies the hierarchy below o that o moved. If o has no
// transform, the nearest transform-bearing descendants are reparented
// instead, since their resolved parent may have changed.
func Reparented(o Owner) {
	if t := o.OwnedTransform(); t != nil {
		t.Reparent()
		return
	}
	o.EachChildOwner(Reparented)
}

// eachChild calls fn for the nearest transform-bearing descendants,
// looking through owners that have no transform.
func (t *Transform) eachChild(fn func(*Transform)) {
	if t.owner == nil {
		return
	}
	t.owner.EachChildOwner(func(o Owner) {
		visitTransformed(o, fn)
	})
}

func visitTransformed(o Owner, fn func(*Transform)) {
	if c := o.OwnedTransform(); c != nil {
		fn(c)
		return
	}
	o.EachChildOwner(func(gc Owner) {
		visitTransformed(gc, fn)
	})
}
