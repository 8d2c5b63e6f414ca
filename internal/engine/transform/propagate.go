package transform

// Masks applied by each propagation entry point: the first to the node that
// changed, the second to every descendant. Rotating or scaling a node moves
// its children, so those descendant masks include WorldPosition.
//
//	position: WmWp        / WmWp
//	rotation: WmWeWq      / WmWpWeWq
//	scale:    WmWs        / WmWpWs
//	all:      WmWpWeWqWs  / WmWpWeWqWs

func (t *Transform) propagatePosition() {
	t.propagate(WmWp, WmWp)
}

func (t *Transform) propagateRotation() {
	t.propagate(WmWeWq, WmWpWeWq)
}

func (t *Transform) propagateScale() {
	t.propagate(WmWs, WmWpWs)
}

func (t *Transform) propagateAll() {
	t.propagate(WmWpWeWqWs, WmWpWeWqWs)
}

// propagate is the entry point on the node that changed. Its own
// subscribers are always notified; descent stops if the node was already
// dirty for own, because its subtree is then dirty as well.
func (t *Transform) propagate(own, children Flags) {
	t.stats.Visits++
	t.notify()
	if t.dirty.Test(own) {
		return
	}
	t.dirty.Set(own)
	t.eachChild(func(c *Transform) {
		c.invalidate(children)
	})
}

// invalidate marks mask on a descendant and continues down the subtree
// unless every bit was already set.
func (t *Transform) invalidate(mask Flags) {
	t.stats.Visits++
	if t.dirty.Test(mask) {
		return
	}
	t.dirty.Set(mask)
	t.notify()
	t.eachChild(func(c *Transform) {
		c.invalidate(mask)
	})
}
