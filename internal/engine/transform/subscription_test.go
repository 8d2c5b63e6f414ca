package transform

import (
	"runtime"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestTokenExactlyOnce(t *testing.T) {
	n := newTestNode("n")
	tok := n.xf.Subscribe()
	assert.False(t, tok.TakeChanged(), "new token starts clear")

	n.xf.SetLocalPosition(mgl64.Vec3{1, 0, 0})
	n.xf.SetLocalEuler(mgl64.Vec3{0, 30, 0})
	n.xf.SetLocalScale(mgl64.Vec3{2, 2, 2})

	assert.True(t, tok.Peek())
	assert.True(t, tok.TakeChanged())
	assert.False(t, tok.TakeChanged())
}

func TestTokenNotifiedWhenAlreadyDirty(t *testing.T) {
	n := newTestNode("n")
	tok := n.xf.Subscribe()

	// A fresh transform is fully dirty, yet a setter still notifies.
	n.xf.SetLocalPosition(mgl64.Vec3{1, 0, 0})
	assert.True(t, tok.TakeChanged())
}

func TestTokenOnDescendant(t *testing.T) {
	root := newTestNode("root")
	child := root.add(newTestNode("child"))
	resolveAll(root, child)
	tok := child.xf.Subscribe()

	root.xf.SetLocalPosition(mgl64.Vec3{0, 1, 0})
	assert.True(t, tok.TakeChanged())

	// Child stays dirty until read, so a second ancestor move is absorbed.
	root.xf.SetLocalPosition(mgl64.Vec3{0, 2, 0})
	assert.False(t, tok.TakeChanged())

	child.xf.WorldMatrix()
	child.xf.WorldPosition()
	root.xf.SetLocalPosition(mgl64.Vec3{0, 3, 0})
	assert.True(t, tok.TakeChanged())
}

func TestTokenLocalOnlyReadDoesNotNotify(t *testing.T) {
	n := newTestNode("n")
	tok := n.xf.Subscribe()

	n.xf.LocalMatrix()
	n.xf.WorldMatrix()
	assert.False(t, tok.TakeChanged(), "getters never notify")
}

func TestTokenCloseIdempotent(t *testing.T) {
	n := newTestNode("n")
	a := n.xf.Subscribe()
	b := n.xf.Subscribe()
	assert.Equal(t, 2, n.xf.Subscribers())

	a.Close()
	a.Close()
	assert.Equal(t, 1, n.xf.Subscribers())

	n.xf.SetLocalPosition(mgl64.Vec3{1, 0, 0})
	assert.False(t, a.TakeChanged(), "closed token is not notified")
	assert.True(t, b.TakeChanged())
}

func TestTokenCloseAfterDestroy(t *testing.T) {
	n := newTestNode("n")
	tok := n.xf.Subscribe()
	n.xf.Destroy()

	assert.NotPanics(t, tok.Close)
	assert.NotPanics(t, tok.Close)

	late := n.xf.Subscribe()
	assert.Equal(t, 0, n.xf.Subscribers())
	assert.NotPanics(t, late.Close)
}

func TestDroppedTokenIsPruned(t *testing.T) {
	n := newTestNode("n")
	kept := n.xf.Subscribe()
	func() {
		_ = n.xf.Subscribe()
	}()

	runtime.GC()
	runtime.GC()

	n.xf.SetLocalPosition(mgl64.Vec3{1, 0, 0})
	assert.Len(t, n.xf.subscribers, 1)
	assert.True(t, kept.TakeChanged())
	runtime.KeepAlive(kept)
}
