package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gmath "github.com/Faultbox/scenegraph/pkg/math"
)

func near(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.Truef(t, gmath.Vec3Near(want, got, 1e-6), "want %v, got %v", want, got)
}

func TestNewAssignsTransform(t *testing.T) {
	n := NewNode("n")
	g := NewGroup("g")

	require.NotNil(t, n.Transform())
	assert.Nil(t, g.Transform())
	assert.Same(t, n.Transform(), n.OwnedTransform())
	assert.NotEqual(t, n.ID, g.ID)
	assert.True(t, n.Visible)
}

func TestTypeNames(t *testing.T) {
	for _, typ := range []Type{TypeNode, TypeGroup, TypeCamera, TypeMesh, TypeLight} {
		assert.Equal(t, typ, ParseType(typ.String()))
	}
	assert.Equal(t, TypeNode, ParseType("spaceship"))
	assert.Equal(t, "unknown", Type(200).String())
}

func TestRootParentOwnerIsUntypedNil(t *testing.T) {
	n := NewNode("root")
	assert.True(t, n.ParentOwner() == nil)
	assert.Nil(t, n.Transform().Parent())
}

func TestAddChildComposesWorld(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	root.Transform().SetLocalPosition(mgl64.Vec3{5, 0, 0})
	child.Transform().SetLocalPosition(mgl64.Vec3{1, 2, 3})

	root.AddChild(child)

	assert.Same(t, root, child.Parent())
	assert.Same(t, root.Transform(), child.Transform().Parent())
	near(t, mgl64.Vec3{6, 2, 3}, child.Transform().WorldPosition())
}

func TestGroupIsLookedThrough(t *testing.T) {
	root := NewNode("root")
	group := NewGroup("group")
	leaf := NewNode("leaf")
	root.AddChild(group)
	group.AddChild(leaf)

	root.Transform().SetLocalEuler(mgl64.Vec3{0, 90, 0})
	leaf.Transform().SetLocalPosition(mgl64.Vec3{1, 0, 0})

	assert.Same(t, root.Transform(), leaf.Transform().Parent())
	near(t, mgl64.Vec3{0, 0, -1}, leaf.Transform().WorldPosition())
}

func TestMovingGroupReparentsDescendants(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	group := NewGroup("group")
	leaf := NewNode("leaf")
	a.Transform().SetLocalPosition(mgl64.Vec3{1, 0, 0})
	b.Transform().SetLocalPosition(mgl64.Vec3{0, 10, 0})

	a.AddChild(group)
	group.AddChild(leaf)
	near(t, mgl64.Vec3{1, 0, 0}, leaf.Transform().WorldPosition())

	b.AddChild(group)
	assert.Same(t, b.Transform(), leaf.Transform().Parent())
	near(t, mgl64.Vec3{0, 10, 0}, leaf.Transform().WorldPosition())
}

func TestAddChildAtOrder(t *testing.T) {
	root := NewGroup("root")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	root.AddChild(a)
	root.AddChild(c)
	root.AddChildAt(b, 1)

	require.Equal(t, 3, root.NumChildren())
	assert.Same(t, a, root.ChildAt(0))
	assert.Same(t, b, root.ChildAt(1))
	assert.Same(t, c, root.ChildAt(2))

	// Re-adding an existing child moves it.
	root.AddChildAt(c, 0)
	assert.Same(t, c, root.ChildAt(0))
	assert.Equal(t, 3, root.NumChildren())
}

func TestAddChildPanics(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	root.AddChild(child)

	assert.PanicsWithValue(t, "entity: cannot add nil child", func() { root.AddChild(nil) })
	assert.PanicsWithValue(t, "entity: adding child would create a cycle", func() { child.AddChild(root) })
	assert.PanicsWithValue(t, "entity: adding child would create a cycle", func() { root.AddChild(root) })

	other := NewNode("other")
	assert.PanicsWithValue(t, "entity: child's parent is not this entity", func() { other.RemoveChild(child) })
}

func TestAddChildAtBadIndexLeavesTreeIntact(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewNode("c")
	a.AddChild(c)

	assert.PanicsWithValue(t, "entity: child index out of range", func() { b.AddChildAt(c, 5) })
	assert.PanicsWithValue(t, "entity: child index out of range", func() { b.AddChildAt(c, -1) })

	assert.Same(t, a, c.Parent())
	assert.Equal(t, 1, a.NumChildren())
	assert.Same(t, c, a.ChildAt(0))
	assert.Equal(t, 0, b.NumChildren())
	assert.Equal(t, "a/c", c.Path())

	// Moving within the same parent still clamps to the end.
	d := NewNode("d")
	a.AddChild(d)
	a.AddChildAt(c, 2)
	assert.Same(t, d, a.ChildAt(0))
	assert.Same(t, c, a.ChildAt(1))
}

func TestRemoveChildRestoresLocal(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	root.Transform().SetLocalPosition(mgl64.Vec3{3, 0, 0})
	child.Transform().SetLocalPosition(mgl64.Vec3{1, 0, 0})
	root.AddChild(child)
	near(t, mgl64.Vec3{4, 0, 0}, child.Transform().WorldPosition())

	child.RemoveFromParent()
	assert.Nil(t, child.Parent())
	assert.Nil(t, child.Transform().Parent())
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, child.Transform().WorldPosition())

	// No-op without a parent.
	child.RemoveFromParent()
}

func TestSetParent(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	child.SetParent(root)
	assert.Same(t, root, child.Parent())
	child.SetParent(nil)
	assert.Nil(t, child.Parent())
}

func TestSetParentKeepWorld(t *testing.T) {
	parent := NewNode("parent")
	parent.Transform().SetLocalPosition(mgl64.Vec3{10, 0, 0})
	parent.Transform().SetLocalEuler(mgl64.Vec3{0, 90, 0})
	parent.Transform().SetLocalScale(mgl64.Vec3{2, 2, 2})

	child := NewNode("child")
	child.Transform().SetLocalPosition(mgl64.Vec3{1, 2, 3})
	child.Transform().SetLocalEuler(mgl64.Vec3{0, 0, 30})
	before := child.Transform().WorldMatrix()

	require.True(t, child.SetParentKeepWorld(parent))
	assert.Same(t, parent, child.Parent())
	assert.True(t, gmath.Mat4Near(before, child.Transform().WorldMatrix(), 1e-6))
	near(t, mgl64.Vec3{1, 2, 3}, child.Transform().WorldPosition())
}

func TestTokenFiresOnReparent(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	b.Transform().SetLocalPosition(mgl64.Vec3{0, 1, 0})
	leaf := NewNode("leaf")
	a.AddChild(leaf)

	tok := leaf.Transform().Subscribe()
	leaf.Transform().WorldMatrix()

	b.AddChild(leaf)
	assert.True(t, tok.TakeChanged())
	assert.False(t, tok.TakeChanged())
}

func TestWalkAndFind(t *testing.T) {
	root := NewGroup("root")
	arm := NewNode("arm")
	hand := NewNode("hand")
	leg := NewNode("leg")
	root.AddChild(arm)
	arm.AddChild(hand)
	root.AddChild(leg)

	var names []string
	root.Walk(func(e *Entity) bool {
		names = append(names, e.Name)
		return e.Name != "arm"
	})
	assert.Equal(t, []string{"root", "arm", "leg"}, names)

	assert.Same(t, hand, root.Find("hand"))
	assert.Nil(t, root.Find("tail"))
	assert.Equal(t, "root/arm/hand", hand.Path())
}

func TestDestroy(t *testing.T) {
	root := NewNode("root")
	arm := NewNode("arm")
	hand := NewNode("hand")
	root.AddChild(arm)
	arm.AddChild(hand)

	tok := hand.Transform().Subscribe()
	arm.Destroy()

	assert.True(t, arm.IsDestroyed())
	assert.True(t, hand.IsDestroyed())
	assert.True(t, hand.Transform().IsDestroyed())
	assert.Equal(t, 0, root.NumChildren())
	assert.Nil(t, hand.Parent())

	// Detaching raised the token once; afterwards it stays inert.
	assert.True(t, tok.TakeChanged())
	hand.Transform().SetLocalPosition(mgl64.Vec3{1, 0, 0})
	assert.False(t, tok.TakeChanged())
	tok.Close()
	tok.Close()

	// Idempotent.
	arm.Destroy()

	assert.Panics(t, func() { root.AddChild(arm) })
}

func TestManager(t *testing.T) {
	root := NewGroup("root")
	cam := New("cam", TypeCamera)
	mesh := New("mesh", TypeMesh)
	root.AddChild(cam)
	root.AddChild(mesh)

	m := NewManager()
	m.AddTree(root)

	assert.Equal(t, 3, m.Count())
	assert.Same(t, cam, m.Get(cam.ID))
	assert.Equal(t, 1, m.CountByType(TypeCamera))
	assert.Len(t, m.GetByType(TypeMesh), 1)
	assert.Len(t, m.All(), 3)

	mesh.Destroy()
	assert.Equal(t, 1, m.Prune())
	assert.Nil(t, m.Get(mesh.ID))

	m.Remove(cam.ID)
	assert.Equal(t, 1, m.Count())

	m.ClearAll()
	assert.Equal(t, 0, m.Count())
}
