package transform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	gmath "github.com/Faultbox/scenegraph/pkg/math"
)

const tol = 1e-9

// testNode is a minimal Owner used to build hierarchies in tests.
type testNode struct {
	name     string
	parent   *testNode
	children []*testNode
	xf       *Transform
}

func newTestNode(name string) *testNode {
	n := &testNode{name: name}
	n.xf = New(n)
	return n
}

// newGroupNode returns a node without a transform.
func newGroupNode(name string) *testNode {
	return &testNode{name: name}
}

func (n *testNode) ParentOwner() Owner {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *testNode) EachChildOwner(fn func(Owner)) {
	for _, c := range n.children {
		fn(c)
	}
}

func (n *testNode) OwnedTransform() *Transform {
	return n.xf
}

// add attaches c under n, detaching it from any previous parent.
func (n *testNode) add(c *testNode) *testNode {
	if c.parent != nil {
		old := c.parent
		for i, sib := range old.children {
			if sib == c {
				old.children = append(old.children[:i], old.children[i+1:]...)
				break
			}
		}
	}
	c.parent = n
	n.children = append(n.children, c)
	Reparented(c)
	return c
}

// resolveAll reads every cached value so that all dirty bits are clear.
func resolveAll(nodes ...*testNode) {
	for _, n := range nodes {
		if n.xf == nil {
			continue
		}
		n.xf.LocalEuler()
		n.xf.LocalQuat()
		n.xf.LocalMatrix()
		n.xf.WorldMatrix()
		n.xf.WorldPosition()
		n.xf.WorldQuat()
		n.xf.WorldEuler()
		n.xf.LossyScale()
	}
}

func assertVecNear(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.Truef(t, gmath.Vec3Near(want, got, 1e-6), "vectors differ: want %v, got %v", want, got)
}

func assertMatNear(t *testing.T, want, got mgl64.Mat4, eps float64) {
	t.Helper()
	assert.Truef(t, gmath.Mat4Near(want, got, eps), "matrices differ:\nwant %v\ngot  %v", want, got)
}
