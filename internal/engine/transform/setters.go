package transform

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/logger"
	gmath "github.com/Faultbox/scenegraph/pkg/math"
)

// SetLocalPosition sets the position relative to the parent.
func (t *Transform) SetLocalPosition(p mgl64.Vec3) {
	t.localPosition = p
	t.dirty.Set(LocalMatrix)
	t.propagatePosition()
}

// SetLocalEuler sets the local rotation from Euler angles in degrees. The
// angles become the canonical rotation and are returned unchanged by
// LocalEuler.
func (t *Transform) SetLocalEuler(e mgl64.Vec3) {
	t.localEuler = e
	t.dirty.Set(LocalMatrix | LocalQuat)
	t.dirty.Clear(LocalEuler)
	t.propagateRotation()
}

// SetLocalQuat sets the local rotation from a quaternion, which is
// normalized and becomes the canonical rotation.
func (t *Transform) SetLocalQuat(q mgl64.Quat) {
	t.localQuat = q.Normalize()
	t.dirty.Set(LocalMatrix | LocalEuler)
	t.dirty.Clear(LocalQuat)
	t.propagateRotation()
}

// SetLocalScale sets the scale relative to the parent.
func (t *Transform) SetLocalScale(s mgl64.Vec3) {
	t.localScale = s
	t.dirty.Set(LocalMatrix)
	t.propagateScale()
}

// SetLocalMatrix replaces the local matrix and decomposes it into position,
// rotation and scale. It returns false when the rotation could not be
// recovered; the rotation then falls back to identity while position and
// the measured scale are still applied. The matrix itself is kept as given.
func (t *Transform) SetLocalMatrix(m mgl64.Mat4) bool {
	pos, rot, scale, ok := gmath.Decompose(m, DecomposeEpsilon())
	if !ok {
		logger.Named("transform").Warn("matrix decomposition failed, using identity rotation",
			zap.Float64("det", m.Det()),
			zap.Float64("epsilon", DecomposeEpsilon()),
		)
	}

	t.localMatrix = m
	t.localPosition = pos
	t.localQuat = rot
	t.localScale = scale
	t.dirty.Set(LocalEuler)
	t.dirty.Clear(LocalQuat | LocalMatrix)
	t.propagateAll()
	return ok
}

// SetLocalTRS sets position, rotation and scale with a single invalidation
// pass.
func (t *Transform) SetLocalTRS(p mgl64.Vec3, q mgl64.Quat, s mgl64.Vec3) {
	t.localPosition = p
	t.localQuat = q.Normalize()
	t.localScale = s
	t.dirty.Set(LocalMatrix | LocalEuler)
	t.dirty.Clear(LocalQuat)
	t.propagateAll()
}

// Translate moves the node by delta in parent space.
func (t *Transform) Translate(delta mgl64.Vec3) {
	t.SetLocalPosition(t.localPosition.Add(delta))
}

// Rotate applies q after the current local rotation, in local space.
func (t *Transform) Rotate(q mgl64.Quat) {
	t.SetLocalQuat(t.LocalQuat().Mul(q))
}

// SetWorldPosition moves the node so that its world position is p.
func (t *Transform) SetWorldPosition(p mgl64.Vec3) {
	if parent := t.Parent(); parent != nil {
		p = mgl64.TransformCoordinate(p, parent.WorldMatrix().Inv())
	}
	t.SetLocalPosition(p)
}

// SetWorldQuat rotates the node so that its world rotation is q.
func (t *Transform) SetWorldQuat(q mgl64.Quat) {
	if parent := t.Parent(); parent != nil {
		q = parent.WorldQuat().Inverse().Mul(q)
	}
	t.SetLocalQuat(q)
}

// SetWorldEuler rotates the node so that its world rotation matches the
// Euler angles e in degrees. On a root node e becomes the canonical local
// rotation.
func (t *Transform) SetWorldEuler(e mgl64.Vec3) {
	if t.Parent() == nil {
		t.SetLocalEuler(e)
		return
	}
	t.SetWorldQuat(gmath.EulerToQuat(e))
}

// SetWorldMatrix sets the local matrix so that the world matrix becomes m.
// It reports decomposition success like SetLocalMatrix.
func (t *Transform) SetWorldMatrix(m mgl64.Mat4) bool {
	if parent := t.Parent(); parent != nil {
		m = parent.WorldMatrix().Inv().Mul4(m)
	}
	return t.SetLocalMatrix(m)
}
