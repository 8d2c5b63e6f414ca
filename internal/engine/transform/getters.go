package transform

import (
	"github.com/go-gl/mathgl/mgl64"

	gmath "github.com/Faultbox/scenegraph/pkg/math"
)

// LocalPosition returns the position relative to the parent.
func (t *Transform) LocalPosition() mgl64.Vec3 {
	return t.localPosition
}

// LocalScale returns the scale relative to the parent.
func (t *Transform) LocalScale() mgl64.Vec3 {
	return t.localScale
}

// LocalEuler returns the local rotation as Euler angles in degrees.
func (t *Transform) LocalEuler() mgl64.Vec3 {
	if t.dirty.TestAny(LocalEuler) {
		t.localEuler = gmath.QuatToEuler(t.localQuat)
		t.dirty.Clear(LocalEuler)
		t.stats.Recomputes++
	}
	return t.localEuler
}

// LocalQuat returns the local rotation as a unit quaternion.
func (t *Transform) LocalQuat() mgl64.Quat {
	if t.dirty.TestAny(LocalQuat) {
		t.localQuat = gmath.EulerToQuat(t.localEuler)
		t.dirty.Clear(LocalQuat)
		t.stats.Recomputes++
	}
	return t.localQuat
}

// LocalMatrix returns the local-to-parent matrix T * R * S.
func (t *Transform) LocalMatrix() mgl64.Mat4 {
	if t.dirty.TestAny(LocalMatrix) {
		t.localMatrix = gmath.Compose(t.localPosition, t.LocalQuat(), t.localScale)
		t.dirty.Clear(LocalMatrix)
		t.stats.Recomputes++
	}
	return t.localMatrix
}

// WorldMatrix returns the local-to-world matrix.
func (t *Transform) WorldMatrix() mgl64.Mat4 {
	if t.dirty.TestAny(WorldMatrix) {
		if p := t.Parent(); p != nil {
			t.worldMatrix = p.WorldMatrix().Mul4(t.LocalMatrix())
		} else {
			t.worldMatrix = t.LocalMatrix()
		}
		t.dirty.Clear(WorldMatrix)
		t.stats.Recomputes++
	}
	return t.worldMatrix
}

// WorldPosition returns the position in world space.
func (t *Transform) WorldPosition() mgl64.Vec3 {
	if t.dirty.TestAny(WorldPosition) {
		if t.Parent() != nil {
			t.worldPosition = gmath.Translation(t.WorldMatrix())
		} else {
			t.worldPosition = t.localPosition
		}
		t.dirty.Clear(WorldPosition)
		t.stats.Recomputes++
	}
	return t.worldPosition
}

// WorldQuat returns the rotation in world space.
func (t *Transform) WorldQuat() mgl64.Quat {
	if t.dirty.TestAny(WorldQuat) {
		if p := t.Parent(); p != nil {
			t.worldQuat = p.WorldQuat().Mul(t.LocalQuat()).Normalize()
		} else {
			t.worldQuat = t.LocalQuat()
		}
		t.dirty.Clear(WorldQuat)
		t.stats.Recomputes++
	}
	return t.worldQuat
}

// WorldEuler returns the rotation in world space as Euler angles in degrees.
func (t *Transform) WorldEuler() mgl64.Vec3 {
	if t.dirty.TestAny(WorldEuler) {
		if t.Parent() != nil {
			t.worldEuler = gmath.QuatToEuler(t.WorldQuat())
		} else {
			t.worldEuler = t.LocalEuler()
		}
		t.dirty.Clear(WorldEuler)
		t.stats.Recomputes++
	}
	return t.worldEuler
}

// LossyScale returns an approximation of the world-space scale. Shear
// produced by a rotated child under a non-uniformly scaled ancestor cannot
// be expressed as a vector and is dropped.
func (t *Transform) LossyScale() mgl64.Vec3 {
	if t.dirty.TestAny(WorldScale) {
		if t.Parent() != nil {
			m := t.WorldQuat().Inverse().Mat4().Mat3().Mul3(t.WorldMatrix().Mat3())
			t.lossyScale = mgl64.Vec3{m.At(0, 0), m.At(1, 1), m.At(2, 2)}
		} else {
			t.lossyScale = t.localScale
		}
		t.dirty.Clear(WorldScale)
		t.stats.Recomputes++
	}
	return t.lossyScale
}

// Forward returns the world-space forward (-Z) axis.
func (t *Transform) Forward() mgl64.Vec3 {
	return t.WorldQuat().Rotate(gmath.Forward)
}

// Right returns the world-space right (+X) axis.
func (t *Transform) Right() mgl64.Vec3 {
	return t.WorldQuat().Rotate(gmath.Right)
}

// Up returns the world-space up (+Y) axis.
func (t *Transform) Up() mgl64.Vec3 {
	return t.WorldQuat().Rotate(gmath.Up)
}

// TransformPoint maps a point from local to world space.
func (t *Transform) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, t.WorldMatrix())
}

// InverseTransformPoint maps a point from world to local space.
func (t *Transform) InverseTransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, t.WorldMatrix().Inv())
}
