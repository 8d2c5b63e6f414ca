// Package camera provides cameras that read their placement from a scene
// transform.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/scenegraph/internal/engine/transform"
)

// Camera derives view and projection matrices from a followed transform.
// The view matrix is rebuilt only when the transform reports a world change.
type Camera struct {
	FovY   float64 // vertical field of view, degrees
	Aspect float64
	Near   float64
	Far    float64

	follow *transform.Transform
	token  *transform.Token

	view     mgl64.Mat4
	valid    bool
	rebuilds int
}

// New creates a camera following xf.
func New(xf *transform.Transform) *Camera {
	return &Camera{
		FovY:   60,
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    1000,
		follow: xf,
		token:  xf.Subscribe(),
	}
}

// Follow switches the camera to another transform.
func (c *Camera) Follow(xf *transform.Transform) {
	c.token.Close()
	c.follow = xf
	c.token = xf.Subscribe()
	c.valid = false
}

// Transform returns the followed transform.
func (c *Camera) Transform() *transform.Transform {
	return c.follow
}

// ViewMatrix returns the world-to-view matrix.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	if c.token.TakeChanged() || !c.valid {
		c.view = c.follow.WorldMatrix().Inv()
		c.valid = true
		c.rebuilds++
	}
	return c.view
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Rebuilds returns how many times the view matrix was recomputed.
func (c *Camera) Rebuilds() int {
	return c.rebuilds
}

// Close releases the camera's subscription.
func (c *Camera) Close() {
	c.token.Close()
}

// OrbitRig places a transform on a sphere around a center point, looking at
// the center.
type OrbitRig struct {
	// Center point to orbit around
	Center mgl64.Vec3

	// Spherical coordinates
	Distance  float64 // Distance from center
	RotationX float64 // Pitch (vertical angle, radians)
	RotationY float64 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64

	// Sensitivity
	DragSensitivity float64
	ZoomSensitivity float64
}

// NewOrbitRig creates a new orbit rig with default settings.
func NewOrbitRig() *OrbitRig {
	return &OrbitRig{
		Distance:        10.0,
		RotationX:       0.5,
		MinDistance:     1.0,
		MaxDistance:     500.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the rig position in world space.
func (r *OrbitRig) Position() mgl64.Vec3 {
	x := r.Distance * gomath.Cos(r.RotationX) * gomath.Sin(r.RotationY)
	y := r.Distance * gomath.Sin(r.RotationX)
	z := r.Distance * gomath.Cos(r.RotationX) * gomath.Cos(r.RotationY)
	return r.Center.Add(mgl64.Vec3{x, y, z})
}

// Apply writes the rig placement into xf's world position and rotation.
func (r *OrbitRig) Apply(xf *transform.Transform) {
	eye := r.Position()
	view := mgl64.LookAtV(eye, r.Center, mgl64.Vec3{0, 1, 0})
	xf.SetWorldPosition(eye)
	xf.SetWorldQuat(mgl64.Mat4ToQuat(view.Inv()))
}

// HandleDrag updates rotation based on mouse drag delta.
func (r *OrbitRig) HandleDrag(deltaX, deltaY float64) {
	r.RotationY -= deltaX * r.DragSensitivity
	r.RotationX = mgl64.Clamp(r.RotationX+deltaY*r.DragSensitivity, r.MinPitch, r.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (r *OrbitRig) HandleZoom(delta float64) {
	r.Distance = mgl64.Clamp(r.Distance-delta*r.Distance*r.ZoomSensitivity, r.MinDistance, r.MaxDistance)
}

// FitToBounds centers the rig on a bounding box and backs off far enough
// to see it.
func (r *OrbitRig) FitToBounds(minV, maxV mgl64.Vec3) {
	r.Center = minV.Add(maxV).Mul(0.5)

	size := maxV.Sub(minV)
	maxSize := gomath.Max(size.X(), gomath.Max(size.Y(), size.Z()))

	r.Distance = mgl64.Clamp(maxSize*1.5, r.MinDistance, r.MaxDistance)
	r.RotationX = 0.6 // Look down at ~35 degrees
	r.RotationY = 0.0
}
