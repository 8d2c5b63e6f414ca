// Package motion animates transforms over time with gween tweens and
// keyframe clips.
package motion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/scenegraph/internal/engine/transform"
)

// Tween drives one transform property toward a target. Each Update writes
// through the transform's setters, so subscribers see one change per frame.
// If the transform is destroyed the tween stops immediately.
type Tween struct {
	tweens [3]*gween.Tween
	count  int
	apply  func(v [3]float64)
	target *transform.Transform
	Done   bool
}

// Update advances the tween by dt seconds and applies the new value.
func (tw *Tween) Update(dt float32) {
	if tw.Done {
		return
	}
	if tw.target.IsDestroyed() {
		tw.Done = true
		return
	}

	var v [3]float64
	allDone := true
	for i := 0; i < tw.count; i++ {
		val, finished := tw.tweens[i].Update(dt)
		v[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	tw.Done = allDone
	tw.apply(v)
}

// Finished implements Animation.
func (tw *Tween) Finished() bool {
	return tw.Done
}

// Reset rewinds the tween to its start.
func (tw *Tween) Reset() {
	for i := 0; i < tw.count; i++ {
		tw.tweens[i].Reset()
	}
	tw.Done = false
}

// Target returns the animated transform.
func (tw *Tween) Target() *transform.Transform {
	return tw.target
}

func vec3Tween(xf *transform.Transform, from, to mgl64.Vec3, duration float32, fn ease.TweenFunc, set func(mgl64.Vec3)) *Tween {
	tw := &Tween{count: 3, target: xf}
	for i := 0; i < 3; i++ {
		tw.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	tw.apply = func(v [3]float64) { set(mgl64.Vec3(v)) }
	return tw
}

// TweenPosition animates the local position to `to`.
func TweenPosition(xf *transform.Transform, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *Tween {
	return vec3Tween(xf, xf.LocalPosition(), to, duration, fn, xf.SetLocalPosition)
}

// TweenWorldPosition animates the world position to `to`, resolving through
// the parent on every step.
func TweenWorldPosition(xf *transform.Transform, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *Tween {
	return vec3Tween(xf, xf.WorldPosition(), to, duration, fn, xf.SetWorldPosition)
}

// TweenEuler animates the local Euler angles (degrees) to `to`. Angles are
// interpolated component-wise without wrapping.
func TweenEuler(xf *transform.Transform, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *Tween {
	return vec3Tween(xf, xf.LocalEuler(), to, duration, fn, xf.SetLocalEuler)
}

// TweenScale animates the local scale to `to`.
func TweenScale(xf *transform.Transform, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *Tween {
	return vec3Tween(xf, xf.LocalScale(), to, duration, fn, xf.SetLocalScale)
}

// TweenRotation slerps the local rotation to `to`.
func TweenRotation(xf *transform.Transform, to mgl64.Quat, duration float32, fn ease.TweenFunc) *Tween {
	from := xf.LocalQuat()
	to = to.Normalize()
	tw := &Tween{count: 1, target: xf}
	tw.tweens[0] = gween.New(0, 1, duration, fn)
	tw.apply = func(v [3]float64) {
		if v[0] >= 1 {
			xf.SetLocalQuat(to)
			return
		}
		xf.SetLocalQuat(mgl64.QuatSlerp(from, to, v[0]))
	}
	return tw
}

// Animation is anything the Player can advance.
type Animation interface {
	Update(dt float32)
	Finished() bool
}

// Player updates a set of animations and drops finished ones.
type Player struct {
	anims []Animation
}

// Add schedules animations.
func (p *Player) Add(anims ...Animation) {
	p.anims = append(p.anims, anims...)
}

// Update advances every active animation by dt and returns how many are
// still running.
func (p *Player) Update(dt float32) int {
	live := p.anims[:0]
	for _, a := range p.anims {
		a.Update(dt)
		if !a.Finished() {
			live = append(live, a)
		}
	}
	clear(p.anims[len(live):])
	p.anims = live
	return len(live)
}

// Len returns the number of running animations.
func (p *Player) Len() int {
	return len(p.anims)
}

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"inExpo":     ease.InExpo,
	"outExpo":    ease.OutExpo,
	"inBack":     ease.InBack,
	"outBack":    ease.OutBack,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// EaseByName returns the easing function with the given name. An empty
// name selects linear.
func EaseByName(name string) (ease.TweenFunc, bool) {
	if name == "" {
		return ease.Linear, true
	}
	fn, ok := easings[name]
	return fn, ok
}
