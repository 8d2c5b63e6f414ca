package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/scenegraph/internal/engine/transform"
)

// VecKey is a position or scale keyframe.
type VecKey struct {
	Time  float32 // seconds
	Value mgl64.Vec3
}

// RotKey is a rotation keyframe.
type RotKey struct {
	Time     float32 // seconds
	Rotation mgl64.Quat
}

// Track holds the keyframes for one transform. Keys must be sorted by time.
// Channels without keys leave the transform's current value alone.
type Track struct {
	Target    *transform.Transform
	PosKeys   []VecKey
	RotKeys   []RotKey
	ScaleKeys []VecKey
}

// surrounding returns the indices of the keys around t and the blend
// factor between them. prev == next when t is outside the key range.
func surrounding(n int, at func(int) float32, t float32) (prev, next int, f float64) {
	for i := 0; i < n; i++ {
		if at(i) > t {
			next = i
			break
		}
		prev = i
		next = i
	}
	if prev == next {
		return prev, next, 0
	}
	t0, t1 := at(prev), at(next)
	if t1 != t0 {
		f = float64((t - t0) / (t1 - t0))
	}
	return prev, next, f
}

// SampleVec interpolates vector keys linearly at time t.
func SampleVec(keys []VecKey, t float32) (mgl64.Vec3, bool) {
	if len(keys) == 0 {
		return mgl64.Vec3{}, false
	}
	prev, next, f := surrounding(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if prev == next {
		return keys[prev].Value, true
	}
	a, b := keys[prev].Value, keys[next].Value
	return a.Add(b.Sub(a).Mul(f)), true
}

// SampleRot slerps rotation keys at time t.
func SampleRot(keys []RotKey, t float32) (mgl64.Quat, bool) {
	if len(keys) == 0 {
		return mgl64.QuatIdent(), false
	}
	prev, next, f := surrounding(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if prev == next {
		return keys[prev].Rotation, true
	}
	return mgl64.QuatSlerp(keys[prev].Rotation, keys[next].Rotation, f), true
}

// Apply writes the track's pose at time t in one setter call.
func (tr *Track) Apply(t float32) {
	xf := tr.Target
	pos, okP := SampleVec(tr.PosKeys, t)
	rot, okR := SampleRot(tr.RotKeys, t)
	scale, okS := SampleVec(tr.ScaleKeys, t)
	if !okP && !okR && !okS {
		return
	}
	if !okP {
		pos = xf.LocalPosition()
	}
	if !okR {
		rot = xf.LocalQuat()
	}
	if !okS {
		scale = xf.LocalScale()
	}
	xf.SetLocalTRS(pos, rot, scale)
}

// Length returns the time of the last key on any channel.
func (tr *Track) Length() float32 {
	var l float32
	if n := len(tr.PosKeys); n > 0 && tr.PosKeys[n-1].Time > l {
		l = tr.PosKeys[n-1].Time
	}
	if n := len(tr.RotKeys); n > 0 && tr.RotKeys[n-1].Time > l {
		l = tr.RotKeys[n-1].Time
	}
	if n := len(tr.ScaleKeys); n > 0 && tr.ScaleKeys[n-1].Time > l {
		l = tr.ScaleKeys[n-1].Time
	}
	return l
}

// Clip plays a set of tracks on a shared clock.
type Clip struct {
	Name   string
	Tracks []*Track
	Loop   bool
	Done   bool

	length float32
	time   float32
}

// NewClip creates a clip whose length is that of its longest track.
func NewClip(name string, loop bool, tracks ...*Track) *Clip {
	c := &Clip{Name: name, Loop: loop, Tracks: tracks}
	for _, tr := range tracks {
		if l := tr.Length(); l > c.length {
			c.length = l
		}
	}
	return c
}

// Length returns the clip duration in seconds.
func (c *Clip) Length() float32 {
	return c.length
}

// Time returns the current clip time.
func (c *Clip) Time() float32 {
	return c.time
}

// Update advances the clip by dt seconds and applies every live track.
// Non-looping clips stop on their last frame.
func (c *Clip) Update(dt float32) {
	if c.Done {
		return
	}
	c.time += dt
	if c.time >= c.length {
		if c.Loop && c.length > 0 {
			for c.time >= c.length {
				c.time -= c.length
			}
		} else {
			c.time = c.length
			c.Done = true
		}
	}

	live := 0
	for _, tr := range c.Tracks {
		if tr.Target.IsDestroyed() {
			continue
		}
		tr.Apply(c.time)
		live++
	}
	if live == 0 {
		c.Done = true
	}
}

// Finished implements Animation.
func (c *Clip) Finished() bool {
	return c.Done
}
