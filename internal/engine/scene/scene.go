// Package scene ties an entity hierarchy to a camera and running tweens,
// and loads hierarchies from scene description files and glTF.
package scene

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/engine/camera"
	"github.com/Faultbox/scenegraph/internal/engine/motion"
	"github.com/Faultbox/scenegraph/internal/engine/picking"
	"github.com/Faultbox/scenegraph/internal/engine/transform"
	"github.com/Faultbox/scenegraph/internal/game/entity"
	"github.com/Faultbox/scenegraph/internal/logger"
)

// Scene is a loaded hierarchy with its camera and animations.
type Scene struct {
	Name     string
	Root     *entity.Entity
	Entities *entity.Manager
	Camera   *camera.Camera
	Motion   motion.Player

	frame int
}

// New creates an empty scene with a transformless root.
func New(name string) *Scene {
	s := &Scene{
		Name:     name,
		Root:     entity.NewGroup(name),
		Entities: entity.NewManager(),
	}
	s.Entities.Add(s.Root)
	return s
}

// Attach adds e (and its subtree) under parent, or under the root when
// parent is nil.
func (s *Scene) Attach(parent, e *entity.Entity) {
	if parent == nil {
		parent = s.Root
	}
	parent.AddChild(e)
	s.Entities.AddTree(e)
}

// Find returns the first entity with the given name.
func (s *Scene) Find(name string) *entity.Entity {
	return s.Root.Find(name)
}

// Update advances animations by dt seconds and returns the number of
// running tweens.
func (s *Scene) Update(dt float32) int {
	s.frame++
	return s.Motion.Update(dt)
}

// Frame returns the number of Update calls.
func (s *Scene) Frame() int {
	return s.frame
}

// Bounds returns the world-space box around every visible entity.
func (s *Scene) Bounds() picking.AABB {
	return picking.WorldBounds(s.Root)
}

// Pick returns the nearest mesh hit by ray.
func (s *Scene) Pick(ray picking.Ray) (picking.Hit, bool) {
	return picking.Pick(s.Root, ray)
}

// UseCamera makes the scene camera follow e. Without a camera entity the
// scene creates one on an orbit rig framing the current bounds.
func (s *Scene) UseCamera(e *entity.Entity) {
	if e == nil || e.Transform() == nil {
		rig := camera.NewOrbitRig()
		if b := s.Bounds(); !b.IsEmpty() {
			rig.FitToBounds(b.Min, b.Max)
		}
		e = entity.New("camera", entity.TypeCamera)
		s.Attach(nil, e)
		rig.Apply(e.Transform())
	}
	if s.Camera == nil {
		s.Camera = camera.New(e.Transform())
	} else {
		s.Camera.Follow(e.Transform())
	}
	logger.Debug("scene camera", zap.String("scene", s.Name), zap.String("follow", e.Path()))
}

// Stats sums the transform work counters of every entity.
func (s *Scene) Stats() transform.Stats {
	var total transform.Stats
	s.Root.Walk(func(e *entity.Entity) bool {
		if e.Transform() != nil {
			st := e.Transform().Stats()
			total.ParentWalks += st.ParentWalks
			total.Recomputes += st.Recomputes
			total.Visits += st.Visits
			total.Notifies += st.Notifies
		}
		return true
	})
	return total
}

// Dump writes the hierarchy with world positions, one entity per line.
func (s *Scene) Dump(w io.Writer) error {
	var err error
	var walk func(e *entity.Entity, depth int)
	walk = func(e *entity.Entity, depth int) {
		if err != nil {
			return
		}
		line := fmt.Sprintf("%s%s (%s)", strings.Repeat("  ", depth), e.Name, e.Type)
		if e.Transform() != nil {
			line += " world=" + formatVec(e.Transform().WorldPosition())
		}
		if _, err = fmt.Fprintln(w, line); err != nil {
			return
		}
		for _, c := range e.Children() {
			walk(c, depth+1)
		}
	}
	walk(s.Root, 0)
	return err
}

// Close releases the camera and destroys the hierarchy.
func (s *Scene) Close() {
	if s.Camera != nil {
		s.Camera.Close()
	}
	s.Root.Destroy()
	s.Entities.ClearAll()
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X(), v.Y(), v.Z())
}
