package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/scenegraph/internal/assets"
	"github.com/Faultbox/scenegraph/internal/engine/motion"
	"github.com/Faultbox/scenegraph/internal/engine/transform"
	"github.com/Faultbox/scenegraph/internal/game/entity"
	"github.com/Faultbox/scenegraph/internal/logger"
	gmath "github.com/Faultbox/scenegraph/pkg/math"
)

// Description is the YAML form of a scene.
type Description struct {
	Name   string      `yaml:"name"`
	Camera *CameraDesc `yaml:"camera,omitempty"`
	Nodes  []NodeDesc  `yaml:"nodes"`
}

// CameraDesc selects the scene camera.
type CameraDesc struct {
	// Follow names the entity the camera follows. Empty creates an orbit
	// camera framing the scene.
	Follow string  `yaml:"follow,omitempty"`
	FovY   float64 `yaml:"fov_y,omitempty"`
	Near   float64 `yaml:"near,omitempty"`
	Far    float64 `yaml:"far,omitempty"`
}

// NodeDesc describes one entity. Matrix, when present, is column-major and
// replaces position, euler and scale.
type NodeDesc struct {
	Name     string       `yaml:"name"`
	Type     string       `yaml:"type,omitempty"`
	Position *[3]float64  `yaml:"position,omitempty"`
	Euler    *[3]float64  `yaml:"euler,omitempty"`
	Scale    *[3]float64  `yaml:"scale,omitempty"`
	Matrix   *[16]float64 `yaml:"matrix,omitempty"`
	Bounds   *[6]float64  `yaml:"bounds,omitempty"`
	Hidden   bool         `yaml:"hidden,omitempty"`
	Tweens   []TweenDesc  `yaml:"tweens,omitempty"`
	Clip     *ClipDesc    `yaml:"clip,omitempty"`
	Children []NodeDesc   `yaml:"children,omitempty"`
}

// TweenDesc animates one property of the enclosing node.
type TweenDesc struct {
	Property string     `yaml:"property"` // position, world_position, euler or scale
	To       [3]float64 `yaml:"to"`
	Duration float32    `yaml:"duration"`
	Ease     string     `yaml:"ease,omitempty"`
}

// ClipDesc is a keyframed animation of the enclosing node.
type ClipDesc struct {
	Loop bool      `yaml:"loop,omitempty"`
	Keys []KeyDesc `yaml:"keys"`
}

// KeyDesc is one keyframe. Channels left out of a key are not keyed at
// that time.
type KeyDesc struct {
	Time     float32     `yaml:"time"`
	Position *[3]float64 `yaml:"position,omitempty"`
	Euler    *[3]float64 `yaml:"euler,omitempty"`
	Scale    *[3]float64 `yaml:"scale,omitempty"`
}

// Parse decodes a YAML scene description.
func Parse(data []byte) (*Description, error) {
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return &desc, nil
}

// Load reads a scene from path. Files ending in .gltf or .glb are imported
// through am; anything else is read as a YAML description.
func Load(path string, am *assets.Manager) (*Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return loadGLTF(path, am)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	desc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return Build(desc)
}

func loadGLTF(path string, am *assets.Manager) (*Scene, error) {
	if am == nil {
		am = assets.NewManager()
	}
	root, report, err := am.LoadScene(path)
	if err != nil {
		return nil, err
	}
	s := New(root.Name)
	s.Attach(nil, root)

	var cam *entity.Entity
	root.Walk(func(e *entity.Entity) bool {
		if cam == nil && e.Type == entity.TypeCamera {
			cam = e
		}
		return cam == nil
	})
	s.UseCamera(cam)

	logger.Info("scene loaded",
		zap.String("path", path),
		zap.Int("entities", s.Entities.Count()),
		zap.Strings("degenerate", report.Degenerate),
	)
	return s, nil
}

// Build instantiates a description.
func Build(desc *Description) (*Scene, error) {
	s := New(desc.Name)
	for i := range desc.Nodes {
		if err := s.build(s.Root, &desc.Nodes[i]); err != nil {
			s.Close()
			return nil, err
		}
	}

	var follow *entity.Entity
	if desc.Camera != nil && desc.Camera.Follow != "" {
		follow = s.Find(desc.Camera.Follow)
		if follow == nil || follow.Transform() == nil {
			s.Close()
			return nil, fmt.Errorf("camera follows unknown node %q", desc.Camera.Follow)
		}
	}
	s.UseCamera(follow)
	if c := desc.Camera; c != nil {
		if c.FovY > 0 {
			s.Camera.FovY = c.FovY
		}
		if c.Near > 0 {
			s.Camera.Near = c.Near
		}
		if c.Far > 0 {
			s.Camera.Far = c.Far
		}
	}

	logger.Info("scene built",
		zap.String("scene", s.Name),
		zap.Int("entities", s.Entities.Count()),
		zap.Int("animations", s.Motion.Len()),
	)
	return s, nil
}

func (s *Scene) build(parent *entity.Entity, d *NodeDesc) error {
	if d.Name == "" {
		return fmt.Errorf("node under %q has no name", parent.Name)
	}
	e := entity.New(d.Name, entity.ParseType(d.Type))
	e.Visible = !d.Hidden
	if d.Bounds != nil {
		e.Bounds = *d.Bounds
	}
	s.Attach(parent, e)

	if xf := e.Transform(); xf != nil {
		if d.Matrix != nil {
			xf.SetLocalMatrix(mgl64.Mat4(*d.Matrix))
		} else {
			if d.Position != nil {
				xf.SetLocalPosition(mgl64.Vec3(*d.Position))
			}
			if d.Euler != nil {
				xf.SetLocalEuler(mgl64.Vec3(*d.Euler))
			}
			if d.Scale != nil {
				xf.SetLocalScale(mgl64.Vec3(*d.Scale))
			}
		}
		for _, td := range d.Tweens {
			tw, err := newTween(xf, td)
			if err != nil {
				return fmt.Errorf("node %q: %w", d.Name, err)
			}
			s.Motion.Add(tw)
		}
		if d.Clip != nil {
			clip, err := newClip(xf, d.Name, d.Clip)
			if err != nil {
				return fmt.Errorf("node %q: %w", d.Name, err)
			}
			s.Motion.Add(clip)
		}
	} else if len(d.Tweens) > 0 || d.Clip != nil {
		return fmt.Errorf("node %q: group nodes cannot be animated", d.Name)
	}

	for i := range d.Children {
		if err := s.build(e, &d.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func newTween(xf *transform.Transform, td TweenDesc) (*motion.Tween, error) {
	fn, ok := motion.EaseByName(td.Ease)
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", td.Ease)
	}
	if td.Duration <= 0 {
		return nil, fmt.Errorf("tween %s: duration must be positive", td.Property)
	}
	to := mgl64.Vec3(td.To)
	switch td.Property {
	case "position":
		return motion.TweenPosition(xf, to, td.Duration, fn), nil
	case "world_position":
		return motion.TweenWorldPosition(xf, to, td.Duration, fn), nil
	case "euler":
		return motion.TweenEuler(xf, to, td.Duration, fn), nil
	case "scale":
		return motion.TweenScale(xf, to, td.Duration, fn), nil
	}
	return nil, fmt.Errorf("unknown tween property %q", td.Property)
}

func newClip(xf *transform.Transform, name string, cd *ClipDesc) (*motion.Clip, error) {
	if len(cd.Keys) == 0 {
		return nil, fmt.Errorf("clip has no keys")
	}
	tr := &motion.Track{Target: xf}
	for i, k := range cd.Keys {
		if k.Time < 0 || (i > 0 && k.Time <= cd.Keys[i-1].Time) {
			return nil, fmt.Errorf("clip key %d: times must be increasing and non-negative", i)
		}
		if k.Position != nil {
			tr.PosKeys = append(tr.PosKeys, motion.VecKey{Time: k.Time, Value: mgl64.Vec3(*k.Position)})
		}
		if k.Euler != nil {
			tr.RotKeys = append(tr.RotKeys, motion.RotKey{Time: k.Time, Rotation: gmath.EulerToQuat(mgl64.Vec3(*k.Euler))})
		}
		if k.Scale != nil {
			tr.ScaleKeys = append(tr.ScaleKeys, motion.VecKey{Time: k.Time, Value: mgl64.Vec3(*k.Scale)})
		}
	}
	return motion.NewClip(name, cd.Loop, tr), nil
}
