// Package game implements the demo frame loop: it loads a scene, advances
// its animations and reads back world transforms the way a renderer would.
package game

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/assets"
	"github.com/Faultbox/scenegraph/internal/config"
	"github.com/Faultbox/scenegraph/internal/engine/debug"
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/internal/engine/transform"
	"github.com/Faultbox/scenegraph/internal/game/entity"
	"github.com/Faultbox/scenegraph/internal/logger"
	gmath "github.com/Faultbox/scenegraph/pkg/math"
)

// Result summarizes a run.
type Result struct {
	Frames         int
	CameraRebuilds int
	DrawCalls      int
	InFrustum      int // draws whose origin was inside the view frustum
	DebugVertices  int
	Stats          transform.Stats
	Elapsed        time.Duration
}

// Game is the demo instance.
type Game struct {
	config  *config.Config
	running bool
	assets  *assets.Manager
	scene   *scene.Scene
	log     *zap.Logger
	lines   []mgl64.Vec3
}

// New creates a game instance and loads its scene. An empty scene path
// selects the built-in orrery.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		assets: assets.NewManager(),
		log:    logger.Named("game"),
	}

	transform.SetDecomposeEpsilon(cfg.Transform.DecomposeEpsilon)

	var err error
	if cfg.Demo.Scene == "" {
		g.scene, err = scene.Build(Orrery())
	} else {
		g.scene, err = scene.Load(cfg.Demo.Scene, g.assets)
	}
	if err != nil {
		g.assets.Close()
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}

	g.log.Info("game initialized",
		zap.String("scene", g.scene.Name),
		zap.Int("entities", g.scene.Entities.Count()),
		zap.Int("frames", cfg.Demo.Frames),
	)
	return g, nil
}

// Scene returns the loaded scene.
func (g *Game) Scene() *scene.Scene {
	return g.scene
}

// Run advances the configured number of frames with a fixed time step.
func (g *Game) Run() (Result, error) {
	g.running = true
	defer func() { g.running = false }()

	var res Result
	start := time.Now()
	dt := float32(g.config.Demo.FrameTime.Seconds())

	g.log.Info("starting frame loop", zap.Float32("dt", dt))

	for frame := 0; frame < g.config.Demo.Frames && g.running; frame++ {
		// 1. Update animations
		active := g.scene.Update(dt)

		// 2. Read transforms as a renderer would
		draws, inside, err := g.render()
		if err != nil {
			return res, fmt.Errorf("frame %d: %w", frame, err)
		}
		res.DrawCalls += draws
		res.InFrustum += inside
		res.Frames++

		if g.config.Demo.DebugBounds {
			g.lines = debug.SceneLines(g.lines[:0], g.scene.Root, debug.DefaultPadding)
			res.DebugVertices += len(g.lines)
		}

		if frame%60 == 0 {
			g.log.Debug("frame",
				zap.Int("frame", frame),
				zap.Int("animations", active),
				zap.Int("camera_rebuilds", g.scene.Camera.Rebuilds()),
			)
		}
	}

	res.CameraRebuilds = g.scene.Camera.Rebuilds()
	res.Stats = g.scene.Stats()
	res.Elapsed = time.Since(start)

	g.log.Info("frame loop finished",
		zap.Int("frames", res.Frames),
		zap.Int("camera_rebuilds", res.CameraRebuilds),
		zap.Int("draw_calls", res.DrawCalls),
		zap.Int("in_frustum", res.InFrustum),
		zap.Int("debug_vertices", res.DebugVertices),
		zap.Int("recomputes", res.Stats.Recomputes),
		zap.Int("visits", res.Stats.Visits),
		zap.Int("parent_walks", res.Stats.ParentWalks),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.scene != nil {
		g.scene.Close()
	}
	g.assets.Close()
}

// render builds the view-projection and reads the world matrix of every
// visible mesh. It returns the number of meshes drawn and how many of them
// have their origin inside the view frustum.
func (g *Game) render() (draws, inside int, err error) {
	viewProj := g.scene.Camera.ViewProjection()

	var bad string
	g.scene.Root.Walk(func(e *entity.Entity) bool {
		if !e.Visible {
			return false
		}
		if e.Type != entity.TypeMesh || e.Transform() == nil {
			return true
		}
		world := e.Transform().WorldMatrix()
		if !gmath.IsFinite(gmath.Translation(world)) {
			bad = e.Path()
			return false
		}
		if inFrustum(viewProj.Mul4(world).Col(3)) {
			inside++
		}
		draws++
		return true
	})
	if bad != "" {
		return draws, inside, fmt.Errorf("non-finite transform at %s", bad)
	}
	return draws, inside, nil
}

// inFrustum reports whether a clip-space point lies inside the clip volume.
func inFrustum(clip mgl64.Vec4) bool {
	w := clip.W()
	if w <= 0 {
		return false
	}
	for i := 0; i < 3; i++ {
		if clip[i] < -w || clip[i] > w {
			return false
		}
	}
	return true
}
