package assets

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/game/entity"
	"github.com/Faultbox/scenegraph/internal/logger"
)

// Report summarizes an import.
type Report struct {
	Nodes int
	// Degenerate lists nodes whose matrix could not be decomposed; they were
	// imported with identity rotation.
	Degenerate []string
}

// Import builds an entity tree from one scene of doc. sceneIndex < 0 selects
// the document's default scene, or the first scene when none is set. The
// returned root is a group named after the scene.
func Import(doc *gltf.Document, sceneIndex int) (*entity.Entity, Report, error) {
	var report Report
	if doc == nil {
		return nil, report, errors.New("nil document")
	}
	if sceneIndex < 0 {
		sceneIndex = 0
		if doc.Scene != nil {
			sceneIndex = int(*doc.Scene)
		}
	}
	if sceneIndex >= len(doc.Scenes) {
		return nil, report, errors.Errorf("scene %d out of range (%d scenes)", sceneIndex, len(doc.Scenes))
	}
	scene := doc.Scenes[sceneIndex]

	name := scene.Name
	if name == "" {
		name = fmt.Sprintf("scene%d", sceneIndex)
	}
	root := entity.NewGroup(name)

	im := importer{doc: doc, visited: make(map[uint32]bool), report: &report}
	for _, idx := range scene.Nodes {
		child, err := im.node(idx)
		if err != nil {
			root.Destroy()
			return nil, report, errors.Wrapf(err, "scene %q", name)
		}
		root.AddChild(child)
	}

	logger.Info("gltf scene imported",
		zap.String("scene", name),
		zap.Int("nodes", report.Nodes),
		zap.Int("degenerate", len(report.Degenerate)),
	)
	return root, report, nil
}

type importer struct {
	doc     *gltf.Document
	visited map[uint32]bool
	report  *Report
}

func (im *importer) node(idx uint32) (*entity.Entity, error) {
	if int(idx) >= len(im.doc.Nodes) {
		return nil, errors.Errorf("node %d out of range", idx)
	}
	if im.visited[idx] {
		return nil, errors.Errorf("node %d referenced twice", idx)
	}
	im.visited[idx] = true

	n := im.doc.Nodes[idx]
	name := n.Name
	if name == "" {
		name = fmt.Sprintf("node%d", idx)
	}

	typ := entity.TypeNode
	switch {
	case n.Mesh != nil:
		typ = entity.TypeMesh
	case n.Camera != nil:
		typ = entity.TypeCamera
	}
	e := entity.New(name, typ)
	e.UserData = idx

	if n.Mesh != nil {
		bounds, err := im.meshBounds(*n.Mesh)
		if err != nil {
			e.Destroy()
			return nil, errors.Wrapf(err, "node %q", name)
		}
		e.Bounds = bounds
	}

	if m, ok := nodeMatrix(n); ok {
		if !e.Transform().SetLocalMatrix(m) {
			im.report.Degenerate = append(im.report.Degenerate, name)
		}
	} else {
		e.Transform().SetLocalTRS(nodeTranslation(n), nodeRotation(n), nodeScale(n))
	}
	im.report.Nodes++

	for _, c := range n.Children {
		child, err := im.node(c)
		if err != nil {
			e.Destroy()
			return nil, errors.Wrapf(err, "node %q", name)
		}
		e.AddChild(child)
	}
	return e, nil
}

// meshBounds merges the POSITION accessor bounds of every primitive.
func (im *importer) meshBounds(idx uint32) ([6]float64, error) {
	var b [6]float64
	if int(idx) >= len(im.doc.Meshes) {
		return b, errors.Errorf("mesh %d out of range", idx)
	}
	first := true
	for _, prim := range im.doc.Meshes[idx].Primitives {
		acc, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if int(acc) >= len(im.doc.Accessors) {
			return b, errors.Errorf("accessor %d out of range", acc)
		}
		a := im.doc.Accessors[acc]
		if len(a.Min) < 3 || len(a.Max) < 3 {
			continue
		}
		for i := 0; i < 3; i++ {
			lo, hi := float64(a.Min[i]), float64(a.Max[i])
			if first || lo < b[i] {
				b[i] = lo
			}
			if first || hi > b[i+3] {
				b[i+3] = hi
			}
		}
		first = false
	}
	return b, nil
}

var identityMatrix = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeMatrix returns the node's explicit matrix, if it carries one other
// than identity.
func nodeMatrix(n *gltf.Node) (mgl64.Mat4, bool) {
	if n.Matrix == [16]float32{} || n.Matrix == identityMatrix {
		return mgl64.Mat4{}, false
	}
	var m mgl64.Mat4
	for i, v := range n.Matrix {
		m[i] = float64(v)
	}
	return m, true
}

func nodeTranslation(n *gltf.Node) mgl64.Vec3 {
	return mgl64.Vec3{float64(n.Translation[0]), float64(n.Translation[1]), float64(n.Translation[2])}
}

// nodeRotation converts the glTF (x, y, z, w) quaternion. An all-zero
// rotation is treated as unset.
func nodeRotation(n *gltf.Node) mgl64.Quat {
	r := n.Rotation
	if r == [4]float32{} {
		return mgl64.QuatIdent()
	}
	return mgl64.Quat{
		W: float64(r[3]),
		V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])},
	}.Normalize()
}

// nodeScale returns the node scale; an all-zero scale is treated as unset.
func nodeScale(n *gltf.Node) mgl64.Vec3 {
	s := n.Scale
	if s == [3]float32{} {
		return mgl64.Vec3{1, 1, 1}
	}
	return mgl64.Vec3{float64(s[0]), float64(s[1]), float64(s[2])}
}
