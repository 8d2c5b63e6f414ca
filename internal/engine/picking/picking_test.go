package picking

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/scenegraph/internal/game/entity"
	gmath "github.com/Faultbox/scenegraph/pkg/math"
)

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{-1, -1, -1})

	tests := []struct {
		name string
		ray  Ray
		hit  bool
		dist float64
	}{
		{"front", NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1}), true, 4},
		{"inside", NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}), true, 1},
		{"behind", NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 1}), false, 0},
		{"miss", NewRay(mgl64.Vec3{3, 0, 5}, mgl64.Vec3{0, 0, -1}), false, 0},
		{"parallel outside", NewRay(mgl64.Vec3{0, 2, 5}, mgl64.Vec3{0, 0, -1}), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && gomath.Abs(d-tt.dist) > 1e-9 {
				t.Errorf("distance = %v, want %v", d, tt.dist)
			}
		})
	}
}

func TestIntersectPlaneY(t *testing.T) {
	r := NewRay(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, -1, 0})
	x, z, ok := r.IntersectPlaneY(0)
	if !ok {
		t.Fatal("expected intersection")
	}
	if gomath.Abs(x-10) > 1e-9 || gomath.Abs(z) > 1e-9 {
		t.Errorf("got (%v, %v), want (10, 0)", x, z)
	}

	if _, _, ok := NewRay(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}).IntersectPlaneY(0); ok {
		t.Error("parallel ray should not intersect")
	}
}

func TestScreenToRayCenter(t *testing.T) {
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(mgl64.DegToRad(60), 1, 0.1, 100)
	inv := proj.Mul4(view).Inv()

	r := ScreenToRay(50, 50, 100, 100, inv)
	if !gmath.Vec3Near(r.Direction, mgl64.Vec3{0, 0, -1}, 1e-6) {
		t.Errorf("direction = %v, want (0,0,-1)", r.Direction)
	}
}

func TestTransformAABBRotated(t *testing.T) {
	local := NewAABB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 1, 1})
	m := gmath.Compose(mgl64.Vec3{10, 0, 0}, gmath.EulerToQuat(mgl64.Vec3{0, 90, 0}), gmath.One)

	got := TransformAABB(local, m)
	want := NewAABB(mgl64.Vec3{10, 0, -2}, mgl64.Vec3{11, 1, 0})
	if !gmath.Vec3Near(got.Min, want.Min, 1e-9) || !gmath.Vec3Near(got.Max, want.Max, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEmptyAABB(t *testing.T) {
	b := EmptyAABB()
	if !b.IsEmpty() {
		t.Fatal("expected empty box")
	}
	b = b.Union(EmptyAABB()).Extend(mgl64.Vec3{1, 2, 3})
	if b.IsEmpty() || b.Min != b.Max || !b.Contains(mgl64.Vec3{1, 2, 3}) {
		t.Errorf("unexpected box %v", b)
	}
}

func newMesh(name string, pos mgl64.Vec3) *entity.Entity {
	e := entity.New(name, entity.TypeMesh)
	e.Bounds = [6]float64{-0.5, -0.5, -0.5, 0.5, 0.5, 0.5}
	e.Transform().SetLocalPosition(pos)
	return e
}

func TestWorldBoundsFollowsHierarchy(t *testing.T) {
	root := entity.NewNode("root")
	group := entity.NewGroup("props")
	root.AddChild(group)
	group.AddChild(newMesh("crate", mgl64.Vec3{2, 0, 0}))
	group.AddChild(newMesh("barrel", mgl64.Vec3{-2, 0, 0}))

	b := WorldBounds(root)
	if !gmath.Vec3Near(b.Min, mgl64.Vec3{-2.5, -0.5, -0.5}, 1e-9) || !gmath.Vec3Near(b.Max, mgl64.Vec3{2.5, 0.5, 0.5}, 1e-9) {
		t.Fatalf("unexpected bounds %v", b)
	}

	root.Transform().SetLocalPosition(mgl64.Vec3{0, 10, 0})
	b = WorldBounds(root)
	if !gmath.Vec3Near(b.Center(), mgl64.Vec3{0, 10, 0}, 1e-9) {
		t.Errorf("bounds did not follow root: %v", b)
	}

	group.Visible = false
	b = WorldBounds(root)
	if b.Min != b.Max {
		t.Errorf("hidden group should leave only the root point, got %v", b)
	}
}

func TestPickNearest(t *testing.T) {
	root := entity.NewGroup("root")
	near := newMesh("near", mgl64.Vec3{0, 0, -5})
	far := newMesh("far", mgl64.Vec3{0, 0, -10})
	root.AddChild(far)
	root.AddChild(near)

	ray := NewRay(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1})
	hit, ok := Pick(root, ray)
	if !ok || hit.Entity != near {
		t.Fatalf("expected to pick near, got %+v", hit)
	}
	if gomath.Abs(hit.Distance-4.5) > 1e-9 {
		t.Errorf("distance = %v, want 4.5", hit.Distance)
	}

	near.Transform().SetLocalPosition(mgl64.Vec3{5, 0, -5})
	hit, ok = Pick(root, ray)
	if !ok || hit.Entity != far {
		t.Errorf("expected to pick far after moving near, got %+v", hit)
	}
}
