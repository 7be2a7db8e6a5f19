package picking

import (
	"image/color"
	"testing"

	"github.com/kxrai/alicia-3d-website/internal/engine/camera"
	"github.com/kxrai/alicia-3d-website/internal/engine/scene"
	"github.com/kxrai/alicia-3d-website/pkg/math"
)

func TestNDC(t *testing.T) {
	surface := Rect{Width: 800, Height: 600}
	tests := []struct {
		x, y   float32
		nx, ny float32
	}{
		{0, 0, -1, 1},
		{400, 300, 0, 0},
		{800, 600, 1, -1},
		{200, 450, -0.5, -0.5},
	}
	for _, tt := range tests {
		nx, ny := NDC(tt.x, tt.y, surface)
		if nx != tt.nx || ny != tt.ny {
			t.Errorf("NDC(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, nx, ny, tt.nx, tt.ny)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 100, Y: 50, Width: 200, Height: 100}
	if !r.Contains(100, 50) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(300, 100) {
		t.Error("right edge is exclusive")
	}
	if r.Contains(99, 60) || r.Contains(150, 151) {
		t.Error("points outside reported inside")
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.V3(1, 1, 1), math.V3(-1, -1, -1))
	ray := Ray{Origin: [3]float32{0, 0, 5}, Direction: [3]float32{0, 0, -1}}
	d, ok := ray.IntersectAABB(box)
	if !ok || d != 4 {
		t.Errorf("IntersectAABB = (%v, %v), want (4, true)", d, ok)
	}

	miss := Ray{Origin: [3]float32{3, 0, 5}, Direction: [3]float32{0, 0, -1}}
	if _, ok := miss.IntersectAABB(box); ok {
		t.Error("ray beside the box should miss")
	}
}

func TestIntersectTriangleCulling(t *testing.T) {
	// Counter-clockwise when seen from +Z.
	a, b, c := math.V3(-1, -1, 0), math.V3(1, -1, 0), math.V3(0, 1, 0)

	front := Ray{Origin: [3]float32{0, 0, 3}, Direction: [3]float32{0, 0, -1}}
	if d, ok := front.IntersectTriangle(a, b, c, true); !ok || d != 3 {
		t.Errorf("front hit = (%v, %v), want (3, true)", d, ok)
	}

	back := Ray{Origin: [3]float32{0, 0, -3}, Direction: [3]float32{0, 0, 1}}
	if _, ok := back.IntersectTriangle(a, b, c, true); ok {
		t.Error("back face should be culled")
	}
	if _, ok := back.IntersectTriangle(a, b, c, false); !ok {
		t.Error("back face should hit without culling")
	}

	behind := Ray{Origin: [3]float32{0, 0, 3}, Direction: [3]float32{0, 0, 1}}
	if _, ok := behind.IntersectTriangle(a, b, c, false); ok {
		t.Error("triangle behind the origin should not hit")
	}
}

// cubeRig builds the cube, its back-side outline shell and a camera at
// (0,0,5) looking at the origin.
func cubeRig(outlineSide scene.Side) (*scene.Mesh, *scene.Mesh, *camera.PerspectiveCamera) {
	g := scene.NewBoxGeometry(2, 2, 2)
	mats := make([]*scene.Material, scene.FaceCount)
	for i := range mats {
		mats[i] = scene.NewBasicMaterial(scene.Face(i).String(), nil)
	}
	cube := scene.NewMesh("cube", g, mats...)
	outline := scene.NewMesh("outline", g, scene.NewColorMaterial("outline", color.RGBA{255, 255, 255, 255}, outlineSide))
	outline.SetUniformScale(1.05)

	cam := camera.NewPerspectiveCamera(75, 800.0/600.0, 0.1, 1000)
	cam.SetPosition(0, 0, 5)
	cam.LookAt(math.Vec3{})
	return cube, outline, cam
}

func TestPickCenterHitsCubeNotOutline(t *testing.T) {
	cube, outline, cam := cubeRig(scene.BackSide)
	surface := Rect{Width: 800, Height: 600}

	for _, rot := range []math.Vec3{{}, {X: 0.3, Y: 0.7}, {X: 2.1, Y: -1.2}} {
		cube.Rotation = rot
		outline.Rotation = rot

		hit, ok := Pick(400, 300, surface, cam, []*scene.Mesh{cube, outline})
		if !ok {
			t.Fatalf("rotation %v: center click missed", rot)
		}
		if hit.Object != cube {
			t.Errorf("rotation %v: nearest object is %q, want cube", rot, hit.Object.Name)
		}
	}

	cube.Rotation = math.Vec3{}
	hit, _ := Pick(400, 300, surface, cam, []*scene.Mesh{cube, outline})
	if hit.Distance < 3.999 || hit.Distance > 4.001 {
		t.Errorf("distance to front face = %v, want 4", hit.Distance)
	}
	if hit.Group != int(scene.FacePosZ) {
		t.Errorf("hit face %v, want +z", scene.Face(hit.Group))
	}
}

func TestPickFrontSideShellWouldOcclude(t *testing.T) {
	cube, outline, cam := cubeRig(scene.FrontSide)
	hit, ok := Pick(400, 300, Rect{Width: 800, Height: 600}, cam, []*scene.Mesh{cube, outline})
	if !ok || hit.Object != outline {
		t.Error("a front-side shell is nearer than the cube and should win")
	}
}

func TestPickMissesEmptySpace(t *testing.T) {
	cube, outline, cam := cubeRig(scene.BackSide)
	surface := Rect{Width: 800, Height: 600}

	for _, p := range [][2]float32{{0, 0}, {799, 599}, {10, 300}, {400, 5}} {
		if hit, ok := Pick(p[0], p[1], surface, cam, []*scene.Mesh{cube, outline}); ok {
			t.Errorf("click at %v hit %q", p, hit.Object.Name)
		}
	}
}

func TestPickRejectsClicksOutsideSurface(t *testing.T) {
	cube, outline, cam := cubeRig(scene.BackSide)
	// Surface covers only the right half of an 1600x600 window.
	surface := Rect{X: 800, Y: 0, Width: 800, Height: 600}

	if _, ok := Pick(400, 300, surface, cam, []*scene.Mesh{cube, outline}); ok {
		t.Error("click left of the surface must not pick")
	}
	if _, ok := Pick(1200, 300, surface, cam, []*scene.Mesh{cube, outline}); !ok {
		t.Error("click at the surface center should pick the cube")
	}
	if _, ok := Pick(1200, 300, Rect{X: 800}, cam, []*scene.Mesh{cube}); ok {
		t.Error("zero-sized surface must not pick")
	}
}
