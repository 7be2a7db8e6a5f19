package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/kxrai/alicia-3d-website/pkg/math"
)

type fakeDragSource struct {
	next      int
	listeners map[int]func(dx, dy float32)
	w, h      int
}

func newFakeDragSource(w, h int) *fakeDragSource {
	return &fakeDragSource{listeners: make(map[int]func(dx, dy float32)), w: w, h: h}
}

func (f *fakeDragSource) AddDragListener(fn func(dx, dy float32)) int {
	f.next++
	f.listeners[f.next] = fn
	return f.next
}

func (f *fakeDragSource) RemoveDragListener(id int) { delete(f.listeners, id) }

func (f *fakeDragSource) Size() (int, int) { return f.w, f.h }

func (f *fakeDragSource) drag(dx, dy float32) {
	for _, fn := range f.listeners {
		fn(dx, dy)
	}
}

func newRig(src DragSource) (*PerspectiveCamera, *OrbitControls) {
	cam := NewPerspectiveCamera(75, 16.0/9.0, 0.1, 1000)
	cam.SetPosition(0, 0, 5)
	cam.LookAt(math.Vec3{})
	ctl := NewOrbitControls(cam, src)
	ctl.EnableDamping = true
	ctl.DampingFactor = 0.25
	ctl.MaxPolarAngle = math32.Pi / 2
	ctl.MinPolarAngle = math32.Pi / 3
	return cam, ctl
}

func TestViewProjectionCentersTarget(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.SetPosition(0, 0, 5)
	cam.LookAt(math.Vec3{})

	clip := cam.ViewProjection().MulVec4(math.Vec4{0, 0, 0, 1})
	if clip[3] == 0 {
		t.Fatal("w should be non-zero")
	}
	if x, y := clip[0]/clip[3], clip[1]/clip[3]; x*x+y*y > 1e-10 {
		t.Errorf("target projects to (%f, %f), want screen center", x, y)
	}
}

func TestUpdateWithoutInputKeepsCamera(t *testing.T) {
	cam, ctl := newRig(nil)
	for i := 0; i < 10; i++ {
		ctl.Update()
	}
	if cam.Position.Distance(math.V3(0, 0, 5)) > 1e-4 {
		t.Errorf("camera drifted to %v", cam.Position)
	}
}

func TestPolarAngleClamped(t *testing.T) {
	src := newFakeDragSource(800, 600)
	cam, ctl := newRig(src)

	// Drag down hard: the camera climbs toward the pole and stops at pi/3.
	src.drag(0, 5000)
	for i := 0; i < 50; i++ {
		ctl.Update()
	}
	if phi := ctl.PolarAngle(); phi < math32.Pi/3-1e-4 || phi > math32.Pi/2+1e-4 {
		t.Errorf("polar angle %f escaped [pi/3, pi/2]", phi)
	}

	// Drag up hard: the camera sinks and stops at the horizon.
	src.drag(0, -5000)
	for i := 0; i < 50; i++ {
		ctl.Update()
	}
	if phi := ctl.PolarAngle(); phi > math32.Pi/2+1e-4 {
		t.Errorf("polar angle %f below horizon", phi)
	}
	if r := cam.Position.Length(); r < 4.999 || r > 5.001 {
		t.Errorf("orbit radius changed to %f", r)
	}
}

func TestDampingEasesOut(t *testing.T) {
	src := newFakeDragSource(800, 600)
	cam, ctl := newRig(src)

	src.drag(60, 0)
	prev := cam.Position
	ctl.Update()
	first := cam.Position.Distance(prev)
	prev = cam.Position
	ctl.Update()
	second := cam.Position.Distance(prev)

	if first == 0 {
		t.Fatal("drag should move the camera")
	}
	if second >= first {
		t.Errorf("damped step grew: first %f, second %f", first, second)
	}
	// Each step keeps (1 - 0.25) of the remaining delta.
	if ratio := second / first; ratio < 0.7 || ratio > 0.8 {
		t.Errorf("step ratio %f, want ~0.75", ratio)
	}
}

func TestDisposeDetachesListener(t *testing.T) {
	src := newFakeDragSource(800, 600)
	cam, ctl := newRig(src)

	if len(src.listeners) != 1 || !ctl.Attached() {
		t.Fatal("controls should register one drag listener")
	}
	ctl.Dispose()
	ctl.Dispose()
	if len(src.listeners) != 0 || ctl.Attached() {
		t.Error("Dispose should remove the drag listener")
	}

	before := cam.Position
	ctl.HandleDrag(100, 0)
	ctl.Update()
	if cam.Position.Distance(before) > 1e-6 {
		t.Error("disposed controls should ignore drags")
	}
}
