package game

import (
	"image/color"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/kxrai/alicia-3d-website/internal/config"
	"github.com/kxrai/alicia-3d-website/internal/engine/camera"
	"github.com/kxrai/alicia-3d-website/internal/engine/picking"
	"github.com/kxrai/alicia-3d-website/internal/engine/scene"
	"github.com/kxrai/alicia-3d-website/internal/engine/surface"
	"github.com/kxrai/alicia-3d-website/pkg/math"
)

// fakeHost is an in-memory window. Queued clicks are delivered on PollEvents.
type fakeHost struct {
	bounds      picking.Rect
	mountErr    error
	rendererErr error

	surfaces  []*fakeSurface
	listeners map[int]surface.ClickFunc
	nextID    int

	clicks [][2]float32
	quit   bool

	opacity       float32
	background    color.RGBA
	presentations int
	presents      int
}

func newFakeHost(w, h float32) *fakeHost {
	return &fakeHost{
		bounds:    picking.Rect{Width: w, Height: h},
		listeners: make(map[int]surface.ClickFunc),
	}
}

func (h *fakeHost) Mount() (surface.Surface, error) {
	if h.mountErr != nil {
		return nil, h.mountErr
	}
	s := &fakeSurface{
		bounds:      h.bounds,
		rendererErr: h.rendererErr,
		drags:       make(map[int]func(dx, dy float32)),
	}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

func (h *fakeHost) AddClickListener(fn surface.ClickFunc) int {
	h.nextID++
	h.listeners[h.nextID] = fn
	return h.nextID
}

func (h *fakeHost) RemoveClickListener(id int) {
	delete(h.listeners, id)
}

func (h *fakeHost) ApplyPresentation(opacity float32, background color.RGBA) {
	h.opacity = opacity
	h.background = background
	h.presentations++
}

func (h *fakeHost) PollEvents() bool {
	clicks := h.clicks
	h.clicks = nil
	for _, c := range clicks {
		ids := make([]int, 0, len(h.listeners))
		for id := range h.listeners {
			ids = append(ids, id)
		}
		for _, id := range ids {
			if fn, ok := h.listeners[id]; ok {
				fn(c[0], c[1])
			}
		}
	}
	return h.quit
}

func (h *fakeHost) Present() {
	h.presents++
}

func (h *fakeHost) click(x, y float32) {
	h.clicks = append(h.clicks, [2]float32{x, y})
}

func (h *fakeHost) clickCenter() {
	h.click(h.bounds.X+h.bounds.Width/2, h.bounds.Y+h.bounds.Height/2)
}

func (h *fakeHost) lastSurface() *fakeSurface {
	if len(h.surfaces) == 0 {
		return nil
	}
	return h.surfaces[len(h.surfaces)-1]
}

type fakeSurface struct {
	bounds      picking.Rect
	rendererErr error

	drags  map[int]func(dx, dy float32)
	nextID int

	renderers []*fakeRenderer
	detached  int
}

func (s *fakeSurface) AddDragListener(fn func(dx, dy float32)) int {
	s.nextID++
	s.drags[s.nextID] = fn
	return s.nextID
}

func (s *fakeSurface) RemoveDragListener(id int) {
	delete(s.drags, id)
}

func (s *fakeSurface) Size() (int, int) {
	return int(s.bounds.Width), int(s.bounds.Height)
}

func (s *fakeSurface) Bounds() picking.Rect {
	return s.bounds
}

func (s *fakeSurface) NewRenderer() (surface.Renderer, error) {
	if s.rendererErr != nil {
		return nil, s.rendererErr
	}
	r := &fakeRenderer{}
	s.renderers = append(s.renderers, r)
	return r, nil
}

func (s *fakeSurface) Detach() {
	s.detached++
}

type fakeRenderer struct {
	renders  int
	disposed int

	cubeRotation    math.Vec3
	outlineRotation math.Vec3
}

func (r *fakeRenderer) Render(sc *scene.Scene, cam *camera.PerspectiveCamera) error {
	r.renders++
	for _, m := range sc.Children() {
		switch m.Name {
		case "cube":
			r.cubeRotation = m.Rotation
		case "outline":
			r.outlineRotation = m.Rotation
		}
	}
	return nil
}

func (r *fakeRenderer) Dispose() {
	r.disposed++
}

func newTestGame(t *testing.T, host *fakeHost, fontData []byte) *Game {
	t.Helper()
	cfg := config.Default()
	synth, err := NewFaceSynthesizer(cfg, fontData)
	if err != nil {
		t.Fatalf("NewFaceSynthesizer: %v", err)
	}
	t.Cleanup(func() { synth.Close() })

	g, err := New(cfg, host, synth)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func startedGame(t *testing.T) (*Game, *fakeHost) {
	t.Helper()
	host := newFakeHost(1280, 720)
	g := newTestGame(t, host, goregular.TTF)
	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return g, host
}

func near(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}
