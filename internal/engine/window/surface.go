package window

import (
	"github.com/kxrai/alicia-3d-website/internal/engine/picking"
	"github.com/kxrai/alicia-3d-website/internal/engine/renderer"
	"github.com/kxrai/alicia-3d-website/internal/engine/surface"
)

// Surface is the GL drawable of the window, sized at mount time.
type Surface struct {
	window *Window

	width, height         int // Window coordinates
	drawWidth, drawHeight int // Pixels

	drags    map[int]func(dx, dy float32)
	nextDrag int

	renderer *renderer.Renderer
	detached bool
}

// AddDragListener registers fn for left-button drags.
func (s *Surface) AddDragListener(fn func(dx, dy float32)) int {
	s.nextDrag++
	s.drags[s.nextDrag] = fn
	return s.nextDrag
}

// RemoveDragListener unregisters a drag listener.
func (s *Surface) RemoveDragListener(id int) {
	delete(s.drags, id)
}

// Size returns the surface size in window coordinates.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Bounds returns the surface rectangle. The surface fills the window.
func (s *Surface) Bounds() picking.Rect {
	return picking.Rect{Width: float32(s.width), Height: float32(s.height)}
}

// NewRenderer creates a GL renderer for the surface. The window's current
// presentation is applied to it.
func (s *Surface) NewRenderer() (surface.Renderer, error) {
	r, err := renderer.New(renderer.Config{
		Width:          s.drawWidth,
		Height:         s.drawHeight,
		PageBackground: s.window.config.PageBackground,
	})
	if err != nil {
		return nil, err
	}
	r.SetPresentation(s.window.opacity, s.window.background)
	s.renderer = r
	return r, nil
}

// Detach unmounts the surface from the window.
func (s *Surface) Detach() {
	if s.detached {
		return
	}
	s.detached = true
	s.drags = make(map[int]func(dx, dy float32))
	s.renderer = nil
	if s.window.mounted == s {
		s.window.mounted = nil
	}
}

func (s *Surface) dispatchDrag(dx, dy float32) {
	for _, fn := range s.drags {
		fn(dx, dy)
	}
}
