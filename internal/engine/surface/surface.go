// Package surface defines the contracts between the interaction core and the
// windowing/rendering backend. The SDL window and the GL renderer implement
// them; tests use in-memory fakes.
package surface

import (
	"image/color"

	"github.com/kxrai/alicia-3d-website/internal/engine/camera"
	"github.com/kxrai/alicia-3d-website/internal/engine/picking"
	"github.com/kxrai/alicia-3d-website/internal/engine/scene"
)

// ClickFunc receives a click position in window coordinates.
type ClickFunc func(x, y float32)

// Host owns the window: it mounts drawing surfaces, delivers window-wide
// clicks and applies the presentation around the surface.
type Host interface {
	// Mount attaches a new drawing surface sized to the window.
	Mount() (Surface, error)

	// AddClickListener registers fn for every primary-button click anywhere
	// in the window and returns an ID for RemoveClickListener.
	AddClickListener(fn ClickFunc) int

	// RemoveClickListener unregisters a click listener. Unknown IDs are ignored.
	RemoveClickListener(id int)

	// ApplyPresentation sets the surface opacity and the container
	// background. A background with zero alpha is transparent.
	ApplyPresentation(opacity float32, background color.RGBA)

	// PollEvents dispatches pending input to listeners and reports whether
	// the user asked to quit.
	PollEvents() (quit bool)

	// Present shows the finished frame.
	Present()
}

// Surface is a drawing area inside the host window.
type Surface interface {
	camera.DragSource

	// Bounds returns the surface rectangle in window coordinates.
	Bounds() picking.Rect

	// NewRenderer creates a renderer drawing onto this surface.
	NewRenderer() (Renderer, error)

	// Detach removes the surface from the host. Safe to call twice.
	Detach()
}

// Renderer draws a scene from a camera onto its surface.
type Renderer interface {
	Render(s *scene.Scene, cam *camera.PerspectiveCamera) error

	// Dispose releases the renderer's GPU state. Safe to call twice.
	Dispose()
}
