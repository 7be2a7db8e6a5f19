// Package window handles the SDL2 window and OpenGL context. The window is
// the host of the viewer: it mounts the drawing surface, turns mouse events
// into clicks and drags, and presents frames.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/kxrai/alicia-3d-website/internal/engine/debug"
	"github.com/kxrai/alicia-3d-website/internal/engine/input"
	"github.com/kxrai/alicia-3d-website/internal/engine/surface"
	"github.com/kxrai/alicia-3d-website/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// ErrAlreadyMounted is returned by Mount while a surface is attached.
var ErrAlreadyMounted = errors.New("surface already mounted")

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool

	// PageBackground is shown through a transparent container.
	PageBackground color.RGBA

	// ScreenshotDir receives F12 captures of the rendered scene.
	ScreenshotDir string
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config    Config
	log       *zap.Logger
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	input     *input.Input

	clicks    map[int]surface.ClickFunc
	nextClick int

	mounted *Surface

	opacity    float32
	background color.RGBA

	screenshots *debug.ScreenshotCapture
}

// New creates a new window with OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config:      cfg,
		log:         logger.Named("window"),
		input:       input.New(),
		clicks:      make(map[int]surface.ClickFunc),
		opacity:     1,
		screenshots: debug.NewScreenshotCapture(cfg.ScreenshotDir, "cube"),
	}

	// Initialize SDL2
	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	// We want OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	// Double buffering
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	// Depth buffer
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	// The surface is sized once at mount time, so the window is not resizable.
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	// Create OpenGL context
	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	// Enable VSync
	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Mount attaches a drawing surface covering the whole window.
func (w *Window) Mount() (surface.Surface, error) {
	if w.mounted != nil {
		return nil, ErrAlreadyMounted
	}

	width, height := w.GetSize()
	drawW, drawH := w.sdlWindow.GLGetDrawableSize()
	if width <= 0 || height <= 0 || drawW <= 0 || drawH <= 0 {
		return nil, fmt.Errorf("window has no drawable area (%dx%d)", drawW, drawH)
	}

	s := &Surface{
		window:     w,
		width:      width,
		height:     height,
		drawWidth:  int(drawW),
		drawHeight: int(drawH),
		drags:      make(map[int]func(dx, dy float32)),
	}
	w.mounted = s

	w.log.Debug("surface mounted",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int32("drawable_width", drawW),
		zap.Int32("drawable_height", drawH),
	)
	return s, nil
}

// AddClickListener registers fn for left-button clicks anywhere in the window.
func (w *Window) AddClickListener(fn surface.ClickFunc) int {
	w.nextClick++
	w.clicks[w.nextClick] = fn
	return w.nextClick
}

// RemoveClickListener unregisters a click listener.
func (w *Window) RemoveClickListener(id int) {
	delete(w.clicks, id)
}

// ApplyPresentation sets the surface opacity and the container background.
// The mounted surface's renderer picks the values up immediately; later
// renderers inherit them.
func (w *Window) ApplyPresentation(opacity float32, background color.RGBA) {
	w.opacity = opacity
	w.background = background
	if w.mounted != nil && w.mounted.renderer != nil {
		w.mounted.renderer.SetPresentation(opacity, background)
	}
	w.log.Debug("presentation applied",
		zap.Float32("opacity", opacity),
		zap.Bool("transparent", background.A == 0),
	)
}

// PollEvents dispatches pending SDL events. Left-button releases are clicks
// and left-button motion is routed to the mounted surface as drags. Escape
// or closing the window reports quit.
func (w *Window) PollEvents() bool {
	if w.input.Update() {
		return true
	}

	for _, event := range w.input.Events() {
		switch event.Type {
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				return true
			case sdl.SCANCODE_F12:
				w.captureScreenshot()
			}

		case input.EventMouseUp:
			if event.Button == input.ButtonLeft {
				w.dispatchClick(float32(event.MouseX), float32(event.MouseY))
			}

		case input.EventMouseMove:
			if event.Held && w.mounted != nil {
				w.mounted.dispatchDrag(float32(event.XRel), float32(event.YRel))
			}
		}
	}
	return false
}

func (w *Window) dispatchClick(x, y float32) {
	// A listener may close its session while handling the click, which
	// unregisters it and registers the next session's listener. Only the
	// listeners present when the click arrived receive it.
	ids := make([]int, 0, len(w.clicks))
	for id := range w.clicks {
		ids = append(ids, id)
	}
	for _, id := range ids {
		if fn, ok := w.clicks[id]; ok {
			fn(x, y)
		}
	}
}

func (w *Window) captureScreenshot() {
	if w.mounted == nil || w.mounted.renderer == nil {
		return
	}
	pixels, width, height := w.mounted.renderer.ReadPixels()
	path, err := w.screenshots.CaptureFromPixels("", pixels, width, height)
	if err != nil {
		w.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	w.log.Info("screenshot saved", zap.String("path", path))
}

// Present swaps the OpenGL buffers.
func (w *Window) Present() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}
