package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kxrai/alicia-3d-website/internal/engine/frame"
	"github.com/kxrai/alicia-3d-website/internal/engine/picking"
	"github.com/kxrai/alicia-3d-website/internal/engine/surface"
	"github.com/kxrai/alicia-3d-website/internal/game/states"
	"github.com/kxrai/alicia-3d-website/internal/logger"
	"github.com/kxrai/alicia-3d-website/pkg/math"
)

// Session owns everything allocated for one interaction mode: the mounted
// surface, the click listener, the scene resources and the frame loop.
// A mode change closes the session and opens a new one.
type Session struct {
	generation uint64
	mode       states.Mode
	log        *zap.Logger

	host    surface.Host
	frames  *frame.Scheduler
	machine *states.Machine
	commit  func()
	step    float64

	surface     surface.Surface
	listener    int
	hasListener bool
	build       *Build
	base        math.Vec3 // Cube rotation when the loop started

	frameID  frame.ID
	hasFrame bool
	ticks    uint64

	closed bool
}

// sessionDeps are the long-lived collaborators shared by every session.
type sessionDeps struct {
	host    surface.Host
	frames  *frame.Scheduler
	machine *states.Machine
	builder *Builder
	commit  func()  // Applies a toggle before the next click is handled
	step    float64 // Rotation per tick, radians
}

// openSession mounts a surface, listens for clicks, builds the scene and
// starts the frame loop. On failure everything acquired so far is released
// and the returned session is closed.
func openSession(generation uint64, mode states.Mode, deps sessionDeps) (*Session, error) {
	s := &Session{
		generation: generation,
		mode:       mode,
		log:        logger.ForSession(generation),
		host:       deps.host,
		frames:     deps.frames,
		machine:    deps.machine,
		commit:     deps.commit,
		step:       deps.step,
	}

	surf, err := deps.host.Mount()
	if err != nil {
		s.Close()
		return s, fmt.Errorf("mounting surface: %w", err)
	}
	s.surface = surf

	s.listener = deps.host.AddClickListener(s.handleClick)
	s.hasListener = true

	build, err := deps.builder.Build(surf, s.log)
	s.build = build
	if err != nil {
		s.Close()
		return s, fmt.Errorf("building scene: %w", err)
	}

	s.base = build.Cube.Rotation
	s.startLoop()

	s.log.Info("session opened", zap.Stringer("mode", mode))
	return s, nil
}

// Generation returns the session's sequence number.
func (s *Session) Generation() uint64 {
	return s.generation
}

// Mode returns the interaction mode the session was built for.
func (s *Session) Mode() states.Mode {
	return s.mode
}

// Closed reports whether Close has run.
func (s *Session) Closed() bool {
	return s == nil || s.closed
}

// Build returns the session's scene resources, nil before a successful build.
func (s *Session) Build() *Build {
	if s == nil {
		return nil
	}
	return s.build
}

// Ticks returns how many frames the session has run.
func (s *Session) Ticks() uint64 {
	return s.ticks
}

// handleClick picks against the scene and toggles the mode when the nearest
// hit is the cube. The toggle is committed before returning, so this session
// is usually closed by the time handleClick returns and later clicks in the
// same poll reach its successor.
func (s *Session) handleClick(x, y float32) {
	if s.closed || s.build == nil || s.build.Camera == nil || s.surface == nil {
		return
	}

	hit, ok := picking.Pick(x, y, s.surface.Bounds(), s.build.Camera, s.build.Scene.Children())
	if !ok || hit.Object != s.build.Cube {
		return
	}

	s.log.Debug("cube clicked",
		zap.Float32("x", x),
		zap.Float32("y", y),
		zap.Int("face", hit.Group),
		zap.Float32("distance", hit.Distance),
	)
	s.machine.Toggle()
	if s.commit != nil {
		s.commit()
	}
}

// Close tears the session down in reverse order of acquisition. It is safe
// on a nil or partially opened session and after a previous Close.
func (s *Session) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true

	s.stopLoop()

	if s.hasListener {
		s.host.RemoveClickListener(s.listener)
		s.hasListener = false
	}

	if b := s.build; b != nil {
		if b.Controls != nil {
			b.Controls.Dispose()
		}
		if b.Renderer != nil {
			b.Renderer.Dispose()
		}
		if b.Scene != nil {
			b.Scene.Remove(b.Cube)
			b.Scene.Remove(b.Outline)
		}
		if b.Geometry != nil {
			b.Geometry.Dispose()
		}
		for _, m := range b.Materials {
			if m.Map != nil {
				m.Map.Dispose()
			}
			m.Dispose()
		}
		if b.OutlineMaterial != nil {
			b.OutlineMaterial.Dispose()
		}
	}

	if s.surface != nil {
		s.surface.Detach()
	}

	s.log.Info("session closed", zap.Uint64("ticks", s.ticks))
}
