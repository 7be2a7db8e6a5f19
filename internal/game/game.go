// Package game runs the cube viewer: it owns the window host, the frame
// scheduler and the interaction state machine, and rebuilds the session on
// every mode change.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kxrai/alicia-3d-website/internal/config"
	"github.com/kxrai/alicia-3d-website/internal/engine/frame"
	"github.com/kxrai/alicia-3d-website/internal/engine/surface"
	"github.com/kxrai/alicia-3d-website/internal/engine/texture"
	"github.com/kxrai/alicia-3d-website/internal/game/states"
	"github.com/kxrai/alicia-3d-website/internal/logger"
)

// Game is the main viewer instance.
type Game struct {
	config *config.Config
	log    *zap.Logger

	host    surface.Host
	frames  *frame.Scheduler
	machine *states.Machine
	builder *Builder

	session    *Session
	generation uint64

	now func() time.Time
}

// New creates a viewer on host. No session is open until Start.
func New(cfg *config.Config, host surface.Host, synth *texture.Synthesizer) (*Game, error) {
	accent, err := config.ParseColor(cfg.Presentation.Accent)
	if err != nil {
		return nil, fmt.Errorf("presentation accent: %w", err)
	}

	g := &Game{
		config:  cfg,
		log:     logger.Named("game"),
		host:    host,
		frames:  frame.NewScheduler(),
		machine: states.NewMachine(accent),
		builder: NewBuilder(cfg, synth),
		now:     time.Now,
	}
	g.machine.OnTransition(func(tr states.Transition) {
		g.log.Info("mode changed",
			zap.Stringer("from", tr.From),
			zap.Stringer("to", tr.To),
		)
	})
	return g, nil
}

// Mode returns the committed interaction mode.
func (g *Game) Mode() states.Mode {
	return g.machine.Current()
}

// Session returns the current session. It may be closed if the last open
// failed.
func (g *Game) Session() *Session {
	return g.session
}

// Frames returns the frame scheduler.
func (g *Game) Frames() *frame.Scheduler {
	return g.frames
}

// Start opens the first session in the initial mode.
func (g *Game) Start() error {
	return g.rebuild()
}

// rebuild closes the current session, opens one for the committed mode and
// applies that mode's presentation.
func (g *Game) rebuild() error {
	g.session.Close()

	g.generation++
	mode := g.machine.Current()
	s, err := openSession(g.generation, mode, sessionDeps{
		host:    g.host,
		frames:  g.frames,
		machine: g.machine,
		builder: g.builder,
		commit:  g.commit,
		step:    float64(g.config.Cube.RotationStep),
	})
	g.session = s

	p := g.machine.Presentation()
	g.host.ApplyPresentation(p.SurfaceOpacity, p.Background)

	if err != nil {
		return fmt.Errorf("session %d: %w", g.generation, err)
	}
	return nil
}

// commit applies a pending toggle and rebuilds the session for the new mode.
func (g *Game) commit() {
	if !g.machine.Apply() {
		return
	}
	if err := g.rebuild(); err != nil {
		g.log.Error("failed to rebuild session", zap.Error(err))
	}
}

// Step runs one iteration of the main loop: input (each cube hit commits its
// mode change immediately), any toggle still pending, frame callbacks,
// present. It reports whether the user asked to quit.
func (g *Game) Step() (quit bool) {
	if g.host.PollEvents() {
		return true
	}

	g.commit()

	g.frames.Flush(g.now())
	g.host.Present()
	return false
}

// Run starts the main loop and returns when ctx is done or the user quits.
// The current session is closed before returning.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()

	if g.session == nil {
		if err := g.Start(); err != nil {
			// Keep pumping events so the window can still be closed.
			g.log.Error("failed to open session", zap.Error(err))
		}
	}

	frameCount := 0
	fpsTimer := g.now()

	g.log.Info("starting main loop")
	for {
		select {
		case <-ctx.Done():
			g.log.Info("main loop stopped", zap.Error(ctx.Err()))
			return nil
		default:
		}

		if g.Step() {
			g.log.Info("quit requested")
			return nil
		}

		frameCount++
		if g.config.Debug.ShowFPS && g.now().Sub(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Uint64("session", g.generation))
			frameCount = 0
			fpsTimer = g.now()
		}
	}
}

// Close ends the current session. Safe to call more than once.
func (g *Game) Close() {
	if g.session != nil && !g.session.Closed() {
		g.log.Info("closing viewer")
	}
	g.session.Close()
}
