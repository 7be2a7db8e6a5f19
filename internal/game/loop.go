package game

import (
	"time"

	"go.uber.org/zap"
)

// startLoop requests the first tick.
func (s *Session) startLoop() {
	s.frameID = s.frames.Request(s.tick)
	s.hasFrame = true
}

// stopLoop cancels the pending tick.
func (s *Session) stopLoop() {
	if s.hasFrame {
		s.frames.Cancel(s.frameID)
		s.hasFrame = false
	}
}

// tick advances the animation by one refresh and draws the frame.
func (s *Session) tick(time.Time) {
	s.hasFrame = false
	if s.closed {
		return
	}
	b := s.build

	if s.mode.Animates() {
		// Derived from the tick count so float32 rounding does not accumulate.
		angle := float64(s.ticks+1) * s.step
		b.Cube.Rotation.X = float32(float64(s.base.X) + angle)
		b.Cube.Rotation.Y = float32(float64(s.base.Y) + angle)
	}
	b.Outline.Rotation = b.Cube.Rotation

	b.Controls.Update()

	if err := b.Renderer.Render(b.Scene, b.Camera); err != nil {
		s.log.Error("render failed", zap.Error(err))
	}
	s.ticks++

	if !s.closed {
		s.frameID = s.frames.Request(s.tick)
		s.hasFrame = true
	}
}
