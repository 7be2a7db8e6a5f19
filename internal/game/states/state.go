// Package states implements the cube's interaction state machine.
package states

import "image/color"

// Mode is an interaction state.
type Mode int

const (
	// Rotating is the initial mode: the cube spins and the surface is shown.
	Rotating Mode = iota
	// Expanded freezes the cube, hides the surface and fills the container
	// with the accent color.
	Expanded
)

func (m Mode) String() string {
	switch m {
	case Rotating:
		return "rotating"
	case Expanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// Animates reports whether the cube spins in this mode.
func (m Mode) Animates() bool {
	return m == Rotating
}

// Presentation is what the host applies around the drawing surface for a
// mode.
type Presentation struct {
	SurfaceOpacity float32
	Background     color.RGBA // Zero value is transparent
}

// Transparent reports whether the container background is see-through.
func (p Presentation) Transparent() bool {
	return p.Background.A == 0
}

// Transition records one mode change.
type Transition struct {
	From, To Mode
}

// Machine holds the current mode. Toggle only schedules a change; Apply
// commits it so the owner can tear down and rebuild between frames.
type Machine struct {
	current Mode
	next    *Mode
	accent  color.RGBA

	listeners []func(Transition)
}

// NewMachine creates a machine in the Rotating mode.
func NewMachine(accent color.RGBA) *Machine {
	return &Machine{current: Rotating, accent: accent}
}

// Current returns the committed mode.
func (m *Machine) Current() Mode {
	return m.current
}

// Pending reports whether a toggle waits to be applied.
func (m *Machine) Pending() bool {
	return m.next != nil
}

// Target returns the mode the machine will be in after Apply.
func (m *Machine) Target() Mode {
	if m.next != nil {
		return *m.next
	}
	return m.current
}

// Toggle schedules a switch to the other mode. Toggling twice before Apply
// cancels out.
func (m *Machine) Toggle() {
	next := Rotating
	if m.Target() == Rotating {
		next = Expanded
	}
	if next == m.current {
		m.next = nil
		return
	}
	m.next = &next
}

// OnTransition registers fn to run on every applied change.
func (m *Machine) OnTransition(fn func(Transition)) {
	m.listeners = append(m.listeners, fn)
}

// Apply commits a pending toggle and notifies listeners. It reports whether
// the mode changed.
func (m *Machine) Apply() bool {
	if m.next == nil {
		return false
	}
	tr := Transition{From: m.current, To: *m.next}
	m.current = *m.next
	m.next = nil

	for _, fn := range m.listeners {
		fn(tr)
	}
	return true
}

// Presentation returns the presentation for the committed mode.
func (m *Machine) Presentation() Presentation {
	return PresentationFor(m.current, m.accent)
}

// PresentationFor maps a mode to its surface opacity and container
// background.
func PresentationFor(mode Mode, accent color.RGBA) Presentation {
	if mode == Expanded {
		return Presentation{SurfaceOpacity: 0, Background: accent}
	}
	return Presentation{SurfaceOpacity: 1}
}
