package gesture

import (
	"fmt"
	"image"
)

// Mode is the drawing intent for one tick.
type Mode int

const (
	// Idle means no hand was detected.
	Idle Mode = iota
	// Point moves the cursor with the pen lifted.
	Point
	// Draw extends the stroke from the previous cursor to the current one.
	Draw
	// Erase clears a disk around the cursor.
	Erase
)

// EraseRadius is the radius in pixels of the eraser disk.
const EraseRadius = 30

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Point:
		return "point"
	case Draw:
		return "draw"
	case Erase:
		return "erase"
	}
	return "unknown"
}

// ModeFor maps a finger state to its mode. Combinations without a dedicated gesture fall
// back to Point.
func ModeFor(s FingerState) Mode {
	switch {
	case s.Index && s.Middle:
		return Draw
	case !s.Index && !s.Middle:
		return Erase
	default:
		return Point
	}
}

// Action is what the renderer should do this tick.
type Action struct {
	Mode   Mode
	Cursor image.Point

	// From is the stroke origin. Only meaningful when Stroke is true.
	From   image.Point
	Stroke bool
}

// Machine tracks the previous cursor across ticks so strokes stay continuous.
// The zero value is ready to use.
type Machine struct {
	prev    image.Point
	hasPrev bool
}

// NewMachine creates a Machine with no previous cursor.
func NewMachine() *Machine {
	return &Machine{}
}

// Step advances the machine for a tick in which a hand was detected.
func (m *Machine) Step(state FingerState, cursor image.Point) Action {
	action := Action{Mode: ModeFor(state), Cursor: cursor}

	switch action.Mode {
	case Draw:
		if m.hasPrev {
			action.From = m.prev
			action.Stroke = true
		}
		m.prev, m.hasPrev = cursor, true
	case Erase:
		m.clear()
	default:
		m.prev, m.hasPrev = cursor, true
	}

	return action
}

// Lost advances the machine for a tick with no hand. The stroke origin is dropped so the
// next Draw starts fresh instead of jumping across the canvas.
func (m *Machine) Lost() Action {
	m.clear()
	return Action{Mode: Idle}
}

// Previous returns the stroke origin carried into the next tick, if any.
func (m *Machine) Previous() (image.Point, bool) {
	return m.prev, m.hasPrev
}

// Reset forgets the previous cursor.
func (m *Machine) Reset() {
	m.clear()
}

func (m *Machine) clear() {
	m.prev, m.hasPrev = image.Point{}, false
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	for _, mode := range []Mode{Idle, Point, Draw, Erase} {
		if mode.String() == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", text)
}
