// Package brush rasterizes strokes onto the canvas buffer.
package brush

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedShape is returned for a Shape value outside the closed set below.
var ErrUnsupportedShape = errors.New("unsupported brush shape")

// Shape selects how a stroke is rendered.
type Shape int

const (
	// Line draws a segment from the previous cursor to the current one.
	Line Shape = iota
	// Circle stamps a filled disk at the current cursor.
	Circle
	// Square stamps a filled axis-aligned square at the current cursor.
	Square
	// Star outlines a six-point polygon around the current cursor.
	Star
)

// Shapes lists every supported shape in display order.
var Shapes = []Shape{Line, Circle, Square, Star}

func (s Shape) String() string {
	switch s {
	case Line:
		return "line"
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Star:
		return "star"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Valid reports whether s is one of the supported shapes.
func (s Shape) Valid() bool {
	return s >= Line && s <= Star
}

// ParseShape parses a shape name, ignoring case.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "line":
		return Line, nil
	case "circle":
		return Circle, nil
	case "square":
		return Square, nil
	case "star":
		return Star, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedShape, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedShape, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
