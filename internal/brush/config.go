package brush

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Brush size bounds, inclusive.
const (
	MinSize = 1
	MaxSize = 30
)

// ErrInvalidSize is returned for a size outside [MinSize, MaxSize].
var ErrInvalidSize = errors.New("brush size out of range")

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Config is the active brush. It only changes between ticks.
type Config struct {
	Color color.RGBA
	Size  int
	Shape Shape
}

// DefaultConfig returns a 5px red line brush.
func DefaultConfig() Config {
	return Config{
		Color: color.RGBA{R: 255, A: 255},
		Size:  5,
		Shape: Line,
	}
}

// Validate checks size and shape.
func (c Config) Validate() error {
	if err := ValidateSize(c.Size); err != nil {
		return err
	}
	if !c.Shape.Valid() {
		return fmt.Errorf("%w: %d", ErrUnsupportedShape, int(c.Shape))
	}
	return nil
}

// ValidateSize reports ErrInvalidSize when size is outside the slider range.
func ValidateSize(size int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSize, size, MinSize, MaxSize)
	}
	return nil
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses #rrggbb (the leading # is optional) into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

type configJSON struct {
	Color string `json:"color"`
	Size  int    `json:"size"`
	Shape Shape  `json:"shape"`
}

// MarshalJSON encodes the color as #rrggbb and the shape by name.
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(configJSON{Color: Hex(c.Color), Size: c.Size, Shape: c.Shape})
}

// UnmarshalJSON decodes the form written by MarshalJSON. It does not validate the size.
func (c *Config) UnmarshalJSON(data []byte) error {
	var v configJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	col, err := ParseHex(v.Color)
	if err != nil {
		return err
	}
	*c = Config{Color: col, Size: v.Size, Shape: v.Shape}
	return nil
}
