package brush

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// Star geometry.
const (
	StarPoints    = 6
	StarThickness = 2
)

// Render draws one stroke onto dst. Pixels outside dst are clipped by OpenCV; existing
// pixels are only ever painted over, never cleared.
//
// Circle, Square and Star are dabs centered at to and ignore from.
func Render(dst *gocv.Mat, from, to image.Point, cfg Config) error {
	switch cfg.Shape {
	case Line:
		gocv.Line(dst, from, to, cfg.Color, cfg.Size)
	case Circle:
		gocv.Circle(dst, to, cfg.Size, cfg.Color, -1)
	case Square:
		gocv.Rectangle(dst, SquareBounds(to, cfg.Size), cfg.Color, -1)
	case Star:
		vertices := StarVertices(to, cfg.Size)
		for i := range vertices {
			gocv.Line(dst, vertices[i], vertices[(i+1)%len(vertices)], cfg.Color, StarThickness)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedShape, int(cfg.Shape))
	}
	return nil
}

// Erase paints a filled disk of background color at center.
func Erase(dst *gocv.Mat, center image.Point, radius int, background color.RGBA) {
	gocv.Circle(dst, center, radius, background, -1)
}

// SquareBounds returns the square of half-width half centered at c. OpenCV treats both
// corners as inclusive.
func SquareBounds(c image.Point, half int) image.Rectangle {
	return image.Rect(c.X-half, c.Y-half, c.X+half, c.Y+half)
}

// StarVertices returns StarPoints vertices evenly spaced by angle around c at the given
// radius, starting at angle 0 and rounded to the nearest pixel. Angles grow clockwise on
// screen because image y points down.
func StarVertices(c image.Point, radius int) []image.Point {
	vertices := make([]image.Point, StarPoints)
	step := 2 * math.Pi / StarPoints
	for i := range vertices {
		a := float64(i) * step
		vertices[i] = image.Point{
			X: c.X + int(math.Round(float64(radius)*math.Cos(a))),
			Y: c.Y + int(math.Round(float64(radius)*math.Sin(a))),
		}
	}
	return vertices
}
