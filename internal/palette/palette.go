// Package palette maps cursor positions onto on-screen color swatches.
package palette

import (
	"image"
	"image/color"
)

// Entry is one selectable palette color.
type Entry struct {
	Name  string
	Color color.RGBA
}

// Default returns the built-in palette.
func Default() []Entry {
	return []Entry{
		{Name: "red", Color: color.RGBA{R: 255, A: 255}},
		{Name: "green", Color: color.RGBA{G: 255, A: 255}},
		{Name: "blue", Color: color.RGBA{B: 255, A: 255}},
		{Name: "yellow", Color: color.RGBA{R: 255, G: 255, A: 255}},
		{Name: "orange", Color: color.RGBA{R: 255, G: 165, A: 255}},
	}
}

// Layout places hot-zones left to right starting at Origin.
type Layout struct {
	Origin image.Point
	Width  int
	Height int
	Gap    int
}

// DefaultLayout returns swatches along the top edge of a 640x480 frame.
func DefaultLayout() Layout {
	return Layout{
		Origin: image.Point{X: 5, Y: 5},
		Width:  60,
		Height: 40,
		Gap:    0,
	}
}

// Zone returns the hot-zone rectangle for entry i. The rectangle's edges are boundary
// pixels that Select treats as outside.
func (l Layout) Zone(i int) image.Rectangle {
	x1 := l.Origin.X + i*(l.Width+l.Gap)
	y1 := l.Origin.Y
	return image.Rect(x1, y1, x1+l.Width, y1+l.Height)
}

// Contains reports whether p lies strictly inside r: x1 < x < x2 and y1 < y < y2.
func Contains(r image.Rectangle, p image.Point) bool {
	return r.Min.X < p.X && p.X < r.Max.X && r.Min.Y < p.Y && p.Y < r.Max.Y
}

// Select returns the first entry whose hot-zone strictly contains cursor.
func Select(cursor image.Point, entries []Entry, layout Layout) (Entry, int, bool) {
	for i, e := range entries {
		if Contains(layout.Zone(i), cursor) {
			return e, i, true
		}
	}
	return Entry{}, -1, false
}
