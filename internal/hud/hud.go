// Package hud draws the on-screen controls over the composited display frame.
package hud

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/ayusman/airpaint/internal/brush"
	"github.com/ayusman/airpaint/internal/gesture"
	"github.com/ayusman/airpaint/internal/palette"
)

var (
	outline = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	shadow  = color.RGBA{A: 160}
)

// State is everything the overlay shows for one tick.
type State struct {
	Palette   []palette.Entry
	Layout    palette.Layout
	Brush     brush.Config
	Mode      gesture.Mode
	Cursor    image.Point
	HasCursor bool
	Enabled   bool

	// EraseRadius sizes the eraser ring; zero means gesture.EraseRadius.
	EraseRadius int
}

// Render returns a copy of display with the overlay drawn on top.
func Render(display image.Image, s State) *image.RGBA {
	dc := gg.NewContextForImage(display)

	drawPalette(dc, s)
	drawCursor(dc, s)
	drawLabel(dc, s)

	return dc.Image().(*image.RGBA)
}

func drawPalette(dc *gg.Context, s State) {
	for i, e := range s.Palette {
		z := s.Layout.Zone(i)
		dc.DrawRectangle(float64(z.Min.X), float64(z.Min.Y), float64(z.Dx()), float64(z.Dy()))
		dc.SetColor(e.Color)
		dc.Fill()

		if e.Color == s.Brush.Color {
			dc.DrawRectangle(float64(z.Min.X)+1.5, float64(z.Min.Y)+1.5, float64(z.Dx())-3, float64(z.Dy())-3)
			dc.SetColor(outline)
			dc.SetLineWidth(3)
			dc.Stroke()
		}
	}
}

func drawCursor(dc *gg.Context, s State) {
	if !s.HasCursor || s.Mode == gesture.Idle {
		return
	}

	x, y := float64(s.Cursor.X), float64(s.Cursor.Y)

	switch s.Mode {
	case gesture.Erase:
		r := s.EraseRadius
		if r <= 0 {
			r = gesture.EraseRadius
		}
		dc.DrawCircle(x, y, float64(r))
		dc.SetColor(outline)
		dc.SetLineWidth(2)
		dc.Stroke()
	default:
		r := float64(s.Brush.Size)
		if r < 4 {
			r = 4
		}
		dc.DrawCircle(x, y, r)
		dc.SetColor(s.Brush.Color)
		dc.SetLineWidth(2)
		dc.Stroke()
		if s.Mode == gesture.Draw {
			dc.DrawCircle(x, y, 2)
			dc.Fill()
		}
	}
}

func drawLabel(dc *gg.Context, s State) {
	label := fmt.Sprintf("%s  %s %dpx", s.Mode, s.Brush.Shape, s.Brush.Size)
	if !s.Enabled {
		label = "paused"
	}

	h := float64(dc.Height())
	w, th := dc.MeasureString(label)
	dc.DrawRectangle(4, h-th-12, w+12, th+8)
	dc.SetColor(shadow)
	dc.Fill()

	dc.SetColor(outline)
	dc.DrawString(label, 10, h-10)
}
