package hud

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/ayusman/airpaint/internal/brush"
	"github.com/ayusman/airpaint/internal/gesture"
	"github.com/ayusman/airpaint/internal/palette"
)

func blackFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
	return img
}

func rgb(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func testState() State {
	return State{
		Palette: palette.Default(),
		Layout:  palette.DefaultLayout(),
		Brush:   brush.Config{Color: color.RGBA{B: 255, A: 255}, Size: 10, Shape: brush.Circle},
		Mode:    gesture.Point,
		Enabled: true,
	}
}

func TestRender_DrawsPaletteSwatches(t *testing.T) {
	s := testState()
	out := Render(blackFrame(), s)

	for i, e := range s.Palette {
		z := s.Layout.Zone(i)
		c := image.Pt((z.Min.X+z.Max.X)/2, (z.Min.Y+z.Max.Y)/2)
		r, g, b := rgb(out, c.X, c.Y)
		if r != e.Color.R || g != e.Color.G || b != e.Color.B {
			t.Errorf("swatch %s center = (%d,%d,%d), want %v", e.Name, r, g, b, e.Color)
		}
	}
}

func TestRender_DoesNotModifyInput(t *testing.T) {
	frame := blackFrame()
	Render(frame, testState())

	if r, g, b := rgb(frame, 30, 20); r != 0 || g != 0 || b != 0 {
		t.Error("Render drew onto its input")
	}
}

func TestRender_CursorRing(t *testing.T) {
	s := testState()
	s.Cursor = image.Pt(320, 240)
	s.HasCursor = true

	out := Render(blackFrame(), s)

	// Ring of radius 10 around the cursor in the brush color.
	if _, _, b := rgb(out, 330, 240); b < 128 {
		t.Errorf("expected brush colored ring at (330,240), blue = %d", b)
	}
	if r, g, b := rgb(out, 320, 240); r != 0 || g != 0 || b != 0 {
		t.Errorf("point mode ring should be hollow, center = (%d,%d,%d)", r, g, b)
	}
}

func TestRender_EraseRing(t *testing.T) {
	s := testState()
	s.Mode = gesture.Erase
	s.Cursor = image.Pt(320, 240)
	s.HasCursor = true

	out := Render(blackFrame(), s)

	if r, g, b := rgb(out, 320+gesture.EraseRadius, 240); r < 128 || g < 128 || b < 128 {
		t.Errorf("expected white eraser ring, got (%d,%d,%d)", r, g, b)
	}
}

func TestRender_IdleHasNoCursor(t *testing.T) {
	s := testState()
	s.Mode = gesture.Idle
	s.Cursor = image.Pt(320, 240)
	s.HasCursor = true

	out := Render(blackFrame(), s)

	if _, _, b := rgb(out, 330, 240); b != 0 {
		t.Error("idle mode should not draw a cursor")
	}
}
