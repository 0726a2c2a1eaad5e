package capture

import (
	"image/color"

	"gocv.io/x/gocv"
)

// SolidFrame returns a width x height BGR frame filled with c.
func SolidFrame(width, height int, c color.RGBA) *gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0), height, width, gocv.MatTypeCV8UC3)
	return &m
}

// SolidFrames returns n identical solid frames, for feeding a MockCamera.
func SolidFrames(n, width, height int, c color.RGBA) []*gocv.Mat {
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		frames[i] = SolidFrame(width, height, c)
	}
	return frames
}

// CloseFrames releases every frame.
func CloseFrames(frames []*gocv.Mat) {
	for _, f := range frames {
		if f != nil {
			f.Close()
		}
	}
}
