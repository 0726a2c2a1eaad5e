// Package canvas owns the persistent drawing buffer and its snapshots.
//
// The buffer is an 8-bit, 3-channel OpenCV Mat in BGR order, the same layout captured
// frames arrive in. Colors handed to drawing calls are color.RGBA and gocv converts them
// to BGR. Exported files are ordinary RGB images on disk.
//
// A Canvas is not safe for concurrent use; callers serialize access.
package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/airpaint/internal/store"
)

// Default canvas resolution.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

var (
	// ErrOutOfRange is returned for a snapshot index that does not exist.
	ErrOutOfRange = errors.New("snapshot index out of range")
	// ErrSizeMismatch is returned when a snapshot does not match the canvas resolution.
	ErrSizeMismatch = errors.New("snapshot size does not match canvas")
)

// Background is the canvas clear color.
var Background = color.RGBA{A: 255}

// SnapshotStore keeps encoded snapshots in capture order.
type SnapshotStore interface {
	Append(snap *store.Snapshot) (int, error)
	Get(index int) (*store.Snapshot, error)
	List() ([]store.Snapshot, error)
}

// Canvas is the persistent pixel buffer.
type Canvas struct {
	buf       gocv.Mat
	width     int
	height    int
	snapshots SnapshotStore
}

// New creates a black width x height canvas whose snapshots go to snapshots.
func New(width, height int, snapshots SnapshotStore) *Canvas {
	return &Canvas{
		buf:       blankMat(width, height),
		width:     width,
		height:    height,
		snapshots: snapshots,
	}
}

func blankMat(width, height int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC3)
}

// Size returns the canvas resolution.
func (c *Canvas) Size() image.Point {
	return image.Point{X: c.width, Y: c.height}
}

// Draw hands the live buffer to fn. This is the only path through which strokes reach
// the canvas.
func (c *Canvas) Draw(fn func(buf *gocv.Mat) error) error {
	return fn(&c.buf)
}

// Clear resets every pixel to the background. Existing snapshots are unaffected.
func (c *Canvas) Clear() {
	c.buf.SetTo(gocv.NewScalar(0, 0, 0, 0))
}

// Clone returns an independent copy of the buffer. The caller must Close it.
func (c *Canvas) Clone() gocv.Mat {
	return c.buf.Clone()
}

// Bytes returns a copy of the raw BGR pixel data.
func (c *Canvas) Bytes() []byte {
	return c.buf.ToBytes()
}

// Equal reports whether m holds exactly the canvas pixels.
func (c *Canvas) Equal(m gocv.Mat) bool {
	if m.Rows() != c.height || m.Cols() != c.width || m.Type() != c.buf.Type() {
		return false
	}
	return bytes.Equal(m.ToBytes(), c.buf.ToBytes())
}

// Image converts the buffer to an RGBA image.
func (c *Canvas) Image() (image.Image, error) {
	return c.buf.ToImage()
}

// Close releases the buffer.
func (c *Canvas) Close() error {
	return c.buf.Close()
}

// Composite blends frame and canvas with equal weight into a new Mat. Neither input is
// modified. An empty frame is treated as a black video layer; frames of another size or
// channel count are converted first. The caller must Close the result.
func (c *Canvas) Composite(frame *gocv.Mat) (gocv.Mat, error) {
	video, err := c.conform(frame)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer video.Close()

	out := gocv.NewMat()
	gocv.AddWeighted(video, 0.5, c.buf, 0.5, 0, &out)
	return out, nil
}

// conform returns a BGR frame at canvas resolution.
func (c *Canvas) conform(frame *gocv.Mat) (gocv.Mat, error) {
	if frame == nil || frame.Empty() {
		return blankMat(c.width, c.height), nil
	}

	bgr := gocv.NewMat()
	switch frame.Channels() {
	case 3:
		frame.CopyTo(&bgr)
	case 1:
		gocv.CvtColor(*frame, &bgr, gocv.ColorGrayToBGR)
	case 4:
		gocv.CvtColor(*frame, &bgr, gocv.ColorBGRAToBGR)
	default:
		bgr.Close()
		return gocv.NewMat(), fmt.Errorf("composite: unsupported frame with %d channels", frame.Channels())
	}

	if bgr.Cols() != c.width || bgr.Rows() != c.height {
		resized := gocv.NewMat()
		gocv.Resize(bgr, &resized, image.Point{X: c.width, Y: c.height}, 0, 0, gocv.InterpolationLinear)
		bgr.Close()
		return resized, nil
	}
	return bgr, nil
}
