package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"github.com/ayusman/airpaint/internal/store"
)

// ThumbnailSize is the edge length of snapshot previews.
const ThumbnailSize = 300

// SnapshotInfo describes a stored snapshot without its pixels.
type SnapshotInfo struct {
	Index     int       `json:"index"`
	ID        string    `json:"id"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

// CaptureSnapshot appends a lossless copy of the current buffer and returns its index.
func (c *Canvas) CaptureSnapshot() (int, error) {
	data, err := encodePNG(c.buf)
	if err != nil {
		return 0, fmt.Errorf("capture snapshot: %w", err)
	}

	index, err := c.snapshots.Append(&store.Snapshot{
		Width:  c.width,
		Height: c.height,
		Format: "png",
		Data:   data,
	})
	if err != nil {
		return 0, fmt.Errorf("capture snapshot: %w", err)
	}
	return index, nil
}

// RestoreSnapshot overwrites the buffer with snapshot index. The snapshot stays in the
// store and later strokes cannot reach it.
func (c *Canvas) RestoreSnapshot(index int) error {
	decoded, err := c.decodeSnapshot(index)
	if err != nil {
		return err
	}
	defer decoded.Close()

	decoded.CopyTo(&c.buf)
	return nil
}

// Snapshots lists stored snapshots in capture order.
func (c *Canvas) Snapshots() ([]SnapshotInfo, error) {
	snaps, err := c.snapshots.List()
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	infos := make([]SnapshotInfo, 0, len(snaps))
	for _, s := range snaps {
		infos = append(infos, SnapshotInfo{
			Index:     s.Index,
			ID:        s.ID,
			Width:     s.Width,
			Height:    s.Height,
			CreatedAt: s.CreatedAt,
		})
	}
	return infos, nil
}

// Thumbnail returns snapshot index scaled to size x size.
func (c *Canvas) Thumbnail(index, size int) (image.Image, error) {
	snap, err := c.lookup(index)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(snap.Data))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %d: %w", index, err)
	}
	return imaging.Resize(img, size, size, imaging.Lanczos), nil
}

func (c *Canvas) lookup(index int) (*store.Snapshot, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	snap, err := c.snapshots.Get(index)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %d: %w", index, err)
	}
	return snap, nil
}

func (c *Canvas) decodeSnapshot(index int) (gocv.Mat, error) {
	snap, err := c.lookup(index)
	if err != nil {
		return gocv.NewMat(), err
	}

	decoded, err := gocv.IMDecode(snap.Data, gocv.IMReadColor)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("decode snapshot %d: %w", index, err)
	}
	if decoded.Cols() != c.width || decoded.Rows() != c.height {
		decoded.Close()
		return gocv.NewMat(), fmt.Errorf("%w: snapshot %d is %dx%d", ErrSizeMismatch, index, snap.Width, snap.Height)
	}
	return decoded, nil
}

func encodePNG(m gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.PNGFileExt, m)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	// GetBytes aliases native memory released by Close.
	return append([]byte(nil), buf.GetBytes()...), nil
}
