package app

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/ayusman/airpaint/internal/brush"
	"github.com/ayusman/airpaint/internal/canvas"
	"github.com/ayusman/airpaint/internal/palette"
)

// Brush returns the active brush.
func (a *App) Brush() brush.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.brush
}

// SetBrush replaces the whole brush. Nothing changes if cfg is invalid.
func (a *App) SetBrush(cfg brush.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.brush = cfg
	return nil
}

// SetColor sets the brush color.
func (a *App) SetColor(c color.RGBA) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.brush.Color = c
}

// SetBrushSize sets the brush size, rejecting values outside [brush.MinSize, brush.MaxSize].
func (a *App) SetBrushSize(size int) error {
	if err := brush.ValidateSize(size); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.brush.Size = size
	return nil
}

// SetBrushShape sets the brush shape.
func (a *App) SetBrushShape(shape brush.Shape) error {
	if !shape.Valid() {
		return fmt.Errorf("%w: %d", brush.ErrUnsupportedShape, int(shape))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.brush.Shape = shape
	return nil
}

// Palette returns a copy of the palette entries.
func (a *App) Palette() []palette.Entry {
	out := make([]palette.Entry, len(a.config.Palette))
	copy(out, a.config.Palette)
	return out
}

// SelectPalette makes entry i the brush color.
func (a *App) SelectPalette(i int) (palette.Entry, error) {
	if i < 0 || i >= len(a.config.Palette) {
		return palette.Entry{}, fmt.Errorf("palette entry %d: %w", i, canvas.ErrOutOfRange)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	e := a.config.Palette[i]
	a.brush.Color = e.Color
	return e, nil
}

// Clear wipes the canvas to the background color.
func (a *App) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.canvas.Clear()
	log.Println("Canvas cleared")
}

// Save exports the canvas and returns the path written.
func (a *App) Save(path string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	written, err := a.canvas.Export(path)
	if err != nil {
		return "", err
	}
	log.Printf("Canvas saved to %s", written)
	return written, nil
}

// CanvasImage returns the canvas as an image.
func (a *App) CanvasImage() (image.Image, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canvas.Image()
}

// CaptureSnapshot appends the current canvas to the snapshot history and returns its index.
func (a *App) CaptureSnapshot() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	index, err := a.canvas.CaptureSnapshot()
	if err != nil {
		return 0, err
	}
	log.Printf("Captured snapshot %d", index)
	return index, nil
}

// Snapshots lists the snapshot history in capture order.
func (a *App) Snapshots() ([]canvas.SnapshotInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canvas.Snapshots()
}

// RestoreSnapshot replaces the canvas with snapshot i.
func (a *App) RestoreSnapshot(i int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.canvas.RestoreSnapshot(i); err != nil {
		return err
	}
	log.Printf("Restored snapshot %d", i)
	return nil
}

// SnapshotThumbnail returns snapshot i scaled to fit canvas.ThumbnailSize.
func (a *App) SnapshotThumbnail(i int) (image.Image, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canvas.Thumbnail(i, canvas.ThumbnailSize)
}

// SetGestureEnabled pauses or resumes gesture drawing. While paused the camera keeps
// running but no hands are detected.
func (a *App) SetGestureEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.enabled == enabled {
		return
	}
	a.enabled = enabled
	a.machine.Reset()
	log.Printf("Gesture drawing enabled: %v", enabled)
}

// GestureEnabled reports whether gesture drawing is active.
func (a *App) GestureEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// Status returns the status of the most recent tick.
func (a *App) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}
