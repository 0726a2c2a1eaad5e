package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"
)

// Default retry policy for Grab.
const (
	DefaultAttempts = 3
	DefaultBackoff  = 5 * time.Millisecond
)

// Grabber reads frames with a bounded retry so a flaky device costs a tick, not the loop.
type Grabber struct {
	camera   Camera
	attempts int
	backoff  time.Duration
}

// NewGrabber wraps camera. attempts below 1 mean a single try; backoff grows linearly
// with each retry.
func NewGrabber(camera Camera, attempts int, backoff time.Duration) *Grabber {
	if attempts < 1 {
		attempts = 1
	}
	return &Grabber{
		camera:   camera,
		attempts: attempts,
		backoff:  backoff,
	}
}

// Grab returns the next frame. After the last failed attempt it returns an error wrapping
// ErrNoFrame. A closed camera fails immediately with ErrCameraNotOpen.
// The caller is responsible for closing the returned Mat.
func (g *Grabber) Grab(ctx context.Context) (*gocv.Mat, error) {
	var lastErr error

	for attempt := 1; attempt <= g.attempts; attempt++ {
		frame, err := g.camera.ReadFrame()
		if err == nil {
			return frame, nil
		}
		if errors.Is(err, ErrCameraNotOpen) {
			return nil, err
		}
		lastErr = err

		if attempt == g.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.backoff * time.Duration(attempt)):
		}
	}

	if errors.Is(lastErr, ErrNoFrame) {
		return nil, fmt.Errorf("after %d attempts: %w", g.attempts, lastErr)
	}
	return nil, fmt.Errorf("after %d attempts: %w: %v", g.attempts, ErrNoFrame, lastErr)
}
