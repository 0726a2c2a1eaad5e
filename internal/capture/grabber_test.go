package capture

import (
	"context"
	"errors"
	"testing"
	"time"

	"gocv.io/x/gocv"
)

func newOpenMock(t *testing.T) *MockCamera {
	t.Helper()
	frame := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { frame.Close() })

	cam := NewMockCamera([]*gocv.Mat{&frame}, true)
	cam.Open()
	return cam
}

func TestGrabber_RetriesThenSucceeds(t *testing.T) {
	cam := newOpenMock(t)
	cam.FailNext(2)

	g := NewGrabber(cam, 3, time.Millisecond)

	frame, err := g.Grab(context.Background())
	if err != nil {
		t.Fatalf("Grab() error = %v", err)
	}
	frame.Close()

	if cam.Reads() != 3 {
		t.Errorf("Reads() = %d, want 3", cam.Reads())
	}
}

func TestGrabber_GivesUpAfterAttempts(t *testing.T) {
	cam := newOpenMock(t)
	cam.FailNext(10)

	g := NewGrabber(cam, 3, time.Millisecond)

	_, err := g.Grab(context.Background())
	if !errors.Is(err, ErrNoFrame) {
		t.Fatalf("Grab() error = %v, want ErrNoFrame", err)
	}
	if cam.Reads() != 3 {
		t.Errorf("Reads() = %d, want exactly 3 attempts", cam.Reads())
	}
}

func TestGrabber_ClosedCameraFailsFast(t *testing.T) {
	cam := newOpenMock(t)
	cam.Close()

	g := NewGrabber(cam, 5, time.Second)

	start := time.Now()
	_, err := g.Grab(context.Background())
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Fatalf("Grab() error = %v, want ErrCameraNotOpen", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("closed camera should not be retried")
	}
}

func TestGrabber_HonorsContext(t *testing.T) {
	cam := newOpenMock(t)
	cam.FailNext(10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGrabber(cam, 5, time.Second)

	if _, err := g.Grab(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Grab() error = %v, want context.Canceled", err)
	}
}

func TestNewGrabber_MinimumOneAttempt(t *testing.T) {
	cam := newOpenMock(t)
	cam.FailNext(1)

	g := NewGrabber(cam, 0, 0)

	if _, err := g.Grab(context.Background()); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Grab() error = %v, want ErrNoFrame", err)
	}
	if cam.Reads() != 1 {
		t.Errorf("Reads() = %d, want 1", cam.Reads())
	}
}
