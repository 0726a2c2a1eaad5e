package capture

import (
	"errors"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera_Playback(t *testing.T) {
	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame1, &frame2}, false)

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d error = %v", i, err)
		}
		f.Close()
	}

	// Third read should fail (no loop)
	if _, err := cam.ReadFrame(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("expected ErrNoFrame after all frames consumed, got %v", err)
	}
}

func TestMockCamera_Loop(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame}, true)
	cam.Open()
	defer cam.Close()

	for i := 0; i < 5; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() iteration %d error = %v", i, err)
		}
		f.Close()
	}
}

func TestMockCamera_NotOpen(t *testing.T) {
	cam := NewMockCamera(nil, true)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}
}

func TestMockCamera_FailNext(t *testing.T) {
	frame := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame}, true)
	cam.Open()
	cam.FailNext(2)

	for i := 0; i < 2; i++ {
		if _, err := cam.ReadFrame(); !errors.Is(err, ErrNoFrame) {
			t.Errorf("read %d error = %v, want ErrNoFrame", i, err)
		}
	}

	f, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("read after failures error = %v", err)
	}
	f.Close()

	if cam.Reads() != 3 {
		t.Errorf("Reads() = %d, want 3", cam.Reads())
	}
}

func TestSolidFrames(t *testing.T) {
	frames := SolidFrames(2, 64, 48, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	defer CloseFrames(frames)

	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2", len(frames))
	}
	f := frames[1]
	if f.Cols() != 64 || f.Rows() != 48 || f.Channels() != 3 {
		t.Errorf("frame = %dx%d with %d channels", f.Cols(), f.Rows(), f.Channels())
	}
	if v := f.GetVecbAt(10, 10); v[0] != 30 || v[1] != 20 || v[2] != 10 {
		t.Errorf("pixel = %v, want BGR 30,20,10", v)
	}
}
