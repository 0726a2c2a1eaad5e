package gesture

import (
	"image"
	"testing"

	"github.com/ayusman/airpaint/internal/detector"
)

func TestClassify(t *testing.T) {
	x, y := detector.Normalized(320, 240, 640, 480)

	tests := []struct {
		name string
		hand detector.HandLandmarks
		want FingerState
	}{
		{name: "index only", hand: detector.PointingLandmarks(x, y), want: FingerState{Index: true}},
		{name: "index and middle", hand: detector.DrawingLandmarks(x, y), want: FingerState{Index: true, Middle: true}},
		{name: "fist", hand: detector.FistLandmarks(x, y), want: FingerState{}},
		{name: "middle only", hand: detector.MiddleOnlyLandmarks(x, y), want: FingerState{Middle: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, cursor := Classify(&tt.hand, 640, 480)

			if state != tt.want {
				t.Errorf("Classify() state = %+v, want %+v", state, tt.want)
			}
			if cursor != (image.Point{X: 320, Y: 240}) {
				t.Errorf("Classify() cursor = %v, want (320,240)", cursor)
			}
		})
	}
}

func TestClassify_EqualHeightIsNotExtended(t *testing.T) {
	var hand detector.HandLandmarks
	hand.Points[detector.IndexTip] = detector.Point3D{X: 0.5, Y: 0.4}
	hand.Points[detector.IndexPIP] = detector.Point3D{X: 0.5, Y: 0.4}
	hand.Points[detector.MiddleTip] = detector.Point3D{X: 0.5, Y: 0.39}
	hand.Points[detector.MiddlePIP] = detector.Point3D{X: 0.5, Y: 0.4}

	state, _ := Classify(&hand, 640, 480)

	if state.Index {
		t.Error("tip level with its PIP joint should not count as extended")
	}
	if !state.Middle {
		t.Error("tip above its PIP joint should count as extended")
	}
}

func TestClassify_UpsideDownHand(t *testing.T) {
	// Rotating the hand 180 degrees inverts the heuristic; that is the documented behavior.
	hand := detector.PointingLandmarks(0.5, 0.5)
	for i := range hand.Points {
		hand.Points[i].Y = 1 - hand.Points[i].Y
	}

	state, _ := Classify(&hand, 640, 480)

	if state.Index || !state.Middle {
		t.Errorf("upside-down pointing hand classified as %+v", state)
	}
}
