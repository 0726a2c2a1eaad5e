package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns either a fixed result or, when a sequence is set, one entry per call.
type MockDetector struct {
	mu       sync.Mutex
	hands    []HandLandmarks
	sequence [][]HandLandmarks
	err      error
	calls    int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
	m.sequence = nil
}

// SetSequence scripts successive Detect results. Once exhausted, Detect reports no hands.
// A nil entry means no hand for that call.
func (m *MockDetector) SetSequence(seq ...[]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence = seq
	m.hands = nil
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls reports how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.sequence != nil {
		if len(m.sequence) == 0 {
			return nil, nil
		}
		next := m.sequence[0]
		m.sequence = m.sequence[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Pose builds an upright right hand whose index fingertip sits at normalized (x, y).
// indexUp and middleUp choose whether each fingertip is above its PIP joint.
func Pose(x, y float64, indexUp, middleUp bool) HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: x, Y: y + 0.30}
	h.Points[ThumbCMC] = Point3D{X: x + 0.05, Y: y + 0.26}
	h.Points[ThumbMCP] = Point3D{X: x + 0.08, Y: y + 0.22}
	h.Points[ThumbIP] = Point3D{X: x + 0.10, Y: y + 0.19}
	h.Points[ThumbTip] = Point3D{X: x + 0.11, Y: y + 0.16}

	h.Points[IndexMCP] = Point3D{X: x, Y: y + 0.18}
	h.Points[IndexPIP] = Point3D{X: x, Y: y + 0.10}
	h.Points[IndexDIP] = Point3D{X: x, Y: y + 0.05}
	h.Points[IndexTip] = Point3D{X: x, Y: y}
	if !indexUp {
		// Curled: the tip folds back below the PIP joint.
		h.Points[IndexPIP] = Point3D{X: x, Y: y - 0.04, Z: -0.03}
		h.Points[IndexDIP] = Point3D{X: x, Y: y - 0.02, Z: -0.04}
	}

	mx := x - 0.04
	h.Points[MiddleMCP] = Point3D{X: mx, Y: y + 0.17}
	h.Points[MiddlePIP] = Point3D{X: mx, Y: y + 0.09}
	h.Points[MiddleDIP] = Point3D{X: mx, Y: y + 0.04}
	h.Points[MiddleTip] = Point3D{X: mx, Y: y - 0.01}
	if !middleUp {
		h.Points[MiddlePIP] = Point3D{X: mx, Y: y + 0.05, Z: -0.03}
		h.Points[MiddleDIP] = Point3D{X: mx, Y: y + 0.08, Z: -0.04}
		h.Points[MiddleTip] = Point3D{X: mx, Y: y + 0.11, Z: -0.02}
	}

	// Ring and pinky stay curled in every preset.
	for i, base := range []int{RingMCP, PinkyMCP} {
		fx := x - 0.08 - 0.04*float64(i)
		h.Points[base] = Point3D{X: fx, Y: y + 0.18}
		h.Points[base+1] = Point3D{X: fx, Y: y + 0.15, Z: -0.03}
		h.Points[base+2] = Point3D{X: fx, Y: y + 0.17, Z: -0.04}
		h.Points[base+3] = Point3D{X: fx, Y: y + 0.20, Z: -0.02}
	}

	return h
}

// PointingLandmarks returns a hand with only the index finger extended.
func PointingLandmarks(x, y float64) HandLandmarks { return Pose(x, y, true, false) }

// DrawingLandmarks returns a hand with index and middle fingers extended.
func DrawingLandmarks(x, y float64) HandLandmarks { return Pose(x, y, true, true) }

// FistLandmarks returns a hand with index and middle fingers curled.
func FistLandmarks(x, y float64) HandLandmarks { return Pose(x, y, false, false) }

// MiddleOnlyLandmarks returns a hand with only the middle finger extended.
func MiddleOnlyLandmarks(x, y float64) HandLandmarks { return Pose(x, y, false, true) }

// Normalized converts pixel (px, py) of a width x height frame into normalized coordinates
// at the pixel center, so that Pixel maps it back to exactly (px, py).
func Normalized(px, py, width, height int) (float64, float64) {
	return (float64(px) + 0.5) / float64(width), (float64(py) + 0.5) / float64(height)
}
