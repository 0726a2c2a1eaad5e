// Package gesture turns hand landmarks into drawing intents.
package gesture

import (
	"image"

	"github.com/ayusman/airpaint/internal/detector"
)

// FingerState records which tracked fingers are extended.
type FingerState struct {
	Index  bool
	Middle bool
}

// Classify derives the finger state and the cursor for one hand in a width x height frame.
//
// A finger counts as extended when its tip is above (smaller y than) its PIP joint. The
// test assumes an upright hand facing the camera and is not rotation invariant.
func Classify(hand *detector.HandLandmarks, width, height int) (FingerState, image.Point) {
	state := FingerState{
		Index:  hand.Points[detector.IndexTip].Y < hand.Points[detector.IndexPIP].Y,
		Middle: hand.Points[detector.MiddleTip].Y < hand.Points[detector.MiddlePIP].Y,
	}
	return state, hand.Pixel(detector.IndexTip, width, height)
}
