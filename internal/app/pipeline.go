package app

import (
	"context"
	"errors"
	"log"

	"gocv.io/x/gocv"

	"github.com/ayusman/airpaint/internal/brush"
	"github.com/ayusman/airpaint/internal/canvas"
	"github.com/ayusman/airpaint/internal/detector"
	"github.com/ayusman/airpaint/internal/gesture"
	"github.com/ayusman/airpaint/internal/hud"
	"github.com/ayusman/airpaint/internal/palette"
)

// Tick runs one iteration of the frame loop:
//
//  1. grab a frame, retrying a flaky camera a bounded number of times
//  2. mirror it horizontally
//  3. detect hands and keep the first one
//  4. classify the fingers and advance the gesture machine
//  5. paint the stroke or erase around the cursor
//  6. switch the brush color if the cursor sits on a palette swatch
//  7. blend canvas and frame, draw the HUD, publish the display
//
// A missing frame or an absent hand never fails the tick; it just paints nothing.
func (a *App) Tick(ctx context.Context) Status {
	frame, err := a.grabber.Grab(ctx)
	if err != nil {
		frame = nil
	}
	a.noteGrab(err)

	var mirrored *gocv.Mat
	if frame != nil {
		m := gocv.NewMat()
		gocv.Flip(*frame, &m, 1)
		frame.Close()
		mirrored = &m
		defer mirrored.Close()
	}

	status := a.advance(mirrored)
	a.publish(status)
	return status
}

func (a *App) advance(frame *gocv.Mat) Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ticks++
	status := Status{
		Tick:           a.ticks,
		Mode:           gesture.Idle,
		PaletteIndex:   -1,
		GestureEnabled: a.enabled,
	}

	if frame == nil {
		status.Skipped = true
		status.Mode = a.status.Mode
		status.Cursor = a.status.Cursor
	} else if hand := a.detect(frame); hand == nil {
		a.machine.Lost()
	} else {
		size := a.canvas.Size()
		state, cursor := gesture.Classify(hand, size.X, size.Y)
		action := a.machine.Step(state, cursor)
		a.apply(action)

		status.Hand = true
		status.Mode = action.Mode
		status.Cursor = action.Cursor
		status.Stroke = action.Stroke

		if e, i, ok := palette.Select(cursor, a.config.Palette, a.config.Layout); ok {
			a.brush.Color = e.Color
			status.PaletteIndex = i
		}
	}

	status.Brush = a.brush
	a.present(frame, status)
	a.status = status
	return status
}

// noteGrab logs when the camera starts failing and when it recovers, not on every
// skipped tick.
func (a *App) noteGrab(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case err != nil && !a.grabFailing:
		log.Printf("Skipping frames: %v", err)
	case err == nil && a.grabFailing:
		log.Printf("Camera frames resumed after %d skipped ticks", a.skipped)
	}
	if err != nil {
		a.grabFailing = true
		a.skipped++
	} else {
		a.grabFailing = false
		a.skipped = 0
	}
}

// detect returns the first hand in frame, or nil when gesture drawing is paused or no
// hand was found.
func (a *App) detect(frame *gocv.Mat) *detector.HandLandmarks {
	if !a.enabled || a.detector == nil {
		return nil
	}

	hands, err := a.detector.Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		return nil
	}
	if len(hands) == 0 {
		return nil
	}
	return &hands[0]
}

func (a *App) apply(action gesture.Action) {
	switch action.Mode {
	case gesture.Draw:
		if !action.Stroke {
			return
		}
		cfg := a.brush
		err := a.canvas.Draw(func(buf *gocv.Mat) error {
			return brush.Render(buf, action.From, action.Cursor, cfg)
		})
		if err != nil {
			a.strokeFailed(err)
		}
	case gesture.Erase:
		a.canvas.Draw(func(buf *gocv.Mat) error {
			brush.Erase(buf, action.Cursor, a.config.EraseRadius, canvas.Background)
			return nil
		})
	}
}

func (a *App) strokeFailed(err error) {
	if a.config.Debug && errors.Is(err, brush.ErrUnsupportedShape) {
		panic(err)
	}
	log.Printf("Skipping stroke: %v", err)
}

// present rebuilds the display frame. Without a camera frame the previous display is
// kept; before the first one the canvas is shown over a black video layer.
func (a *App) present(frame *gocv.Mat, status Status) {
	if frame == nil && a.displayReady() {
		return
	}

	out, err := a.canvas.Composite(frame)
	if err != nil {
		log.Printf("Error compositing frame: %v", err)
		out.Close()
		return
	}

	if a.config.HUD {
		out = a.overlay(out, status)
	}
	a.setDisplay(out)
}

// overlay draws the HUD over m. m is consumed; on failure it is returned unchanged.
func (a *App) overlay(m gocv.Mat, status Status) gocv.Mat {
	img, err := m.ToImage()
	if err != nil {
		log.Printf("Error drawing HUD: %v", err)
		return m
	}

	drawn := hud.Render(img, hud.State{
		Palette:   a.config.Palette,
		Layout:    a.config.Layout,
		Brush:     a.brush,
		Mode:      status.Mode,
		Cursor:    status.Cursor,
		HasCursor: status.Hand,
		Enabled:   a.enabled,

		EraseRadius: a.config.EraseRadius,
	})

	out, err := gocv.ImageToMatRGB(drawn)
	if err != nil {
		log.Printf("Error drawing HUD: %v", err)
		return m
	}
	m.Close()
	return out
}
