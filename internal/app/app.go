// Package app drives the capture, gesture and paint loop and exposes the commands the
// HTTP server and tray menu call into.
package app

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/airpaint/internal/brush"
	"github.com/ayusman/airpaint/internal/canvas"
	"github.com/ayusman/airpaint/internal/capture"
	"github.com/ayusman/airpaint/internal/detector"
	"github.com/ayusman/airpaint/internal/gesture"
	"github.com/ayusman/airpaint/internal/palette"
)

// Config holds configuration options for the application.
type Config struct {
	FPS         int
	Brush       brush.Config
	Palette     []palette.Entry
	Layout      palette.Layout
	EraseRadius int

	// GrabAttempts and GrabBackoff bound how long a tick waits on a flaky camera.
	GrabAttempts int
	GrabBackoff  time.Duration

	// HUD draws the palette, cursor and mode label on the display frame.
	HUD bool

	// Debug turns brush failures into panics instead of skipped strokes.
	Debug bool
}

// DefaultConfig returns the settings used by the desktop binary.
func DefaultConfig() Config {
	return Config{
		FPS:          capture.DefaultFPS,
		Brush:        brush.DefaultConfig(),
		Palette:      palette.Default(),
		Layout:       palette.DefaultLayout(),
		EraseRadius:  gesture.EraseRadius,
		GrabAttempts: capture.DefaultAttempts,
		GrabBackoff:  capture.DefaultBackoff,
		HUD:          true,
	}
}

// Status summarizes one tick.
type Status struct {
	Tick           uint64       `json:"tick"`
	Mode           gesture.Mode `json:"mode"`
	Hand           bool         `json:"hand"`
	Cursor         image.Point  `json:"cursor"`
	Stroke         bool         `json:"stroke"`
	// Skipped marks a tick without a camera frame. Mode and Cursor then repeat the
	// previous tick, matching the machine, which is left untouched.
	Skipped        bool         `json:"skipped"`
	PaletteIndex   int          `json:"palette_index"`
	Brush          brush.Config `json:"brush"`
	GestureEnabled bool         `json:"gesture_enabled"`
}

// App owns the per-tick state. The tick and every command take mu, so a command is
// applied either wholly before or wholly after a tick.
type App struct {
	config   Config
	camera   capture.Camera
	grabber  *capture.Grabber
	detector detector.Detector
	canvas   *canvas.Canvas
	machine  *gesture.Machine

	mu      sync.Mutex
	brush   brush.Config
	enabled bool
	ticks   uint64
	status  Status

	grabFailing bool
	skipped     int

	displayMu  sync.RWMutex
	display    gocv.Mat
	hasDisplay bool

	subMu       sync.Mutex
	subscribers map[int]func(Status)
	nextSub     int

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an App. The camera must be opened by Start or by the caller before ticking.
func New(config Config, camera capture.Camera, det detector.Detector, c *canvas.Canvas) *App {
	if config.FPS <= 0 {
		config.FPS = capture.DefaultFPS
	}
	if config.EraseRadius <= 0 {
		config.EraseRadius = gesture.EraseRadius
	}

	return &App{
		config:      config,
		camera:      camera,
		grabber:     capture.NewGrabber(camera, config.GrabAttempts, config.GrabBackoff),
		detector:    det,
		canvas:      c,
		machine:     gesture.NewMachine(),
		brush:       config.Brush,
		enabled:     true,
		status:      Status{Mode: gesture.Idle, PaletteIndex: -1, Brush: config.Brush, GestureEnabled: true},
		subscribers: make(map[int]func(Status)),
	}
}

// Start opens the camera and runs the frame loop in the background.
func (a *App) Start() error {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	if a.cancel != nil {
		return nil
	}

	if !a.camera.IsOpen() {
		if err := a.camera.Open(); err != nil {
			return err
		}
	}
	a.camera.SetFPS(a.config.FPS)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		a.Run(ctx)
	}(a.done)

	log.Printf("Frame loop started at %d fps", a.config.FPS)
	return nil
}

// Stop ends the frame loop after the current tick and closes the camera.
func (a *App) Stop() {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	if a.cancel != nil {
		a.cancel()
		<-a.done
		a.cancel = nil
		a.done = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	log.Println("Frame loop stopped")
}

// Close stops the loop and releases the detector and the display frame.
func (a *App) Close() error {
	a.Stop()

	var err error
	if a.detector != nil {
		err = a.detector.Close()
	}

	a.displayMu.Lock()
	if a.hasDisplay {
		a.display.Close()
		a.hasDisplay = false
	}
	a.displayMu.Unlock()

	return err
}

// Run ticks at the configured rate until ctx is done. Cancellation is observed between
// ticks, never in the middle of one.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.config.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			a.Tick(ctx)
		}
	}
}

// Subscribe registers fn to receive the status of every tick. fn runs on the loop
// goroutine outside the App lock, so it may call commands. The returned func removes it.
func (a *App) Subscribe(fn func(Status)) func() {
	a.subMu.Lock()
	defer a.subMu.Unlock()

	id := a.nextSub
	a.nextSub++
	a.subscribers[id] = fn

	return func() {
		a.subMu.Lock()
		defer a.subMu.Unlock()
		delete(a.subscribers, id)
	}
}

func (a *App) publish(s Status) {
	a.subMu.Lock()
	fns := make([]func(Status), 0, len(a.subscribers))
	for _, fn := range a.subscribers {
		fns = append(fns, fn)
	}
	a.subMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Display returns a copy of the latest display frame. ok is false before the first tick.
// The caller must Close the returned Mat.
func (a *App) Display() (frame gocv.Mat, ok bool) {
	a.displayMu.RLock()
	defer a.displayMu.RUnlock()

	if !a.hasDisplay {
		return gocv.NewMat(), false
	}
	return a.display.Clone(), true
}

func (a *App) setDisplay(m gocv.Mat) {
	a.displayMu.Lock()
	defer a.displayMu.Unlock()

	if a.hasDisplay {
		a.display.Close()
	}
	a.display = m
	a.hasDisplay = true
}

func (a *App) displayReady() bool {
	a.displayMu.RLock()
	defer a.displayMu.RUnlock()
	return a.hasDisplay
}
