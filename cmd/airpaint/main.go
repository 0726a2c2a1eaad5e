package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/ayusman/airpaint/internal/app"
	"github.com/ayusman/airpaint/internal/brush"
	"github.com/ayusman/airpaint/internal/canvas"
	"github.com/ayusman/airpaint/internal/capture"
	"github.com/ayusman/airpaint/internal/detector"
	"github.com/ayusman/airpaint/internal/server"
	"github.com/ayusman/airpaint/internal/store"
	"github.com/ayusman/airpaint/internal/tray"
)

const banner = `airpaint - draw in the air with your index finger

Point with one finger, draw with two, erase with a fist.

`

func main() {
	var (
		// Flags
		cameraID  = flag.Int("camera", 0, "Camera device index")
		width     = flag.Int("width", canvas.DefaultWidth, "Capture and canvas width")
		height    = flag.Int("height", canvas.DefaultHeight, "Capture and canvas height")
		fps       = flag.Int("fps", capture.DefaultFPS, "Frame loop rate")
		addr      = flag.String("addr", ":8080", "HTTP listen address")
		webDir    = flag.String("web", "", "Directory with the web UI (searched for when empty)")
		script    = flag.String("script", "", "Path to "+detector.ServiceScript)
		python    = flag.String("python", "", "Python interpreter for the landmark service")
		snapshots = flag.String("snapshots", store.MemoryDSN, "Snapshot database; the default keeps history in memory")
		outDir    = flag.String("out", ".", "Directory for saved drawings")
		size      = flag.Int("size", brush.DefaultConfig().Size, "Initial brush size")
		shape     = flag.String("shape", brush.DefaultConfig().Shape.String(), "Initial brush shape: line|circle|square|star")
		noHUD     = flag.Bool("no-hud", false, "Do not draw the palette and cursor on the display")
		noTray    = flag.Bool("no-tray", false, "Run without the system tray menu")
		debug     = flag.Bool("debug", false, "Panic on brush errors instead of skipping the stroke")
	)

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, banner)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := app.DefaultConfig()
	cfg.FPS = *fps
	cfg.HUD = !*noHUD
	cfg.Debug = *debug
	cfg.Brush.Size = *size
	s, err := brush.ParseShape(*shape)
	if err != nil {
		log.Fatalf("Invalid -shape: %v", err)
	}
	cfg.Brush.Shape = s
	if err := cfg.Brush.Validate(); err != nil {
		log.Fatalf("Invalid brush: %v", err)
	}

	st, err := store.New(*snapshots)
	if err != nil {
		log.Fatalf("Failed to initialize snapshot store: %v", err)
	}
	defer st.Close()

	c := canvas.New(*width, *height, st.Snapshots())
	defer c.Close()

	camera := capture.NewCamera(capture.Config{
		DeviceID: *cameraID,
		Width:    *width,
		Height:   *height,
		FPS:      *fps,
	})
	if err := camera.Open(); err != nil {
		if errors.Is(err, capture.ErrDeviceUnavailable) {
			log.Fatalf("No camera at index %d: %v", *cameraID, err)
		}
		log.Fatalf("Failed to open camera: %v", err)
	}

	// Try MediaPipe first, fall back to mock detector
	detCfg := detector.DefaultConfig()
	detCfg.ScriptPath = *script
	detCfg.PythonPath = *python
	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(detCfg); err == nil {
		det = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		det = detector.NewMockDetector()
	}

	a := app.New(cfg, camera, det, c)
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start frame loop: %v", err)
	}
	defer a.Close()

	staticDir := *webDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		fmt.Printf("Serving static files from: %s\n", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		App:       a,
		StreamFPS: *fps,
		ExportDir: *outDir,
	})
	defer srv.Close()

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *noTray {
		waitForSignal()
		return
	}

	runTray(a, *addr, *outDir)
}

// runTray blocks until Quit is chosen or the process is signalled.
func runTray(a *app.App, addr, outDir string) {
	t := tray.New()

	t.OnToggle(a.SetGestureEnabled)
	t.OnClear(a.Clear)
	t.OnSnapshot(func() {
		if _, err := a.CaptureSnapshot(); err != nil {
			log.Printf("Snapshot failed: %v", err)
		}
	})
	t.OnSave(func() {
		name := "airpaint-" + time.Now().Format("20060102-150405")
		if _, err := a.Save(filepath.Join(outDir, name)); err != nil {
			log.Printf("Save failed: %v", err)
		}
	})
	t.OnQuit(func() {
		log.Println("Quit chosen from tray")
	})
	t.OnOpenUI(func() {
		if err := openBrowser(localURL(addr)); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	})

	// Keep the menu in step with changes made from the web UI.
	var mu sync.Mutex
	lastMode, lastEnabled := "", true
	a.Subscribe(func(s app.Status) {
		mu.Lock()
		defer mu.Unlock()
		if mode := s.Mode.String(); mode != lastMode {
			lastMode = mode
			t.SetMode(mode)
		}
		if s.GestureEnabled != lastEnabled {
			lastEnabled = s.GestureEnabled
			t.SetEnabled(s.GestureEnabled)
		}
	})

	go func() {
		waitForSignal()
		t.Quit()
	}()

	t.Run()
}

func waitForSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Println("Shutting down")
}

func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.airpaint/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".airpaint", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
