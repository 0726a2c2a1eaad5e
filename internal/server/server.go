// Package server provides the HTTP server for the airpaint web UI.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/airpaint/internal/server/api"
)

// DefaultStreamFPS is the MJPEG frame rate when Config.StreamFPS is unset.
const DefaultStreamFPS = 15

// Backend is what the server drives. *app.App implements it.
type Backend interface {
	api.Painter
	DisplaySource
	StatusSource
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	App       Backend
	StreamFPS int
	// ExportDir is where POST /api/canvas/export writes. Empty means the working directory.
	ExportDir string
}

// Server represents the HTTP server for the airpaint application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	status *StatusHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	if config.StreamFPS <= 0 {
		config.StreamFPS = DefaultStreamFPS
	}

	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if a := s.config.App; a != nil {
		s.mux.Handle("/api/brush", api.NewBrushHandler(a))

		palette := api.NewPaletteHandler(a)
		s.mux.Handle("/api/palette", palette)
		s.mux.Handle("/api/palette/", palette)

		canvas := api.NewCanvasHandler(a, s.config.ExportDir)
		s.mux.Handle("/api/canvas", canvas)
		s.mux.Handle("/api/canvas/", canvas)
		s.mux.Handle("/api/canvas.png", canvas)

		snapshots := api.NewSnapshotHandler(a)
		s.mux.Handle("/api/snapshots", snapshots)
		s.mux.Handle("/api/snapshots/", snapshots)

		s.mux.Handle("/api/gesture", api.NewGestureHandler(a))

		s.mux.Handle("/api/stream", NewStreamHandler(a, s.config.StreamFPS))

		s.status = NewStatusHandler(a)
		s.mux.Handle("/api/status", s.status)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Close disconnects status clients and stops listening for app updates.
func (s *Server) Close() {
	if s.status != nil {
		s.status.Close()
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
