// Package api provides HTTP API handlers for the airpaint drawing surface.
package api

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"net/http"
	"strconv"

	"github.com/ayusman/airpaint/internal/brush"
	"github.com/ayusman/airpaint/internal/canvas"
	"github.com/ayusman/airpaint/internal/palette"
)

// Painter is the command surface the handlers drive. *app.App implements it.
type Painter interface {
	Brush() brush.Config
	SetBrush(cfg brush.Config) error
	SetColor(c color.RGBA)
	Palette() []palette.Entry
	SelectPalette(i int) (palette.Entry, error)

	Clear()
	Save(path string) (string, error)
	CanvasImage() (image.Image, error)

	CaptureSnapshot() (int, error)
	Snapshots() ([]canvas.SnapshotInfo, error)
	RestoreSnapshot(i int) error
	SnapshotThumbnail(i int) (image.Image, error)

	SetGestureEnabled(enabled bool)
	GestureEnabled() bool
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeFailure maps a command error onto a status code.
func writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, canvas.ErrOutOfRange):
		status = http.StatusNotFound
	case errors.Is(err, brush.ErrInvalidSize),
		errors.Is(err, brush.ErrInvalidColor),
		errors.Is(err, brush.ErrUnsupportedShape),
		errors.Is(err, canvas.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	case errors.Is(err, canvas.ErrSizeMismatch):
		status = http.StatusConflict
	}
	writeError(w, status, err.Error())
}

// parseIndex parses a path segment as a non-negative index.
func parseIndex(w http.ResponseWriter, s string) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		writeError(w, http.StatusBadRequest, "Invalid index")
		return 0, false
	}
	return i, true
}
