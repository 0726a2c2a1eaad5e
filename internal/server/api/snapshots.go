package api

import (
	"net/http"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ayusman/airpaint/internal/canvas"
)

// SnapshotHandler serves /api/snapshots and its per-index routes.
type SnapshotHandler struct {
	painter Painter
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(p Painter) *SnapshotHandler {
	return &SnapshotHandler{painter: p}
}

type listSnapshotsResponse struct {
	Snapshots []canvas.SnapshotInfo `json:"snapshots"`
}

type captureResponse struct {
	Index int `json:"index"`
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/snapshots, /api/snapshots/{i}/restore, /api/snapshots/{i}/thumbnail
func (h *SnapshotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/snapshots")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w)
		case http.MethodPost:
			h.capture(w)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")
	if len(parts) != 2 {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	i, ok := parseIndex(w, parts[0])
	if !ok {
		return
	}

	switch parts[1] {
	case "restore":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := h.painter.RestoreSnapshot(i); err != nil {
			writeFailure(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case "thumbnail":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.thumbnail(w, i)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// list handles GET /api/snapshots.
func (h *SnapshotHandler) list(w http.ResponseWriter) {
	snaps, err := h.painter.Snapshots()
	if err != nil {
		writeFailure(w, err)
		return
	}
	if snaps == nil {
		snaps = []canvas.SnapshotInfo{}
	}
	writeJSON(w, http.StatusOK, listSnapshotsResponse{Snapshots: snaps})
}

// capture handles POST /api/snapshots.
func (h *SnapshotHandler) capture(w http.ResponseWriter) {
	i, err := h.painter.CaptureSnapshot()
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, captureResponse{Index: i})
}

// thumbnail handles GET /api/snapshots/{i}/thumbnail.
func (h *SnapshotHandler) thumbnail(w http.ResponseWriter, i int) {
	img, err := h.painter.SnapshotThumbnail(i)
	if err != nil {
		writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	imaging.Encode(w, img, imaging.PNG)
}
