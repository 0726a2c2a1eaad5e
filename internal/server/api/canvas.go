package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// CanvasHandler serves /api/canvas, /api/canvas/export and /api/canvas.png.
type CanvasHandler struct {
	painter   Painter
	exportDir string
}

// NewCanvasHandler creates a new CanvasHandler. Exports are written under exportDir,
// or the working directory when it is empty.
func NewCanvasHandler(p Painter, exportDir string) *CanvasHandler {
	if exportDir == "" {
		exportDir = "."
	}
	return &CanvasHandler{painter: p, exportDir: exportDir}
}

type exportRequest struct {
	Path string `json:"path"`
}

type exportResponse struct {
	Path string `json:"path"`
}

// ServeHTTP implements the http.Handler interface.
func (h *CanvasHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch strings.TrimSuffix(r.URL.Path, "/") {
	case "/api/canvas":
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.painter.Clear()
		w.WriteHeader(http.StatusNoContent)
	case "/api/canvas/export":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.export(w, r)
	case "/api/canvas.png":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.image(w)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// export handles POST /api/canvas/export. The path names a file inside the export
// directory; absolute paths and paths that climb out of it are rejected.
func (h *CanvasHandler) export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		writeError(w, http.StatusBadRequest, "Path is required")
		return
	}

	if !filepath.IsLocal(req.Path) {
		writeError(w, http.StatusBadRequest, "Path must stay inside the export directory")
		return
	}

	written, err := h.painter.Save(filepath.Join(h.exportDir, req.Path))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Path: written})
}

// image handles GET /api/canvas.png.
func (h *CanvasHandler) image(w http.ResponseWriter) {
	img, err := h.painter.CanvasImage()
	if err != nil {
		writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	imaging.Encode(w, img, imaging.PNG)
}
