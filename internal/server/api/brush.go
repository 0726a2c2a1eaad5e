package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/airpaint/internal/brush"
	"github.com/ayusman/airpaint/internal/palette"
)

// BrushHandler serves /api/brush.
type BrushHandler struct {
	painter Painter
}

// NewBrushHandler creates a new BrushHandler.
func NewBrushHandler(p Painter) *BrushHandler {
	return &BrushHandler{painter: p}
}

// updateBrushRequest carries the fields to change; omitted fields keep their value.
type updateBrushRequest struct {
	Color *string `json:"color"`
	Size  *int    `json:"size"`
	Shape *string `json:"shape"`
}

// ServeHTTP implements the http.Handler interface.
func (h *BrushHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.painter.Brush())
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// update handles PUT /api/brush. The change is applied whole or not at all. A
// color-only change goes through SetColor and leaves size and shape untouched.
func (h *BrushHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateBrushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Color != nil && req.Size == nil && req.Shape == nil {
		c, err := brush.ParseHex(*req.Color)
		if err != nil {
			writeFailure(w, err)
			return
		}
		h.painter.SetColor(c)
		writeJSON(w, http.StatusOK, h.painter.Brush())
		return
	}

	cfg := h.painter.Brush()
	if req.Color != nil {
		c, err := brush.ParseHex(*req.Color)
		if err != nil {
			writeFailure(w, err)
			return
		}
		cfg.Color = c
	}
	if req.Size != nil {
		cfg.Size = *req.Size
	}
	if req.Shape != nil {
		s, err := brush.ParseShape(*req.Shape)
		if err != nil {
			writeFailure(w, err)
			return
		}
		cfg.Shape = s
	}

	if err := h.painter.SetBrush(cfg); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// PaletteHandler serves /api/palette and /api/palette/{i}.
type PaletteHandler struct {
	painter Painter
}

// NewPaletteHandler creates a new PaletteHandler.
func NewPaletteHandler(p Painter) *PaletteHandler {
	return &PaletteHandler{painter: p}
}

type paletteEntryResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type paletteResponse struct {
	Entries []paletteEntryResponse `json:"entries"`
	Active  int                    `json:"active"`
}

func toEntryResponse(i int, e palette.Entry) paletteEntryResponse {
	return paletteEntryResponse{Index: i, Name: e.Name, Color: brush.Hex(e.Color)}
}

// ServeHTTP implements the http.Handler interface.
func (h *PaletteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/palette")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	i, ok := parseIndex(w, path)
	if !ok {
		return
	}
	e, err := h.painter.SelectPalette(i)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(i, e))
}

// list handles GET /api/palette. Active is the entry matching the brush color, or -1.
func (h *PaletteHandler) list(w http.ResponseWriter) {
	current := h.painter.Brush().Color
	resp := paletteResponse{Active: -1}
	for i, e := range h.painter.Palette() {
		resp.Entries = append(resp.Entries, toEntryResponse(i, e))
		if e.Color == current && resp.Active < 0 {
			resp.Active = i
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
