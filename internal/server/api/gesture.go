package api

import (
	"encoding/json"
	"net/http"
)

// GestureHandler serves /api/gesture, which pauses and resumes gesture drawing.
type GestureHandler struct {
	painter Painter
}

// NewGestureHandler creates a new GestureHandler.
func NewGestureHandler(p Painter) *GestureHandler {
	return &GestureHandler{painter: p}
}

type gestureState struct {
	Enabled *bool `json:"enabled"`
}

// ServeHTTP implements the http.Handler interface.
func (h *GestureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		var req gestureState
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.Enabled == nil {
			writeError(w, http.StatusBadRequest, "Enabled is required")
			return
		}
		h.painter.SetGestureEnabled(*req.Enabled)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	enabled := h.painter.GestureEnabled()
	writeJSON(w, http.StatusOK, gestureState{Enabled: &enabled})
}
