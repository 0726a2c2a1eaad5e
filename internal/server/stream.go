package server

import (
	"fmt"
	"net/http"
	"time"

	"gocv.io/x/gocv"
)

// DisplaySource yields the latest composited display frame.
type DisplaySource interface {
	Display() (gocv.Mat, bool)
}

// StreamHandler serves the display as MJPEG.
type StreamHandler struct {
	source   DisplaySource
	interval time.Duration
}

// NewStreamHandler creates a new StreamHandler that pushes fps frames per second.
func NewStreamHandler(source DisplaySource, fps int) *StreamHandler {
	if fps <= 0 {
		fps = DefaultStreamFPS
	}
	return &StreamHandler{source: source, interval: time.Second / time.Duration(fps)}
}

// ServeHTTP streams MJPEG frames until the client goes away.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if err := h.writeFrame(w); err != nil {
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

// writeFrame writes one multipart JPEG part. No display yet means nothing is written.
func (h *StreamHandler) writeFrame(w http.ResponseWriter) error {
	frame, ok := h.source.Display()
	defer frame.Close()
	if !ok {
		return nil
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		return nil
	}
	defer buf.Close()

	fmt.Fprintf(w, "--frame\r\n")
	fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
	fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
	if _, err := w.Write(buf.GetBytes()); err != nil {
		return err
	}
	fmt.Fprintf(w, "\r\n")

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}
