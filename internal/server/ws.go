package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ayusman/airpaint/internal/app"
)

// clientBuffer is how many statuses may queue for a slow client before updates are dropped.
const clientBuffer = 8

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StatusSource publishes per-tick statuses.
type StatusSource interface {
	Status() app.Status
	Subscribe(fn func(app.Status)) func()
}

// StatusHandler pushes every tick's status to WebSocket clients as JSON.
type StatusHandler struct {
	source      StatusSource
	unsubscribe func()

	mu      sync.RWMutex
	clients map[*websocket.Conn]chan []byte
}

// NewStatusHandler creates a StatusHandler subscribed to source.
func NewStatusHandler(source StatusSource) *StatusHandler {
	h := &StatusHandler{
		source:  source,
		clients: make(map[*websocket.Conn]chan []byte),
	}
	h.unsubscribe = source.Subscribe(h.broadcast)
	return h
}

// ServeHTTP handles WebSocket upgrade requests. The current status is sent first, after
// the client is registered for broadcasts.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan []byte, clientBuffer)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()

	if msg, err := json.Marshal(h.source.Status()); err == nil {
		select {
		case send <- msg:
		default:
		}
	}

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Reads only detect the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case msg, ok := <-send:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

// broadcast queues s for every client, dropping it for clients that are behind.
func (h *StatusHandler) broadcast(s app.Status) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(s)
	if err != nil {
		log.Printf("Error encoding status: %v", err)
		return
	}

	for _, send := range h.clients {
		select {
		case send <- msg:
		default:
		}
	}
}

// Close stops receiving statuses and ends every client connection.
func (h *StatusHandler) Close() {
	h.unsubscribe()

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.clients {
		close(send)
		delete(h.clients, conn)
	}
}
