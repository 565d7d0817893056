package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/app"
)

const (
	feedWriteWait  = 5 * time.Second
	feedBufferSize = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// DecisionFeed pushes every dispatched command to WebSocket clients as JSON.
type DecisionFeed struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
	logger  *slog.Logger
}

// NewDecisionFeed creates an empty DecisionFeed.
func NewDecisionFeed(logger *slog.Logger) *DecisionFeed {
	if logger == nil {
		logger = slog.Default()
	}
	return &DecisionFeed{
		clients: make(map[chan []byte]struct{}),
		logger:  logger,
	}
}

// Publish queues e for every client. Slow clients miss messages rather than
// stall the session.
func (f *DecisionFeed) Publish(e app.Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		f.logger.Warn("encoding decision", "error", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for send := range f.clients {
		select {
		case send <- msg:
		default:
		}
	}
}

// Clients returns the number of connected clients.
func (f *DecisionFeed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// ServeHTTP upgrades the connection and writes queued decisions until the
// client disconnects.
func (f *DecisionFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	send := make(chan []byte, feedBufferSize)
	f.mu.Lock()
	f.clients[send] = struct{}{}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.clients, send)
		f.mu.Unlock()
	}()

	// The reader only notices the client going away.
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
		case <-r.Context().Done():
			return
		case msg := <-send:
			conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}
