package stream

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mcoot/tilepath/internal/model"
)

const (
	// Time between keepalive comments
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 64
)

// Client represents a connected SSE client
type Client struct {
	hub  *Hub
	send chan []byte
}

// NewClient creates a new SSE client
func NewClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		send: make(chan []byte, sendBufferSize),
	}
}

// ServeSSE streams events for gameID until the client disconnects or the
// hub shuts down
func ServeSSE(w http.ResponseWriter, r *http.Request, manager *HubManager, gameID model.GameID) {
	rc := http.NewResponseController(w)

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := manager.Subscribe(gameID)
	defer manager.Unsubscribe(client)

	// The server write timeout would otherwise cut the stream off
	_ = rc.SetWriteDeadline(time.Time{})

	// Send initial connection event
	connected, _ := json.Marshal(map[string]string{"game_id": string(gameID)})
	_, _ = w.Write(formatSSEMessage("connected", string(connected)))
	if err := rc.Flush(); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			_ = rc.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			_ = rc.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
