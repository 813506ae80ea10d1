// Package stream pushes newly recorded attempts to clients over
// server-sent events.
package stream

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/tilepath/internal/model"
)

// Hub fans events out to the clients watching a single game
type Hub struct {
	gameID  model.GameID
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	broadcast chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewHub creates a new Hub for a game
func NewHub(gameID model.GameID, logger *slog.Logger) *Hub {
	return &Hub{
		gameID:    gameID,
		clients:   make(map[*Client]bool),
		logger:    logger.With(slog.String("game_id", string(gameID))),
		broadcast: make(chan []byte, 256),
		done:      make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Debug("stream hub started")
	for {
		select {
		case message := <-h.broadcast:
			h.mu.RLock()
			sentCount := 0
			droppedCount := 0
			for client := range h.clients {
				select {
				case client.send <- message:
					sentCount++
				default:
					droppedCount++
				}
			}
			h.mu.RUnlock()
			if droppedCount > 0 {
				h.logger.Warn("stream broadcast partial failure",
					slog.Int("sent", sentCount),
					slog.Int("dropped", droppedCount))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Debug("stream hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

// remove drops client and reports how many remain
func (h *Hub) remove(client *Client) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	return len(h.clients)
}

// Broadcast queues a message for every client
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("stream broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// Close shuts down the hub and disconnects its clients
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage prefixes every line of data with "data: "
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits on \n, dropping \r and a trailing empty line
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// HubManager owns one hub per watched game. Hubs are created on the first
// subscription and removed when their last client leaves.
type HubManager struct {
	hubs   map[model.GameID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
	closed bool
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.GameID]*Hub),
		logger: logger.With(slog.String("component", "stream")),
	}
}

// Subscribe registers a new client for gameID. After Close the client
// comes back already disconnected.
func (m *HubManager) Subscribe(gameID model.GameID) *Client {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		client := NewClient(NewHub(gameID, m.logger))
		close(client.send)
		return client
	}

	hub, ok := m.hubs[gameID]
	if !ok {
		hub = NewHub(gameID, m.logger)
		m.hubs[gameID] = hub
		go hub.Run()
	}

	client := NewClient(hub)
	hub.add(client)
	return client
}

// Unsubscribe removes client, closing its hub if it was the last one
func (m *HubManager) Unsubscribe(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hub := client.hub
	if hub.remove(client) == 0 && m.hubs[hub.gameID] == hub {
		hub.Close()
		delete(m.hubs, hub.gameID)
	}
}

// GetHub returns the hub for a game, or nil if nobody is watching it
func (m *HubManager) GetHub(gameID model.GameID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[gameID]
}

// HubCount returns the number of games being watched
func (m *HubManager) HubCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hubs)
}

// Close disconnects every client and refuses new subscriptions
func (m *HubManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	for gameID, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, gameID)
	}
}
