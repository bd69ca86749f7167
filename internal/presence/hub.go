package presence

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Hub fans presence events out to connected stream clients. Each client
// carries the player snapshot it was handed at connection time; the hub
// never reaches back into request state.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a new presence hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("component", "presence")),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("presence hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("presence client registered",
				slog.String("player_id", string(client.summary.ID)),
				slog.Int("total_clients", clientCount))
			h.broadcastEventLocked("player_joined", client.summary)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("presence client unregistered",
					slog.String("player_id", string(client.summary.ID)),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
				h.broadcastEventLocked("player_left", client.summary)
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("presence broadcast partial failure",
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("presence hub stopped")
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends a raw message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("presence broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends a named event with a JSON payload to all clients
func (h *Hub) BroadcastEvent(eventName string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("presence event marshal failed",
			slog.String("event", eventName),
			slog.Any("error", err))
		return
	}
	h.Broadcast(formatSSEMessage(eventName, string(data)))
}

// broadcastEventLocked is BroadcastEvent for use inside the event loop,
// where the broadcast channel must not be the path back into Run.
func (h *Hub) broadcastEventLocked(eventName string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	message := formatSSEMessage(eventName, string(data))

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
		}
	}
	h.mu.RUnlock()
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data.
// Multi-line data gets a "data: " prefix on each line.
func formatSSEMessage(eventName, data string) []byte {
	msg := "event: " + eventName + "\n"
	lines := splitLines(data)
	for _, line := range lines {
		msg += "data: " + line + "\n"
	}
	msg += "\n"
	return []byte(msg)
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	var lines []string
	var current string
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}
