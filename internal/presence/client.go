package presence

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/solhaven/astrocade/internal/model"
)

const (
	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client represents a connected presence stream client
type Client struct {
	hub         *Hub
	summary     model.PlayerSummary
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new presence client carrying the player snapshot
// taken when the request was synchronized.
func NewClient(hub *Hub, summary model.PlayerSummary) *Client {
	return &Client{
		hub:         hub,
		summary:     summary,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE handles a presence stream connection for a player
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, summary model.PlayerSummary) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := NewClient(hub, summary)
	hub.Register(client)

	defer func() {
		hub.Unregister(client)
	}()

	// The connected event echoes the client's own snapshot back to it.
	snapshot, _ := json.Marshal(summary)
	_, _ = w.Write(formatSSEMessage("connected", string(snapshot)))
	flusher.Flush()

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
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
