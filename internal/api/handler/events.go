package handler

import (
	"net/http"

	"github.com/solhaven/astrocade/internal/api/middleware"
	"github.com/solhaven/astrocade/internal/presence"
)

// EventsHandler handles the presence event stream
type EventsHandler struct {
	hub *presence.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *presence.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /events. The connection takes the caller's snapshot
// from the synchronized request context; later currency changes do not
// retroactively rewrite it.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	summary, ok := middleware.GetSummary(r.Context())
	if !ok {
		WriteError(w, NewUnauthorizedError())
		return
	}

	presence.ServeSSE(w, r, h.hub, summary)
}
