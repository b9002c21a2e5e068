package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/johndoniego/erudite/internal/events"
	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/store"
)

// DefaultHeartbeat is how often an idle stream sends a keep-alive comment
const DefaultHeartbeat = 15 * time.Second

// EventsHandler handles SSE change streaming
type EventsHandler struct {
	hub       *events.Hub
	heartbeat time.Duration
}

// NewEventsHandler creates a new events handler. heartbeat <= 0 uses DefaultHeartbeat.
func NewEventsHandler(hub *events.Hub, heartbeat time.Duration) *EventsHandler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &EventsHandler{hub: hub, heartbeat: heartbeat}
}

// Stream handles GET /api/events?key=... - streams collection changes.
// Without key parameters every collection and storage notice is streamed.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	keys := r.URL.Query()["key"]
	for _, k := range keys {
		if !store.IsAppKey(k) && k != store.NoticeKey {
			WriteError(w, model.NewBadRequestError(fmt.Sprintf("unknown collection %q", k)))
			return
		}
	}

	// Check if the client supports SSE
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, model.NewInternalError("streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// The server WriteTimeout would otherwise cut the stream
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	subscriberID := uuid.New().String()
	sub := h.hub.Stream(subscriberID, keys...)
	defer h.hub.Unstream(subscriberID)

	fmt.Fprintf(w, "event: connected\ndata: {\"subscriber_id\":\"%s\"}\n\n", subscriberID)
	flusher.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case event, ok := <-sub.Events:
			if !ok {
				return
			}
			fmt.Fprint(w, event.Format())
			flusher.Flush()

		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()

		case <-sub.Done:
			return

		case <-r.Context().Done():
			// Client disconnected
			return
		}
	}
}
