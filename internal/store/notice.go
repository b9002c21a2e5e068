package store

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/johndoniego/erudite/internal/events"
)

// NoticeKey is the hub key notices are published under
const NoticeKey = "erudite:notices"

// Notice is a non-blocking, user-visible message about a failed write
type Notice struct {
	Key     string    `json:"key"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	At      time.Time `json:"at"`
}

// Notifier surfaces notices to the user. Implementations must not block.
type Notifier interface {
	Notify(n Notice)
}

// LogNotifier writes notices to a logger
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier
func (n *LogNotifier) Notify(notice Notice) {
	n.logger.Warn("storage write failed",
		"key", notice.Key,
		"message", notice.Message,
		"error", notice.Err,
	)
}

// HubNotifier logs notices and publishes them on NoticeKey, where stream
// subscribers (the UI toast layer) pick them up
type HubNotifier struct {
	hub *events.Hub
	log *LogNotifier
	now func() time.Time
}

// NewHubNotifier creates a HubNotifier
func NewHubNotifier(hub *events.Hub, logger *slog.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, log: NewLogNotifier(logger), now: time.Now}
}

// Notify implements Notifier
func (n *HubNotifier) Notify(notice Notice) {
	if notice.At.IsZero() {
		notice.At = n.now().UTC()
	}
	n.log.Notify(notice)

	data, err := json.Marshal(notice)
	if err != nil {
		return
	}
	n.hub.Notify(NoticeKey, data)
}
