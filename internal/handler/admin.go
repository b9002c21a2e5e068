package handler

import (
	"context"
	"net/http"

	"github.com/johndoniego/erudite/internal/service"
)

// Pinger reports whether the storage medium is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// AdminHandler handles health checks and data reset
type AdminHandler struct {
	reset *service.ResetService
	db    Pinger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reset *service.ResetService, db Pinger) *AdminHandler {
	return &AdminHandler{reset: reset, db: db}
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// Health handles GET /health
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Storage: err.Error()})
		return
	}
	WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Storage: "ok"})
}

// ResetResponse lists the collections removed by a reset
type ResetResponse struct {
	Removed []string `json:"removed"`
}

// Reset handles POST /api/reset
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	removed, err := h.reset.Reset(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if removed == nil {
		removed = []string{}
	}
	WriteData(w, http.StatusOK, ResetResponse{Removed: removed}, nil)
}
