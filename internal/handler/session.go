package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/service"
)

// SessionHandler handles scheduled session HTTP requests
type SessionHandler struct {
	svc *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// List handles GET /api/sessions?status=
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.SessionStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		WriteError(w, MapServiceError(service.ErrInvalidStatus))
		return
	}
	WriteData(w, http.StatusOK, h.svc.List(r.Context(), status), nil)
}

// Upcoming handles GET /api/sessions/upcoming
func (h *SessionHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, h.svc.Upcoming(r.Context()), nil)
}

// Schedule handles POST /api/sessions
func (h *SessionHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req model.ScheduleSessionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	session, err := h.svc.Schedule(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, session, map[string]string{
		"self": "/api/sessions/" + session.ID,
	})
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, session, nil)
}

// UpdateStatusRequest moves a session to a new status
type UpdateStatusRequest struct {
	Status model.SessionStatus `json:"status"`
}

// UpdateStatus handles PUT /api/sessions/{id}/status
func (h *SessionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	session, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, session, nil)
}
