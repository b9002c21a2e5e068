package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/service"
)

// PeopleHandler handles people discovery and connections
type PeopleHandler struct {
	svc *service.PeopleService
}

// NewPeopleHandler creates a new people handler
func NewPeopleHandler(svc *service.PeopleService) *PeopleHandler {
	return &PeopleHandler{svc: svc}
}

// Discover handles GET /api/people?q=&sort=
func (h *PeopleHandler) Discover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	people := h.svc.Discover(r.Context(), service.DiscoverOptions{
		Query: q.Get("q"),
		Sort:  q.Get("sort"),
	})
	WriteData(w, http.StatusOK, people, nil)
}

// Get handles GET /api/people/{id}
func (h *PeopleHandler) Get(w http.ResponseWriter, r *http.Request) {
	person, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, person, nil)
}

// Act handles POST /api/people/{id}/actions/{kind}. The returned intent tells
// the UI where to navigate.
func (h *PeopleHandler) Act(w http.ResponseWriter, r *http.Request) {
	intent, err := h.svc.Act(r.Context(), chi.URLParam(r, "id"), model.IntentKind(chi.URLParam(r, "kind")))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, intent, nil)
}

// Connections handles GET /api/connections
func (h *PeopleHandler) Connections(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, h.svc.Connections(r.Context()), nil)
}

// Connect handles PUT /api/connections/{id}
func (h *PeopleHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.svc.Connect(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, conn, nil)
}

// Disconnect handles DELETE /api/connections/{id}
func (h *PeopleHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Disconnect(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}
