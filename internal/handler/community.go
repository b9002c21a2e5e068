package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/service"
)

// CommunityHandler handles community HTTP requests
type CommunityHandler struct {
	svc *service.CommunityService
}

// NewCommunityHandler creates a new community handler
func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

// JoinedResponse is the membership set with its limit
type JoinedResponse struct {
	IDs         []string          `json:"ids"`
	Communities []model.Community `json:"communities"`
	Limit       int               `json:"limit"`
}

// List handles GET /api/communities?q=&sort=
func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	communities := h.svc.List(r.Context(), service.ListOptions{
		Query: q.Get("q"),
		Sort:  q.Get("sort"),
	})
	WriteData(w, http.StatusOK, communities, nil)
}

// Get handles GET /api/communities/{id}
func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	community, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, community, map[string]string{
		"posts": "/api/communities/" + community.ID + "/posts",
	})
}

// Create handles POST /api/communities
func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCommunityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	community, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, community, map[string]string{
		"self": "/api/communities/" + community.ID,
		"join": "/api/communities/" + community.ID + "/join",
	})
}

// Joined handles GET /api/communities/joined
func (h *CommunityHandler) Joined(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	WriteData(w, http.StatusOK, JoinedResponse{
		IDs:         h.svc.JoinedIDs(ctx),
		Communities: h.svc.Joined(ctx),
		Limit:       h.svc.Limit(),
	}, nil)
}

// Join handles POST /api/communities/{id}/join
func (h *CommunityHandler) Join(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.Join(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, ids, nil)
}

// Leave handles DELETE /api/communities/{id}/join
func (h *CommunityHandler) Leave(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.Leave(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, ids, nil)
}
