package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/service"
)

// PostHandler handles posts under one scope type. The scope id comes from
// the {id} path parameter.
type PostHandler struct {
	posts     *service.PostService
	saved     *service.SavedService
	scopeType model.ScopeType
}

// NewPostHandler creates a post handler for scopeType
func NewPostHandler(posts *service.PostService, saved *service.SavedService, scopeType model.ScopeType) *PostHandler {
	return &PostHandler{posts: posts, saved: saved, scopeType: scopeType}
}

func (h *PostHandler) scope(r *http.Request) model.PostScope {
	return model.PostScope{Type: h.scopeType, ID: chi.URLParam(r, "id")}
}

// List handles GET .../{id}/posts?q=
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context(), h.scope(r), r.URL.Query().Get("q"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, posts, nil)
}

// Create handles POST .../{id}/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePostRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	post, err := h.posts.Create(r.Context(), h.scope(r), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, post, nil)
}

// Delete handles DELETE .../{id}/posts/{postID}?author=
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.posts.Delete(r.Context(), h.scope(r), chi.URLParam(r, "postID"), r.URL.Query().Get("author"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}

// Comment handles POST .../{id}/posts/{postID}/comments
func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCommentRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	comment, err := h.posts.Comment(r.Context(), h.scope(r), chi.URLParam(r, "postID"), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, comment, nil)
}

// Like handles POST .../{id}/posts/{postID}/like - toggles the like
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.ToggleLike(r.Context(), h.scope(r), chi.URLParam(r, "postID"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, post, nil)
}

// SaveResponse reports whether a post is saved after a toggle
type SaveResponse struct {
	PostID string `json:"postId"`
	Saved  bool   `json:"saved"`
}

// Save handles POST .../{id}/posts/{postID}/save - toggles the bookmark
func (h *PostHandler) Save(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	saved, err := h.saved.Toggle(r.Context(), h.scope(r), postID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, SaveResponse{PostID: postID, Saved: saved}, nil)
}

// SavedHandler handles the saved posts list
type SavedHandler struct {
	svc *service.SavedService
}

// NewSavedHandler creates a new saved handler
func NewSavedHandler(svc *service.SavedService) *SavedHandler {
	return &SavedHandler{svc: svc}
}

// List handles GET /api/saved?q=
func (h *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, h.svc.List(r.Context(), r.URL.Query().Get("q")), nil)
}

// Remove handles DELETE /api/saved/{postID}
func (h *SavedHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Unsave(r.Context(), chi.URLParam(r, "postID")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}
