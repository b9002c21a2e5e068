package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/store"
)

// maxCollectionBytes bounds a raw collection upload
const maxCollectionBytes = 5 << 20

// CollectionHandler exposes raw collection values, as the browser UI would
// see them in local storage
type CollectionHandler struct {
	store *store.Store
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(s *store.Store) *CollectionHandler {
	return &CollectionHandler{store: s}
}

func collectionKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := chi.URLParam(r, "key")
	if !store.IsAppKey(key) {
		WriteError(w, model.NewBadRequestError(fmt.Sprintf("unknown collection %q", key)))
		return "", false
	}
	return key, true
}

// List handles GET /api/collections - keys currently stored
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.store.Keys(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if store.IsAppKey(k) {
			out = append(out, k)
		}
	}
	WriteData(w, http.StatusOK, out, nil)
}

// Get handles GET /api/collections/{key} - the raw JSON value, or null
func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	key, ok := collectionKey(w, r)
	if !ok {
		return
	}

	raw := h.store.ReadRaw(r.Context(), key)
	if raw == nil {
		raw = []byte("null")
	}
	WriteData(w, http.StatusOK, json.RawMessage(raw), nil)
}

// Put handles PUT /api/collections/{key} - replaces the value verbatim
func (h *CollectionHandler) Put(w http.ResponseWriter, r *http.Request) {
	key, ok := collectionKey(w, r)
	if !ok {
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCollectionBytes))
	if err != nil {
		WriteError(w, model.NewBadRequestError("request body too large"))
		return
	}
	if !json.Valid(raw) {
		WriteError(w, model.NewBadRequestError("body must be JSON"))
		return
	}

	if err := h.store.WriteRaw(r.Context(), key, raw); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}

// Delete handles DELETE /api/collections/{key}
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key, ok := collectionKey(w, r)
	if !ok {
		return
	}

	if err := h.store.Remove(r.Context(), key); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}
