package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/johndoniego/erudite/internal/model"
)

// maxRequestBytes caps JSON request bodies; image uploads use multipart
const maxRequestBytes = 1 << 20

// DataResponse is the envelope of every successful JSON body
type DataResponse struct {
	Data  any               `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// WriteJSON encodes body with status. Collections are per-user state, so
// responses are never cached.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// WriteData wraps data in a DataResponse
func WriteData(w http.ResponseWriter, status int, data any, links map[string]string) {
	WriteJSON(w, status, DataResponse{Data: data, Links: links})
}

// WriteError writes p as application/problem+json
func WriteError(w http.ResponseWriter, p *model.ProblemDetails) {
	p.WriteJSON(w)
}

// WriteNoContent answers 204
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSON reads exactly one JSON value into v. Unknown fields, trailing
// data and bodies over maxRequestBytes are rejected.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	if dec.More() {
		return errors.New("request body must hold a single JSON value")
	}
	return nil
}
