package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/johndoniego/erudite/internal/media"
	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/service"
)

// multipartOverhead is the slack allowed on top of the image size for form fields and boundaries
const multipartOverhead = 64 << 10

// ProfileHandler handles profile, avatar and skill HTTP requests
type ProfileHandler struct {
	svc           *service.ProfileService
	maxImageBytes int64
}

// NewProfileHandler creates a new profile handler. maxImageBytes <= 0 uses media.DefaultMaxBytes.
func NewProfileHandler(svc *service.ProfileService, maxImageBytes int64) *ProfileHandler {
	if maxImageBytes <= 0 {
		maxImageBytes = media.DefaultMaxBytes
	}
	return &ProfileHandler{svc: svc, maxImageBytes: maxImageBytes}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, h.svc.Get(r.Context()), nil)
}

// Update handles PUT /api/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	profile, err := h.svc.Save(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, profile, nil)
}

// loadImage starts reading the multipart file in field
func (h *ProfileHandler) loadImage(w http.ResponseWriter, r *http.Request, field string) (*media.ImageTask, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageBytes+multipartOverhead)
	file, _, err := r.FormFile(field)
	if err != nil {
		WriteError(w, model.NewValidationError([]model.FieldError{{
			Field:   field,
			Message: "Attach an image under the size limit",
		}}))
		return nil, false
	}
	return media.Load(file, h.maxImageBytes), true
}

// SetAvatar handles PUT /api/profile/avatar with a multipart "avatar" file
func (h *ProfileHandler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	task, ok := h.loadImage(w, r, "avatar")
	if !ok {
		return
	}

	profile, err := h.svc.SetAvatar(r.Context(), task)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, profile, nil)
}

// ImageResponse carries a data reference usable as a post image
type ImageResponse struct {
	Ref string `json:"ref"`
}

// UploadImage handles POST /api/media/images with a multipart "image" file.
// Nothing is stored; the reference is attached to a post by the caller.
func (h *ProfileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	task, ok := h.loadImage(w, r, "image")
	if !ok {
		return
	}

	ref, err := task.Wait(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, ImageResponse{Ref: ref}, nil)
}

// Skills handles GET /api/profile/skills/{kind}
func (h *ProfileHandler) Skills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.svc.Skills(r.Context(), model.SkillKind(chi.URLParam(r, "kind")))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, skills, nil)
}

// AddSkill handles POST /api/profile/skills/{kind}
func (h *ProfileHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	var req model.AddSkillRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	skills, err := h.svc.AddSkill(r.Context(), model.SkillKind(chi.URLParam(r, "kind")), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, skills, nil)
}

// RemoveSkill handles DELETE /api/profile/skills/{kind}/{name}
func (h *ProfileHandler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	skills, err := h.svc.RemoveSkill(r.Context(), model.SkillKind(chi.URLParam(r, "kind")), chi.URLParam(r, "name"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, skills, nil)
}
