package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/johndoniego/erudite/internal/media"
	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/service"
	"github.com/johndoniego/erudite/internal/store"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// ===== Limit → 409 =====
	var limitErr *service.LimitError
	if errors.As(err, &limitErr) {
		return model.NewLimitExceededError("communities", limitErr.Limit, limitErr.Current)
	}

	// ===== Form validation → 422 =====
	// Checked before sentinels so a duplicate community name reports its field
	var verrs model.ValidationErrors
	if errors.As(err, &verrs) {
		return model.NewValidationError(verrs.FieldErrors())
	}

	switch {
	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotPostAuthor):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrCommunityNotFound):
		return model.NewNotFoundError("community")
	case errors.Is(err, service.ErrPostNotFound):
		return model.NewNotFoundError("post")
	case errors.Is(err, service.ErrSessionNotFound):
		return model.NewNotFoundError("session")
	case errors.Is(err, service.ErrSkillNotFound):
		return model.NewNotFoundError("skill")
	case errors.Is(err, service.ErrPersonNotFound):
		return model.NewNotFoundError("person")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrDuplicateSkill):
		return model.NewConflictError(err.Error())

	// ===== Bad Input → 400 =====
	case errors.Is(err, store.ErrMalformedValue):
		return model.NewBadRequestError("value does not have the collection's shape")
	case errors.Is(err, service.ErrInvalidScope),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidKind),
		errors.Is(err, service.ErrInvalidIntent):
		return model.NewBadRequestError(err.Error())

	// ===== Image uploads → 422 =====
	case errors.Is(err, media.ErrEmptyImage),
		errors.Is(err, media.ErrImageTooLarge),
		errors.Is(err, media.ErrUnsupportedImage):
		return model.NewValidationError([]model.FieldError{{Field: "image", Message: err.Error()}})

	// ===== Storage → 503 =====
	case errors.Is(err, store.ErrStorageUnavailable):
		return model.NewStorageUnavailableError("")

	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return model.NewBadRequestError("request cancelled")

	default:
		slog.Error("unmapped service error", slog.String("error", err.Error()))
		return model.NewInternalError("")
	}
}
