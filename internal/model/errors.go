package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Resource errors (3xxx)
	ErrCodeNotFound      ErrorCode = 3001
	ErrCodeAlreadyExists ErrorCode = 3002
	ErrCodeForbidden     ErrorCode = 3003

	// Validation errors (4xxx)
	ErrCodeValidation    ErrorCode = 4001
	ErrCodeInvalidInput  ErrorCode = 4002
	ErrCodeLimitExceeded ErrorCode = 4003

	// Internal errors (5xxx)
	ErrCodeInternal           ErrorCode = 5001
	ErrCodeStorageUnavailable ErrorCode = 5002
)

const problemBaseURL = "https://erudite.app/errors/"

// ProblemDetails represents RFC 9457 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	// Extension fields
	Code    ErrorCode `json:"code,omitempty"`
	Limit   *int      `json:"limit,omitempty"`
	Current *int      `json:"current,omitempty"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON writes the problem details as JSON response
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func newProblem(slug, title string, status int, code ErrorCode, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemBaseURL + slug,
		Title:  title,
		Status: status,
		Detail: detail,
		Code:   code,
	}
}

// NewForbiddenError is returned when the caller may not touch a resource,
// such as deleting another author's post
func NewForbiddenError(detail string) *ProblemDetails {
	return newProblem("forbidden", "Forbidden", http.StatusForbidden, ErrCodeForbidden, detail)
}

// NewNotFoundError names the missing resource in the detail
func NewNotFoundError(resource string) *ProblemDetails {
	return newProblem("not-found", "Not Found", http.StatusNotFound, ErrCodeNotFound, resource+" not found")
}

// NewValidationError summarises the first field error in the detail and
// carries all of them in Errors
func NewValidationError(fields []FieldError) *ProblemDetails {
	detail := "One or more fields failed validation"
	switch len(fields) {
	case 0:
	case 1:
		detail = fields[0].Field + ": " + fields[0].Message
	default:
		detail = fmt.Sprintf("%s: %s (and %d more errors)", fields[0].Field, fields[0].Message, len(fields)-1)
	}
	p := newProblem("validation", "Validation Error", http.StatusUnprocessableEntity, ErrCodeValidation, detail)
	p.Errors = fields
	return p
}

// NewLimitExceededError is distinct from a validation error so the UI can
// show its dedicated explanation dialog
func NewLimitExceededError(resource string, limit, current int) *ProblemDetails {
	p := newProblem("limit-exceeded", "Limit Exceeded", http.StatusConflict, ErrCodeLimitExceeded,
		fmt.Sprintf("Maximum of %d %s reached", limit, resource))
	p.Limit = &limit
	p.Current = &current
	return p
}

func NewConflictError(detail string) *ProblemDetails {
	return newProblem("conflict", "Conflict", http.StatusConflict, ErrCodeAlreadyExists, detail)
}

// NewStorageUnavailableError reports a medium that is disabled, unreachable
// or full
func NewStorageUnavailableError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "Your changes could not be saved on this device"
	}
	return newProblem("storage-unavailable", "Storage Unavailable", http.StatusServiceUnavailable, ErrCodeStorageUnavailable, detail)
}

func NewInternalError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return newProblem("internal", "Internal Server Error", http.StatusInternalServerError, ErrCodeInternal, detail)
}

func NewBadRequestError(detail string) *ProblemDetails {
	return newProblem("bad-request", "Bad Request", http.StatusBadRequest, ErrCodeInvalidInput, detail)
}
