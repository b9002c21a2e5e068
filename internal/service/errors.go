package service

import (
	"errors"

	"github.com/johndoniego/erudite/internal/store"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable. Form validation
// failures are returned as model.ValidationErrors.

// ===== Community Errors =====
var (
	ErrCommunityNotFound      = errors.New("community not found")
	ErrMembershipLimitReached = store.ErrMembershipLimitReached
	ErrDuplicateIdentifier    = errors.New("community identifier already in use")
)

// ===== Post Errors =====
var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("only the author can delete this post")
	ErrInvalidScope  = errors.New("invalid post scope")
)

// ===== Session Errors =====
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidStatus   = errors.New("invalid session status")
)

// ===== Profile Errors =====
var (
	ErrDuplicateSkill = errors.New("skill already listed")
	ErrSkillNotFound  = errors.New("skill not found")
	ErrInvalidKind    = errors.New("invalid skill kind")
)

// ===== People Errors =====
var (
	ErrPersonNotFound = errors.New("person not found")
	ErrInvalidIntent  = errors.New("invalid intent")
)

// LimitError is returned when joining would exceed the membership limit.
// errors.Is(err, ErrMembershipLimitReached) holds for it.
type LimitError = store.LimitError
