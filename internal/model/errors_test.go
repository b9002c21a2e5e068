package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ============================================================================
// Error() Interface Tests
// ============================================================================

func TestProblemDetails_Error_ReturnsFormattedMessage(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{
		Status: http.StatusNotFound,
		Title:  "Not Found",
		Detail: "community not found",
	}

	errMsg := pd.Error()

	if !strings.Contains(errMsg, "404") {
		t.Errorf("error message should contain status code, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "Not Found") {
		t.Errorf("error message should contain title, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "community not found") {
		t.Errorf("error message should contain detail, got: %s", errMsg)
	}
}

// ============================================================================
// WriteJSON Tests
// ============================================================================

func TestProblemDetails_WriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	t.Parallel()

	pd := NewForbiddenError("only the author can delete this post")
	rr := httptest.NewRecorder()

	pd.WriteJSON(rr)

	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected Content-Type 'application/problem+json', got %q", ct)
	}
	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}

	var body ProblemDetails
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Detail != "only the author can delete this post" {
		t.Errorf("unexpected detail %q", body.Detail)
	}
}

// ============================================================================
// Constructor Tests
// ============================================================================

func TestNewNotFoundError_FormatsResourceName(t *testing.T) {
	t.Parallel()

	pd := NewNotFoundError("community")

	if pd.Status != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, pd.Status)
	}
	if pd.Detail != "community not found" {
		t.Errorf("expected detail 'community not found', got %q", pd.Detail)
	}
}

func TestNewValidationError_MultipleFields_SummarizesCount(t *testing.T) {
	t.Parallel()

	pd := NewValidationError([]FieldError{
		{Field: "name", Message: "Community name is required"},
		{Field: "topics", Message: "Add at least one topic"},
	})

	if pd.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, pd.Status)
	}
	if !strings.Contains(pd.Detail, "and 1 more") {
		t.Errorf("detail should summarize remaining errors, got %q", pd.Detail)
	}
	if len(pd.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d", len(pd.Errors))
	}
}

func TestNewValidationError_EmptyErrors_ReturnsDefaultMessage(t *testing.T) {
	t.Parallel()

	pd := NewValidationError(nil)

	if pd.Detail != "One or more fields failed validation" {
		t.Errorf("unexpected detail %q", pd.Detail)
	}
}

func TestNewLimitExceededError_ReturnsCorrectValues(t *testing.T) {
	t.Parallel()

	pd := NewLimitExceededError("communities", 7, 7)

	if pd.Status != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, pd.Status)
	}
	if pd.Code != ErrCodeLimitExceeded {
		t.Errorf("expected code %d, got %d", ErrCodeLimitExceeded, pd.Code)
	}
	if !strings.HasSuffix(pd.Type, "limit-exceeded") {
		t.Errorf("expected limit-exceeded problem type, got %q", pd.Type)
	}
	if pd.Limit == nil || *pd.Limit != 7 {
		t.Errorf("expected limit 7, got %v", pd.Limit)
	}
	if pd.Current == nil || *pd.Current != 7 {
		t.Errorf("expected current 7, got %v", pd.Current)
	}
	if !strings.Contains(pd.Detail, "communities") {
		t.Errorf("detail should contain resource name, got %q", pd.Detail)
	}
}

func TestNewStorageUnavailableError_DefaultDetail(t *testing.T) {
	t.Parallel()

	pd := NewStorageUnavailableError("")

	if pd.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, pd.Status)
	}
	if pd.Detail == "" {
		t.Error("expected a default detail")
	}
}

func TestNewInternalError_EmptyDetail_UsesDefault(t *testing.T) {
	t.Parallel()

	pd := NewInternalError("")

	if pd.Detail != "An unexpected error occurred" {
		t.Errorf("expected default detail, got %q", pd.Detail)
	}
}

// ============================================================================
// Error Code Constants Tests
// ============================================================================

func TestErrorCodes_UniqueValues(t *testing.T) {
	t.Parallel()

	codes := []ErrorCode{
		ErrCodeNotFound, ErrCodeAlreadyExists, ErrCodeForbidden,
		ErrCodeValidation, ErrCodeInvalidInput, ErrCodeLimitExceeded,
		ErrCodeInternal, ErrCodeStorageUnavailable,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("duplicate error code %d", code)
		}
		seen[code] = true
	}
}

// ============================================================================
// JSON Serialization Tests
// ============================================================================

func TestProblemDetails_JSON_OmitsEmptyFields(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{
		Type:   "test",
		Title:  "Test",
		Status: 400,
	}

	data, err := json.Marshal(pd)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	jsonStr := string(data)
	for _, field := range []string{"detail", "instance", "errors", "limit", "current"} {
		if strings.Contains(jsonStr, `"`+field+`"`) {
			t.Errorf("empty %s should be omitted from JSON", field)
		}
	}
}
