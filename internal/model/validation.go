package model

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationErrors maps a form field to the message shown next to it.
// A nil or empty map means the form is valid.
type ValidationErrors map[string]string

// Add records msg for field, keeping the first message per field
func (v ValidationErrors) Add(field, msg string) {
	if _, exists := v[field]; !exists {
		v[field] = msg
	}
}

// OrNil returns nil when no field failed
func (v ValidationErrors) OrNil() ValidationErrors {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Error implements the error interface
func (v ValidationErrors) Error() string {
	fields := v.Fields()
	if len(fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the failing field names in lexical order
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// FieldErrors converts to the ProblemDetails representation
func (v ValidationErrors) FieldErrors() []FieldError {
	out := make([]FieldError, 0, len(v))
	for _, f := range v.Fields() {
		out = append(out, FieldError{Field: f, Message: v[f]})
	}
	return out
}
