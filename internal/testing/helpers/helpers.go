// Package helpers provides HTTP test utilities for handler tests.
//
// # Requests
//
//	req := helpers.NewRequest(t, http.MethodPost, "/api/communities").
//	    WithBody(map[string]any{"name": "Go Programmers!"}).
//	    Build()
//
// # Assertions
//
//	helpers.AssertStatus(t, rr, http.StatusCreated)
//	helpers.AssertValidationError(t, rr, "name")
//	helpers.AssertProblemDetails(t, rr, http.StatusConflict, model.ErrCodeLimitExceeded)
package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndoniego/erudite/internal/model"
)

// ============================================================================
// HTTP Request Helpers
// ============================================================================

// RequestBuilder assembles an httptest request
type RequestBuilder struct {
	t      *testing.T
	method string
	path   string
	body   io.Reader
	header http.Header
}

// NewRequest starts a request for method and path
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:      t,
		method: method,
		path:   path,
		header: http.Header{},
	}
}

// WithBody JSON-encodes body and sets the JSON content type
func (rb *RequestBuilder) WithBody(body any) *RequestBuilder {
	rb.t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(rb.t, err, "helpers: marshal body")
	return rb.WithRawBody(raw, "application/json")
}

// WithRawBody sends raw as is with contentType
func (rb *RequestBuilder) WithRawBody(raw []byte, contentType string) *RequestBuilder {
	rb.body = bytes.NewReader(raw)
	rb.header.Set("Content-Type", contentType)
	return rb
}

// WithHeader sets a request header
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.header.Set(key, value)
	return rb
}

// Build returns the finished request
func (rb *RequestBuilder) Build() *http.Request {
	req := httptest.NewRequest(rb.method, rb.path, rb.body)
	for k, v := range rb.header {
		req.Header[k] = v
	}
	return req
}

// Do serves the request with h and returns the recorder
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, rb.Build())
	return rr
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks the status code, printing the body on mismatch
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.Code, "body: %s", resp.Body.String())
}

// AssertProblemDetails decodes an application/problem+json body and checks
// its status and, when non-zero, its code
func AssertProblemDetails(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedCode model.ErrorCode) model.ProblemDetails {
	t.Helper()
	AssertStatus(t, resp, expectedStatus)
	assert.Equal(t, "application/problem+json", resp.Header().Get("Content-Type"))

	var problem model.ProblemDetails
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &problem), "body: %s", resp.Body.String())
	assert.Equal(t, expectedStatus, problem.Status)
	if expectedCode != 0 {
		assert.Equal(t, expectedCode, problem.Code)
	}
	return problem
}

// AssertValidationError expects a 422 naming field among its errors
func AssertValidationError(t *testing.T, resp *httptest.ResponseRecorder, field string) {
	t.Helper()
	problem := AssertProblemDetails(t, resp, http.StatusUnprocessableEntity, model.ErrCodeValidation)

	fields := make([]string, 0, len(problem.Errors))
	for _, fe := range problem.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, field)
}

// DecodeData unmarshals the data member of a DataResponse body into v
func DecodeData(t *testing.T, resp *httptest.ResponseRecorder, v any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope), "body: %s", resp.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, v), "body: %s", resp.Body.String())
}
