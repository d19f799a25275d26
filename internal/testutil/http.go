package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/dalemusser/stratacms/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUser returns an admin identity for handler tests.
func AdminUser() *auth.Admin {
	return &auth.Admin{
		ID:    primitive.NewObjectID(),
		Name:  "Test Admin",
		Email: "admin@test.com",
	}
}

// WithAdmin adds an admin to the request context for testing protected handlers.
// This bypasses the bearer-token middleware and injects the admin directly.
func WithAdmin(r *http.Request, a *auth.Admin) *http.Request {
	return auth.WithAdmin(r, a)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates a request whose body is v encoded as JSON.
func NewJSONRequest(method, target string, v any) *http.Request {
	var body io.Reader
	if s, ok := v.(string); ok {
		body = strings.NewReader(s)
	} else {
		b, _ := json.Marshal(v)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedRequest creates an HTTP request with an admin in context.
func NewAuthenticatedRequest(method, target string, a *auth.Admin) *http.Request {
	return WithAdmin(httptest.NewRequest(method, target, nil), a)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body %s)", r.Code, expected, r.Body.String())
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	body := r.Body.String()
	if !strings.Contains(body, expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// Envelope is the decoded JSON response shape.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int64          `json:"count"`
	Total   *int64          `json:"total"`
	Page    *int64          `json:"page"`
	Pages   *int64          `json:"pages"`
}

// Decode parses the body as an Envelope, failing the test on bad JSON.
func (r *ResponseRecorder) Decode(t interface {
	Helper()
	Fatalf(string, ...any)
}) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(r.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", r.Body.String(), err)
	}
	return env
}

// DecodeData unmarshals the envelope's data field into v.
func (r *ResponseRecorder) DecodeData(t interface {
	Helper()
	Fatalf(string, ...any)
}, v any) Envelope {
	t.Helper()
	env := r.Decode(t)
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %q: %v", string(env.Data), err)
	}
	return env
}
