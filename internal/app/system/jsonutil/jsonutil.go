// Package jsonutil writes the JSON envelope used by every API response:
//
//	{"success": bool, "message"?, "data"?, "count"?, "total"?, "page"?, "pages"?}
//
// Failures always carry success=false and a human-readable message.
// Handlers add endpoint-specific keys through Fields.
package jsonutil

import (
	"encoding/json"
	"net/http"
)

// MaxBodyBytes bounds JSON request bodies read by Decode.
const MaxBodyBytes = 1 << 20

// Fields are extra top-level keys merged into a success envelope.
type Fields map[string]any

// Pagination is the listing metadata written next to data.
type Pagination struct {
	Count int
	Total int64
	Page  int64
	Pages int64
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Respond writes a success envelope with the given status and keys.
func Respond(w http.ResponseWriter, status int, f Fields) {
	body := map[string]any{"success": true}
	for k, v := range f {
		body[k] = v
	}
	JSON(w, status, body)
}

// OK writes {"success":true,"data":data}.
func OK(w http.ResponseWriter, data any) {
	Respond(w, http.StatusOK, Fields{"data": data})
}

// Created writes a 201 envelope with data and an optional message.
func Created(w http.ResponseWriter, data any, message string) {
	f := Fields{"data": data}
	if message != "" {
		f["message"] = message
	}
	Respond(w, http.StatusCreated, f)
}

// Message writes a 200 envelope holding only a message.
func Message(w http.ResponseWriter, message string) {
	Respond(w, http.StatusOK, Fields{"message": message})
}

// DataMessage writes a 200 envelope with data and a message.
func DataMessage(w http.ResponseWriter, data any, message string) {
	Respond(w, http.StatusOK, Fields{"data": data, "message": message})
}

// Paged writes a listing envelope. extra may be nil.
func Paged(w http.ResponseWriter, data any, p Pagination, extra Fields) {
	f := Fields{
		"data":  data,
		"count": p.Count,
		"total": p.Total,
		"page":  p.Page,
		"pages": p.Pages,
	}
	for k, v := range extra {
		f[k] = v
	}
	Respond(w, http.StatusOK, f)
}

// Error writes {"success":false,"message":message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{"success": false, "message": message})
}

// BadRequest writes a 400 Bad Request error response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 Unauthorized error response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 Forbidden error response.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

// NotFound writes a 404 Not Found error response.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Conflict writes a 409 Conflict error response.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, message)
}

// TooManyRequests writes a 429 error response.
func TooManyRequests(w http.ResponseWriter, message string) {
	Error(w, http.StatusTooManyRequests, message)
}

// InternalError writes a 500 Internal Server Error response.
// Do not expose internal details to clients; log the actual error separately.
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

// ValidationError writes a 400 response carrying the first message and
// every field-level error.
func ValidationError(w http.ResponseWriter, message string, errs []FieldError) {
	JSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"message": message,
		"errors":  errs,
	})
}

// Decode reads and decodes JSON from the request body into v.
// Bodies larger than MaxBodyBytes fail.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes)).Decode(v)
}
