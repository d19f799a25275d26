// internal/app/features/errors/errors.go
package errors

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrorLogger wraps the zap logger for error logging.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger creates a new ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

// Log logs an error with the given message and error.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	if e == nil {
		return
	}
	e.logger.Error(msg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)
}

// LogWithFields logs an error with additional fields.
func (e *ErrorLogger) LogWithFields(r *http.Request, msg string, err error, fields ...zap.Field) {
	if e == nil {
		return
	}
	allFields := append([]zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	}, fields...)
	e.logger.Error(msg, allFields...)
}

// ServerError is the message every unexpected failure is reported with.
const ServerError = "Server error"

// Handler answers requests the router cannot route, and recovers panics.
type Handler struct {
	logger *zap.Logger
	prod   bool
}

// NewHandler creates a new error Handler. In production, panic details are
// kept out of responses.
func NewHandler(logger *zap.Logger, prod bool) *Handler {
	return &Handler{logger: logger, prod: prod}
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	jsonutil.NotFound(w, "Route not found")
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonutil.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// Recoverer turns a panic in a handler into a 500 envelope. Outside
// production the panic value is included in the message.
func (h *Handler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.logger.Error("panic serving request",
				zap.Any("panic", rec),
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
				zap.Stack("stack"),
			)
			msg := "Something went wrong!"
			if !h.prod {
				msg = fmt.Sprintf("Something went wrong! %v", rec)
			}
			jsonutil.InternalError(w, msg)
		}()
		next.ServeHTTP(w, r)
	})
}

// ObjectIDParam parses the {name} URL parameter. A malformed id writes a
// 404 with notFound and returns false, so handlers can simply return.
func ObjectIDParam(w http.ResponseWriter, r *http.Request, name, notFound string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		jsonutil.NotFound(w, notFound)
		return primitive.NilObjectID, false
	}
	return id, true
}
