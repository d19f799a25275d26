// Package auth guards the admin API with bearer tokens.
//
// Handlers behind RequireAdmin can read the signed-in admin with
// CurrentAdmin. The middleware answers 401 before any handler runs when the
// token is missing, malformed, expired, or names an admin that no longer
// exists.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Admin is the identity attached to an authenticated request.
type Admin struct {
	ID    primitive.ObjectID
	Email string
	Name  string
}

// AdminFetcher loads the current state of an admin on each request.
// It returns nil when the admin does not exist or cannot be loaded.
type AdminFetcher interface {
	FetchAdmin(ctx context.Context, id primitive.ObjectID) *Admin
}

type ctxKey string

const currentAdminKey ctxKey = "currentAdmin"

// CurrentAdmin returns the admin attached by RequireAdmin.
func CurrentAdmin(r *http.Request) (*Admin, bool) {
	a, ok := r.Context().Value(currentAdminKey).(*Admin)
	return a, ok && a != nil
}

// WithAdmin returns a copy of r carrying a. Tests use it to skip the
// token round trip.
func WithAdmin(r *http.Request, a *Admin) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentAdminKey, a))
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Middleware verifies admin bearer tokens.
type Middleware struct {
	tokens  *TokenManager
	fetcher AdminFetcher
	logger  *zap.Logger
}

// NewMiddleware creates the admin guard.
func NewMiddleware(tokens *TokenManager, fetcher AdminFetcher, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, fetcher: fetcher, logger: logger}
}

// RequireAdmin rejects requests without a valid admin token.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := BearerToken(r)
		if raw == "" {
			jsonutil.Unauthorized(w, "Not authorized, no token")
			return
		}

		id, err := m.tokens.Parse(raw)
		if err != nil {
			m.logger.Debug("admin token rejected",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			jsonutil.Unauthorized(w, err.Error())
			return
		}

		admin := m.fetcher.FetchAdmin(r.Context(), id)
		if admin == nil {
			m.logger.Warn("admin token for unknown admin",
				zap.String("admin_id", id.Hex()),
				zap.String("path", r.URL.Path))
			jsonutil.Unauthorized(w, "Not authorized, admin not found")
			return
		}

		next.ServeHTTP(w, WithAdmin(r, admin))
	})
}
