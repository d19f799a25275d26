// internal/app/features/login/login.go
package login

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	errorsfeature "github.com/dalemusser/stratacms/internal/app/features/errors"
	adminstore "github.com/dalemusser/stratacms/internal/app/store/admins"
	loginstore "github.com/dalemusser/stratacms/internal/app/store/logins"
	"github.com/dalemusser/stratacms/internal/app/store/ratelimit"
	"github.com/dalemusser/stratacms/internal/app/system/auditlog"
	"github.com/dalemusser/stratacms/internal/app/system/auth"
	"github.com/dalemusser/stratacms/internal/app/system/authutil"
	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Response messages
const (
	msgMissingCredentials = "Please provide email and password"
	msgInvalidCredentials = "Invalid credentials"
	msgLockedOut          = "Too many login attempts, please try again after %d minutes."
	msgWrongCurrent       = "Current password is incorrect"
	msgPasswordUpdated    = "Password updated successfully"
)

// historyLimit is how many logins GET /logins returns.
const historyLimit = 10

// Handler provides the admin authentication endpoints.
type Handler struct {
	admins         *adminstore.Store
	logins         *loginstore.Store
	rateLimitStore *ratelimit.Store // nil if lockout disabled
	tokens         *auth.TokenManager
	lockout        time.Duration
	errLog         *errorsfeature.ErrorLogger
	auditLogger    *auditlog.Logger
	logger         *zap.Logger
}

// NewHandler creates a new login Handler.
// rateLimitStore can be nil to disable the per-email lockout; lockout is
// only used to phrase the 429 message.
func NewHandler(
	db *mongo.Database,
	tokens *auth.TokenManager,
	rateLimitStore *ratelimit.Store,
	lockout time.Duration,
	errLog *errorsfeature.ErrorLogger,
	auditLogger *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	if lockout <= 0 {
		lockout = 15 * time.Minute
	}
	return &Handler{
		admins:         adminstore.New(db),
		logins:         loginstore.New(db),
		rateLimitStore: rateLimitStore,
		tokens:         tokens,
		lockout:        lockout,
		errLog:         errLog,
		auditLogger:    auditLogger,
		logger:         logger,
	}
}

// Routes returns the router mounted at /api/auth. requireAdmin guards the
// token-bearing endpoints; loginLimit, when set, wraps only POST /login.
func Routes(h *Handler, requireAdmin, loginLimit func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	if loginLimit != nil {
		r.With(loginLimit).Post("/login", h.handleLogin)
	} else {
		r.Post("/login", h.handleLogin)
	}

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/verify", h.verify)
		r.Put("/change-password", h.changePassword)
		r.Get("/logins", h.history)
	})

	return r
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) lockedOut(w http.ResponseWriter, r *http.Request, email string) {
	h.auditLogger.LoginLockedOut(r, email)
	jsonutil.TooManyRequests(w, fmt.Sprintf(msgLockedOut, int(h.lockout.Minutes())))
}

// recordFailure counts a failed attempt and reports whether it locked the
// email out. Store errors are logged and treated as not locked.
func (h *Handler) recordFailure(r *http.Request, email string) bool {
	if h.rateLimitStore == nil {
		return false
	}
	lockedUntil, err := h.rateLimitStore.RecordFailure(r.Context(), email)
	if err != nil {
		h.logger.Warn("failed to record login failure", zap.Error(err))
		return false
	}
	return lockedUntil != nil
}

// handleLogin serves POST /api/auth/login.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, msgMissingCredentials)
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		jsonutil.BadRequest(w, msgMissingCredentials)
		return
	}

	// Check lockout before touching the password. Store errors fail open.
	if h.rateLimitStore != nil {
		status, err := h.rateLimitStore.Check(r.Context(), email)
		if err != nil {
			h.logger.Warn("login lockout check failed", zap.Error(err))
		}
		if !status.Allowed {
			h.lockedOut(w, r, email)
			return
		}
	}

	admin, err := h.admins.GetByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, adminstore.ErrNotFound) {
			h.errLog.Log(r, "database error during admin login lookup", err)
			jsonutil.InternalError(w, errorsfeature.ServerError)
			return
		}
		// Unknown emails count toward the lockout too.
		locked := h.recordFailure(r, email)
		h.auditLogger.LoginFailedUnknownEmail(r, email)
		if locked {
			h.lockedOut(w, r, email)
			return
		}
		jsonutil.Unauthorized(w, msgInvalidCredentials)
		return
	}

	if !authutil.CheckPassword(req.Password, admin.PasswordHash) {
		locked := h.recordFailure(r, email)
		h.auditLogger.LoginFailedWrongPassword(r, admin.ID, admin.Email)
		if locked {
			h.lockedOut(w, r, email)
			return
		}
		jsonutil.Unauthorized(w, msgInvalidCredentials)
		return
	}

	if h.rateLimitStore != nil {
		if err := h.rateLimitStore.Clear(r.Context(), email); err != nil {
			h.logger.Warn("failed to clear login failures", zap.Error(err))
		}
	}

	token, _, err := h.tokens.Issue(admin.ID)
	if err != nil {
		h.errLog.Log(r, "failed to sign admin token", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}

	now := time.Now()
	if err := h.admins.TouchLastLogin(r.Context(), admin.ID, now); err != nil {
		h.errLog.Log(r, "failed to update last login", err)
	}
	if err := h.logins.CreateFrom(r.Context(), r, admin.ID); err != nil {
		h.errLog.Log(r, "failed to record login", err)
	}
	h.auditLogger.LoginSuccess(r, admin.ID, admin.Email)

	jsonutil.Respond(w, http.StatusOK, jsonutil.Fields{
		"token": token,
		"admin": admin.Summary(),
	})
}

// verify serves GET /api/auth/verify.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	a, _ := auth.CurrentAdmin(r)
	jsonutil.Respond(w, http.StatusOK, jsonutil.Fields{
		"admin": models.AdminSummary{ID: a.ID.Hex(), Email: a.Email, Name: a.Name},
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// changePassword serves PUT /api/auth/change-password. The new password
// is checked before the current one.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	current, _ := auth.CurrentAdmin(r)

	var req changePasswordRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, authutil.ErrPasswordRequired.Error())
		return
	}
	if err := authutil.ValidatePassword(req.NewPassword); err != nil {
		h.auditLogger.PasswordChangeFailed(r, current.ID, "weak password")
		jsonutil.BadRequest(w, err.Error())
		return
	}

	admin, err := h.admins.GetByID(r.Context(), current.ID)
	if err != nil {
		h.errLog.Log(r, "failed to load admin for password change", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	if !authutil.CheckPassword(req.CurrentPassword, admin.PasswordHash) {
		h.auditLogger.PasswordChangeFailed(r, admin.ID, "wrong current password")
		jsonutil.BadRequest(w, msgWrongCurrent)
		return
	}

	hash, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		h.errLog.Log(r, "failed to hash password", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	if err := h.admins.SetPassword(r.Context(), admin.ID, hash); err != nil {
		h.errLog.Log(r, "failed to update password", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}

	h.auditLogger.PasswordChanged(r, admin.ID)
	jsonutil.Message(w, msgPasswordUpdated)
}

// history serves GET /api/auth/logins, the signed-in admin's recent logins.
func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	a, _ := auth.CurrentAdmin(r)
	records, err := h.logins.GetByAdmin(r.Context(), a.ID, historyLimit)
	if err != nil {
		h.errLog.Log(r, "failed to load login history", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	jsonutil.OK(w, records)
}
