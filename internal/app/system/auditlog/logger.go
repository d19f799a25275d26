// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/stratacms/internal/app/store/audit"
	"github.com/dalemusser/stratacms/internal/app/system/auth"
	"github.com/dalemusser/stratacms/internal/app/system/network"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destinations for a category of events.
const (
	ModeAll = "all" // MongoDB and zap
	ModeDB  = "db"
	ModeLog = "log"
	ModeOff = "off"
)

// ValidMode reports whether m is a known destination setting.
func ValidMode(m string) bool {
	switch m {
	case ModeAll, ModeDB, ModeLog, ModeOff:
		return true
	}
	return false
}

// Config picks a destination per event category.
type Config struct {
	Auth  string // login, lockout, password events
	Admin string // content mutations and seeding
}

// Logger writes audit events to MongoDB and/or zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.Entity != "" {
		fields = append(fields, zap.String("entity", event.Entity), zap.String("entity_id", event.EntityID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records event according to the category's configured mode.
// A nil Logger is a no-op so tests can leave it unset.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	mode := ModeAll
	switch event.Category {
	case audit.CategoryAuth:
		mode = l.config.Auth
	case audit.CategoryAdmin:
		mode = l.config.Admin
	}
	if mode == ModeOff {
		return
	}

	if mode == ModeAll || mode == ModeLog {
		l.logToZap(event)
	}
	if (mode == ModeAll || mode == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func fromRequest(r *http.Request, category, eventType string) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        network.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful admin login.
func (l *Logger) LoginSuccess(r *http.Request, adminID primitive.ObjectID, email string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginSuccess)
	e.ActorID = &adminID
	e.Success = true
	e.Details = map[string]string{"email": email}
	l.Log(r.Context(), e)
}

// LoginFailedUnknownEmail logs a login for an email with no admin.
func (l *Logger) LoginFailedUnknownEmail(r *http.Request, email string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginFailedUnknownEmail)
	e.FailureReason = "unknown email"
	e.Details = map[string]string{"attempted_email": email}
	l.Log(r.Context(), e)
}

// LoginFailedWrongPassword logs a login with a bad password.
func (l *Logger) LoginFailedWrongPassword(r *http.Request, adminID primitive.ObjectID, email string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginFailedWrongPassword)
	e.ActorID = &adminID
	e.FailureReason = "wrong password"
	e.Details = map[string]string{"email": email}
	l.Log(r.Context(), e)
}

// LoginLockedOut logs a login refused because the email is locked.
func (l *Logger) LoginLockedOut(r *http.Request, email string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginLockedOut)
	e.FailureReason = "locked out"
	e.Details = map[string]string{"email": email}
	l.Log(r.Context(), e)
}

// PasswordChanged logs a successful password change.
func (l *Logger) PasswordChanged(r *http.Request, adminID primitive.ObjectID) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventPasswordChanged)
	e.ActorID = &adminID
	e.Success = true
	l.Log(r.Context(), e)
}

// PasswordChangeFailed logs a rejected password change.
func (l *Logger) PasswordChangeFailed(r *http.Request, adminID primitive.ObjectID, reason string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventPasswordChangeFailed)
	e.ActorID = &adminID
	e.FailureReason = reason
	l.Log(r.Context(), e)
}

// AdminBootstrapped logs the startup creation or reset of the default
// admin. There is no request, so no IP is recorded.
func (l *Logger) AdminBootstrapped(ctx context.Context, adminID primitive.ObjectID, email string, created bool) {
	action := "password_reset"
	if created {
		action = "created"
	}
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventAdminBootstrapped,
		ActorID:   &adminID,
		Success:   true,
		Details:   map[string]string{"email": email, "action": action},
	})
}

// --- Admin Events ---

func (l *Logger) content(r *http.Request, eventType, entity, entityID, title string) {
	e := fromRequest(r, audit.CategoryAdmin, eventType)
	if a, ok := auth.CurrentAdmin(r); ok {
		id := a.ID
		e.ActorID = &id
	}
	e.Entity = entity
	e.EntityID = entityID
	e.Success = true
	if title != "" {
		e.Details = map[string]string{"title": title}
	}
	l.Log(r.Context(), e)
}

// Created logs that the signed-in admin created entity id.
func (l *Logger) Created(r *http.Request, entity, id, title string) {
	l.content(r, audit.EventContentCreated, entity, id, title)
}

// Updated logs that the signed-in admin updated entity id.
func (l *Logger) Updated(r *http.Request, entity, id, title string) {
	l.content(r, audit.EventContentUpdated, entity, id, title)
}

// Deleted logs that the signed-in admin deleted entity id.
func (l *Logger) Deleted(r *http.Request, entity, id string) {
	l.content(r, audit.EventContentDeleted, entity, id, "")
}

// Seeded logs a seed run and how many documents it wrote.
func (l *Logger) Seeded(r *http.Request, entity string, count int64) {
	e := fromRequest(r, audit.CategoryAdmin, audit.EventContentSeeded)
	if a, ok := auth.CurrentAdmin(r); ok {
		id := a.ID
		e.ActorID = &id
	}
	e.Entity = entity
	e.Success = true
	e.Details = map[string]string{"count": strconv.FormatInt(count, 10)}
	l.Log(r.Context(), e)
}
