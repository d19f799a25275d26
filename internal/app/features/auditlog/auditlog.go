// internal/app/features/auditlog/auditlog.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"time"

	errorsfeature "github.com/dalemusser/stratacms/internal/app/features/errors"
	adminstore "github.com/dalemusser/stratacms/internal/app/store/admins"
	"github.com/dalemusser/stratacms/internal/app/store/audit"
	"github.com/dalemusser/stratacms/internal/app/store/storeutil"
	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/stratacms/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	pageSize            = 50
	defaultFailedWindow = 24 * time.Hour
	failedLoginsLimit   = 50
)

// Handler serves the admin audit trail.
type Handler struct {
	auditStore *audit.Store
	admins     *adminstore.Store
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		auditStore: audit.New(db),
		admins:     adminstore.New(db),
		errLog:     errLog,
		logger:     logger,
	}
}

// eventView is one audit event as returned to the dashboard.
type eventView struct {
	ID            string            `json:"_id"`
	CreatedAt     time.Time         `json:"createdAt"`
	Category      string            `json:"category"`
	EventType     string            `json:"eventType"`
	ActorID       string            `json:"actorId,omitempty"`
	ActorName     string            `json:"actorName,omitempty"` // blank once the admin is gone
	Entity        string            `json:"entity,omitempty"`
	EntityID      string            `json:"entityId,omitempty"`
	IP            string            `json:"ip"`
	UserAgent     string            `json:"userAgent,omitempty"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failureReason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

// AdminRoutes is mounted at /api/admin/audit behind the admin guard.
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/failed-logins", h.failedLogins)
	return r
}

// list serves GET /api/admin/audit, newest first.
// Filters: category (auth|admin), eventType, entity, since (YYYY-MM-DD).
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	category := query.Get(r, "category")
	if category != "" && category != audit.CategoryAuth && category != audit.CategoryAdmin {
		jsonutil.BadRequest(w, "Category must be auth or admin")
		return
	}
	page := storeutil.PageFromRequest(r, pageSize)

	filter := audit.QueryFilter{
		Category:  category,
		EventType: query.Get(r, "eventType"),
		Entity:    query.Get(r, "entity"),
		Limit:     page.Limit,
		Offset:    (page.Page - 1) * page.Limit,
	}
	if s := query.Get(r, "since"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			jsonutil.BadRequest(w, "since must be a date (YYYY-MM-DD)")
			return
		}
		filter.Since = &t
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.auditStore.Query(ctx, filter)
	if err != nil {
		h.errLog.Log(r, "failed to query audit events", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	total, err := h.auditStore.Count(ctx, filter)
	if err != nil {
		h.errLog.Log(r, "failed to count audit events", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}

	items := h.views(ctx, events)
	jsonutil.Paged(w, items, jsonutil.Pagination{
		Count: len(items),
		Total: total,
		Page:  page.Page,
		Pages: page.TotalPages(total),
	}, nil)
}

// failedLogins serves GET /api/admin/audit/failed-logins?hours=N.
func (h *Handler) failedLogins(w http.ResponseWriter, r *http.Request) {
	window := defaultFailedWindow
	if s := query.Get(r, "hours"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			jsonutil.BadRequest(w, "hours must be a positive number")
			return
		}
		window = time.Duration(n) * time.Hour
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.auditStore.FailedLogins(ctx, time.Now().Add(-window), failedLoginsLimit)
	if err != nil {
		h.errLog.Log(r, "failed to query failed logins", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	jsonutil.OK(w, h.views(ctx, events))
}

// views converts events and resolves actor names in one lookup.
func (h *Handler) views(ctx context.Context, events []audit.Event) []eventView {
	seen := make(map[primitive.ObjectID]struct{})
	ids := make([]primitive.ObjectID, 0, len(events))
	for _, e := range events {
		if e.ActorID == nil {
			continue
		}
		if _, ok := seen[*e.ActorID]; !ok {
			seen[*e.ActorID] = struct{}{}
			ids = append(ids, *e.ActorID)
		}
	}
	names, err := h.admins.Names(ctx, ids)
	if err != nil {
		h.logger.Warn("failed to resolve admin names for audit log", zap.Error(err))
	}

	out := make([]eventView, 0, len(events))
	for _, e := range events {
		v := eventView{
			ID:            e.ID.Hex(),
			CreatedAt:     e.CreatedAt,
			Category:      e.Category,
			EventType:     e.EventType,
			Entity:        e.Entity,
			EntityID:      e.EntityID,
			IP:            e.IP,
			UserAgent:     e.UserAgent,
			Success:       e.Success,
			FailureReason: e.FailureReason,
			Details:       e.Details,
		}
		if e.ActorID != nil {
			v.ActorID = e.ActorID.Hex()
			v.ActorName = names[*e.ActorID]
		}
		out = append(out, v)
	}
	return out
}
