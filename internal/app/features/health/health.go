// internal/app/features/health/health.go
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/stratacms/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Info describes the running process for the status endpoints.
type Info struct {
	AppName     string
	Env         string
	MailEnabled bool // SMTP configured; contact emails are skipped otherwise
}

// Handler serves the liveness, readiness and status probes.
type Handler struct {
	mongoClient *mongo.Client
	info        Info
	started     time.Time
	logger      *zap.Logger
}

func NewHandler(mongoClient *mongo.Client, info Info, logger *zap.Logger) *Handler {
	if info.Env == "" {
		info.Env = "development"
	}
	return &Handler{
		mongoClient: mongoClient,
		info:        info,
		started:     time.Now(),
		logger:      logger,
	}
}

// Report is the body of GET /health.
type Report struct {
	Status         string            `json:"status"` // ok or degraded
	Uptime         string            `json:"uptime"`
	MongoLatencyMS int64             `json:"mongoLatencyMs,omitempty"`
	Services       map[string]string `json:"services"`
}

// APIStatus is the body of GET /api/health.
type APIStatus struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

// Routes serves /health, /health/ready and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds the probe paths load balancers and Kubernetes
// expect at the root: /ready, /readyz and /livez.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// API answers GET /api/health without touching the database.
func (h *Handler) API(w http.ResponseWriter, r *http.Request) {
	jsonutil.JSON(w, http.StatusOK, APIStatus{
		Status:      "OK",
		Message:     h.info.AppName + " API Server",
		Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
		Environment: h.info.Env,
	})
}

func (h *Handler) ping(ctx context.Context) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	start := time.Now()
	err := h.mongoClient.Ping(ctx, readpref.Primary())
	return time.Since(start), err
}

// Check reports MongoDB reachability and whether email is configured.
// Only MongoDB decides the status code; the site works without SMTP.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	rep := Report{
		Status:   "ok",
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Services: map[string]string{"mail": "disabled"},
	}
	if h.info.MailEnabled {
		rep.Services["mail"] = "configured"
	}

	latency, err := h.ping(r.Context())
	if err != nil {
		h.logger.Warn("health check: mongodb ping failed", zap.Error(err))
		rep.Status = "degraded"
		rep.Services["mongodb"] = "unavailable"
		jsonutil.JSON(w, http.StatusServiceUnavailable, rep)
		return
	}
	rep.Services["mongodb"] = "ok"
	rep.MongoLatencyMS = latency.Milliseconds()
	jsonutil.JSON(w, http.StatusOK, rep)
}

// Ready fails while MongoDB is unreachable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ping(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		jsonutil.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	jsonutil.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Live always succeeds while the process can serve HTTP.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
