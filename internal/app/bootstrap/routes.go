// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	aboutusfeature "github.com/dalemusser/stratacms/internal/app/features/aboutus"
	auditlogfeature "github.com/dalemusser/stratacms/internal/app/features/auditlog"
	blogsfeature "github.com/dalemusser/stratacms/internal/app/features/blogs"
	categoriesfeature "github.com/dalemusser/stratacms/internal/app/features/categories"
	contactsfeature "github.com/dalemusser/stratacms/internal/app/features/contacts"
	errorsfeature "github.com/dalemusser/stratacms/internal/app/features/errors"
	faqsfeature "github.com/dalemusser/stratacms/internal/app/features/faqs"
	healthfeature "github.com/dalemusser/stratacms/internal/app/features/health"
	loginfeature "github.com/dalemusser/stratacms/internal/app/features/login"
	servicesfeature "github.com/dalemusser/stratacms/internal/app/features/services"
	statsfeature "github.com/dalemusser/stratacms/internal/app/features/stats"
	adminstore "github.com/dalemusser/stratacms/internal/app/store/admins"
	"github.com/dalemusser/stratacms/internal/app/store/audit"
	"github.com/dalemusser/stratacms/internal/app/store/ratelimit"
	"github.com/dalemusser/stratacms/internal/app/system/apicors"
	"github.com/dalemusser/stratacms/internal/app/system/auditlog"
	"github.com/dalemusser/stratacms/internal/app/system/auth"
	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

const (
	msgTooManyRequests = "Too many requests, please try again later."
	msgTooManyLogins   = "Too many login attempts, please try again later."
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// Layout:
//
//	/health, /ready, /readyz, /livez   probes (no CORS, no rate limit)
//	/api/...                            JSON API (CORS + per-IP limit)
//	/api/auth/...                       login, verify, password, history
//	/api/admin/...                      bearer-token protected CMS
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase
	maxUpload := int64(appCfg.MaxUploadMB) << 20

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler(logger, coreCfg.Env == "prod")

	auditLogger := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	guard := auth.NewMiddleware(deps.Tokens, adminstore.NewFetcher(db, logger), logger)

	// Per-email lockout. A nil store turns it off.
	var lockoutStore *ratelimit.Store
	if appCfg.RateLimitEnabled {
		lockoutStore = ratelimit.New(db, appCfg.RateLimitLoginAttempts, appCfg.RateLimitLoginWindow, appCfg.RateLimitLoginLockout)
	}

	// Feature handlers
	healthH := healthfeature.NewHandler(deps.MongoClient, healthfeature.Info{
		AppName:     appCfg.MailFromName,
		Env:         coreCfg.Env,
		MailEnabled: deps.Mailer.Enabled(),
	}, logger)
	loginH := loginfeature.NewHandler(db, deps.Tokens, lockoutStore, appCfg.RateLimitLoginLockout, errLog, auditLogger, logger)
	servicesH := servicesfeature.NewHandler(db, auditLogger, errLog, maxUpload, logger)
	blogsH := blogsfeature.NewHandler(db, auditLogger, errLog, maxUpload, logger)
	faqsH := faqsfeature.NewHandler(db, auditLogger, errLog, logger)
	categoriesH := categoriesfeature.NewHandler(db, auditLogger, errLog, logger)
	aboutusH := aboutusfeature.NewHandler(db, auditLogger, errLog, maxUpload, logger)
	statsH := statsfeature.NewHandler(db, errLog, logger)
	auditH := auditlogfeature.NewHandler(db, errLog, logger)
	contactsH := contactsfeature.NewHandler(db, deps.Mailer, contactsfeature.Firm{
		Name:       appCfg.MailFromName,
		Phone:      appCfg.ContactPhone,
		Address:    appCfg.ContactAddress,
		AdminEmail: appCfg.AdminNotificationEmail,
	}, auditLogger, errLog, logger)

	r := chi.NewRouter()

	// JSON 404/405 everywhere, including mounted sub-routers.
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(errorsHandler.Recoverer)
	r.Use(chimw.Timeout(appCfg.RequestTimeout))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Probes sit outside /api so load balancers are never rate limited.
	r.Mount("/health", healthfeature.Routes(healthH))
	healthfeature.MountRootEndpoints(r, healthH)

	loginLimit := httprate.Limit(appCfg.LoginRateLimit, appCfg.LoginRateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			jsonutil.TooManyRequests(w, msgTooManyLogins)
		}),
	)

	r.Route("/api", func(api chi.Router) {
		api.Use(apicors.Middleware(apicors.ParseOrigins(appCfg.CORSAllowedOrigins)))
		api.Use(httprate.Limit(appCfg.APIRateLimit, appCfg.APIRateWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				jsonutil.TooManyRequests(w, msgTooManyRequests)
			}),
		))

		api.Get("/health", healthH.API)

		// Public site
		api.Mount("/services", servicesfeature.Routes(servicesH))
		api.Mount("/blogs", blogsfeature.Routes(blogsH))
		api.Mount("/faq", faqsfeature.Routes(faqsH))
		api.Mount("/aboutus", aboutusfeature.Routes(aboutusH))
		api.Mount("/contact", contactsfeature.Routes(contactsH))

		api.Mount("/auth", loginfeature.Routes(loginH, guard.RequireAdmin, loginLimit))

		// CMS, bearer token required
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(guard.RequireAdmin)

			admin.Mount("/services", servicesfeature.AdminRoutes(servicesH))
			admin.Mount("/blogs", blogsfeature.AdminRoutes(blogsH))
			admin.Mount("/faqs", faqsfeature.AdminRoutes(faqsH))
			admin.Mount("/categories", categoriesfeature.AdminRoutes(categoriesH))
			admin.Mount("/contacts", contactsfeature.AdminRoutes(contactsH))
			admin.Mount("/aboutus", aboutusfeature.AdminRoutes(aboutusH))
			admin.Mount("/stats", statsfeature.AdminRoutes(statsH))
			admin.Mount("/audit", auditlogfeature.AdminRoutes(auditH))

			admin.Post("/seed-services", servicesH.Seed)
			admin.Post("/seed-faqs", faqsH.Seed)
		})
	})

	logger.Info("routes mounted",
		zap.Int("api_rate_limit", appCfg.APIRateLimit),
		zap.Duration("api_rate_window", appCfg.APIRateWindow),
		zap.Bool("login_lockout", lockoutStore != nil),
	)
	return r, nil
}
