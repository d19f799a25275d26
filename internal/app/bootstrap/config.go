// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/stratacms/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATACMS"

// devJWTSecret is the default signing key. It is refused in production.
const devJWTSecret = "dev-only-jwt-secret-change-me-0123456789"

// Development fallback for the default admin account.
const (
	devAdminEmail    = "admin@asgupta.com"
	devAdminPassword = "Admin@123"
)

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: STRATACMS_MONGO_URI, STRATACMS_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "stratacms", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "jwt_secret", Default: devJWTSecret, Desc: "Admin token signing key (32+ chars in production)"},
	{Name: "jwt_ttl", Default: "168h", Desc: "Admin token lifetime"},

	{Name: "admin_email", Default: "", Desc: "Email of the admin account ensured at startup"},
	{Name: "admin_password", Default: "", Desc: "Password for a newly created admin account"},
	{Name: "admin_name", Default: "Admin", Desc: "Name of the admin account"},

	// Per-IP limits
	{Name: "api_rate_limit", Default: 100, Desc: "Requests per window per IP on /api"},
	{Name: "api_rate_window", Default: "15m", Desc: "Window for api_rate_limit"},
	{Name: "login_rate_limit", Default: 5, Desc: "Requests per window per IP on /api/auth/login"},
	{Name: "login_rate_window", Default: "15m", Desc: "Window for login_rate_limit"},

	// Login lockout
	{Name: "rate_limit_enabled", Default: true, Desc: "Enable per-email lockout after failed logins"},
	{Name: "rate_limit_login_attempts", Default: 5, Desc: "Max failed login attempts before lockout"},
	{Name: "rate_limit_login_window", Default: "15m", Desc: "Time window for counting failed attempts"},
	{Name: "rate_limit_login_lockout", Default: "15m", Desc: "Lockout duration after exceeding limit"},

	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated allowed origins ('*' for any)"},
	{Name: "max_upload_mb", Default: 10, Desc: "Maximum size of one uploaded image in MB"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@example.com", Desc: "From email address"},
	{Name: "mail_from_name", Default: "A S GUPTA AND CO", Desc: "From display name and firm name"},

	{Name: "admin_notification_email", Default: "", Desc: "Recipient of contact form notifications (blank disables)"},
	{Name: "contact_phone", Default: "+91 98765 43210", Desc: "Firm phone quoted in confirmation emails"},
	{Name: "contact_address", Default: "New Delhi, India", Desc: "Firm address quoted in confirmation emails"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "seed_default_content", Default: true, Desc: "Seed categories, FAQs and About Us at startup"},
	{Name: "seed_services_on_empty", Default: false, Desc: "Seed the default services when none exist"},

	// Timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-document operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for listings and dashboard counts"},
	{Name: "timeout_long", Default: "30s", Desc: "Timeout for seeding and category renames"},
	{Name: "request_timeout", Default: "60s", Desc: "Deadline for a whole request"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STRATACMS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTTTL:    appValues.Duration("jwt_ttl", 7*24*time.Hour),

		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),
		AdminName:     appValues.String("admin_name"),

		APIRateLimit:    appValues.Int("api_rate_limit"),
		APIRateWindow:   appValues.Duration("api_rate_window", 15*time.Minute),
		LoginRateLimit:  appValues.Int("login_rate_limit"),
		LoginRateWindow: appValues.Duration("login_rate_window", 15*time.Minute),

		RateLimitEnabled:       appValues.Bool("rate_limit_enabled"),
		RateLimitLoginAttempts: appValues.Int("rate_limit_login_attempts"),
		RateLimitLoginWindow:   appValues.Duration("rate_limit_login_window", 15*time.Minute),
		RateLimitLoginLockout:  appValues.Duration("rate_limit_login_lockout", 15*time.Minute),

		CORSAllowedOrigins: appValues.String("cors_allowed_origins"),
		MaxUploadMB:        appValues.Int("max_upload_mb"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		AdminNotificationEmail: appValues.String("admin_notification_email"),
		ContactPhone:           appValues.String("contact_phone"),
		ContactAddress:         appValues.String("contact_address"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		SeedDefaultContent:  appValues.Bool("seed_default_content"),
		SeedServicesOnEmpty: appValues.Bool("seed_services_on_empty"),

		TimeoutShort:   appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium:  appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutLong:    appValues.Duration("timeout_long", 30*time.Second),
		RequestTimeout: appValues.Duration("request_timeout", 60*time.Second),
	}

	// Development runs get a working admin login without any setup.
	if coreCfg.Env == "dev" && appCfg.AdminEmail == "" {
		appCfg.AdminEmail = devAdminEmail
		if appCfg.AdminPassword == "" {
			appCfg.AdminPassword = devAdminPassword
		}
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	var problems []string
	if coreCfg.Env == "prod" {
		if appCfg.JWTSecret == devJWTSecret || len(appCfg.JWTSecret) < 32 {
			problems = append(problems, "jwt_secret must be set to at least 32 characters in production")
		}
	}
	if appCfg.JWTSecret == "" {
		problems = append(problems, "jwt_secret is required")
	}
	for name, mode := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		if !auditlog.ValidMode(mode) {
			problems = append(problems, fmt.Sprintf("%s must be all, db, log or off (got %q)", name, mode))
		}
	}
	if appCfg.MaxUploadMB <= 0 {
		problems = append(problems, "max_upload_mb must be positive")
	}
	if appCfg.APIRateLimit <= 0 || appCfg.LoginRateLimit <= 0 {
		problems = append(problems, "api_rate_limit and login_rate_limit must be positive")
	}
	if appCfg.RateLimitEnabled && appCfg.RateLimitLoginAttempts <= 0 {
		problems = append(problems, "rate_limit_login_attempts must be positive")
	}

	if len(problems) > 0 {
		for _, p := range problems {
			logger.Error("invalid configuration", zap.String("problem", p))
		}
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
