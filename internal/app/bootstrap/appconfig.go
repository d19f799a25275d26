// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (STRATACMS_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// carries the framework-level settings: ports, TLS, log level and the
// environment name.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Admin bearer tokens
	JWTSecret string        // HMAC key; must be strong in production
	JWTTTL    time.Duration // token lifetime (default: 7 days)

	// Default admin account, ensured at startup when email and password are set
	AdminEmail    string
	AdminPassword string
	AdminName     string

	// Per-IP request limits
	APIRateLimit    int           // requests per window on /api (default: 100)
	APIRateWindow   time.Duration // default: 15m
	LoginRateLimit  int           // requests per window on /api/auth/login (default: 5)
	LoginRateWindow time.Duration // default: 15m

	// Per-email login lockout
	RateLimitEnabled       bool          // Enable the lockout (default: true)
	RateLimitLoginAttempts int           // Max failed login attempts before lockout (default: 5)
	RateLimitLoginWindow   time.Duration // Time window for counting failed attempts (default: 15m)
	RateLimitLoginLockout  time.Duration // Lockout duration after exceeding limit (default: 15m)

	CORSAllowedOrigins string // comma-separated; "*" allows any origin
	MaxUploadMB        int    // per-file image limit

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty for Mailpit)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name, also the firm name in emails

	// Contact form
	AdminNotificationEmail string // recipient of new-submission notices; blank disables them
	ContactPhone           string // quoted in the visitor confirmation
	ContactAddress         string

	// Audit logging configuration
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	AuditLogAuth  string // login, lockout and password events
	AuditLogAdmin string // content changes and seeding

	// Seeding
	SeedDefaultContent  bool // categories, FAQs and About Us when missing
	SeedServicesOnEmpty bool // default service catalogue when there are no services

	// Handler timeouts
	TimeoutShort   time.Duration
	TimeoutMedium  time.Duration
	TimeoutLong    time.Duration
	RequestTimeout time.Duration // whole-request deadline
}
