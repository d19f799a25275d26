// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	adminstore "github.com/dalemusser/stratacms/internal/app/store/admins"
	"github.com/dalemusser/stratacms/internal/app/store/audit"
	"github.com/dalemusser/stratacms/internal/app/system/auditlog"
	"github.com/dalemusser/stratacms/internal/app/system/authutil"
	"github.com/dalemusser/stratacms/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema setup are complete,
// but before the HTTP handler is built and requests are served.
//
// Returning a non-nil error aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	if appCfg.AdminEmail == "" {
		logger.Info("no admin_email configured; skipping default admin account")
		return nil
	}
	auditLogger := auditlog.New(audit.New(deps.MongoDatabase), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	return EnsureAdmin(ctx, deps, appCfg, false, auditLogger, logger)
}

// EnsureAdmin creates the configured admin account when it is missing.
// With resetPassword set, an existing account gets the configured password
// and name. The setupadmin command uses that mode.
func EnsureAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, resetPassword bool, auditLogger *auditlog.Logger, logger *zap.Logger) error {
	store := adminstore.New(deps.MongoDatabase)

	if appCfg.AdminPassword == "" {
		existing, err := store.GetByEmail(ctx, appCfg.AdminEmail)
		if err == nil {
			logger.Info("admin account present", zap.String("email", existing.Email))
			return nil
		}
		logger.Warn("admin_email set without admin_password; account not created",
			zap.String("email", appCfg.AdminEmail))
		return nil
	}

	if err := authutil.ValidatePassword(appCfg.AdminPassword); err != nil {
		logger.Error("configured admin password rejected", zap.Error(err))
		return err
	}
	hash, err := authutil.HashPassword(appCfg.AdminPassword)
	if err != nil {
		return err
	}

	created, err := store.Ensure(ctx, appCfg.AdminEmail, appCfg.AdminName, hash, resetPassword)
	if err != nil {
		logger.Error("failed to ensure admin account", zap.Error(err))
		return err
	}
	admin, err := store.GetByEmail(ctx, appCfg.AdminEmail)
	if err != nil {
		return err
	}

	switch {
	case created:
		logger.Info("created admin account", zap.String("email", admin.Email))
	case resetPassword:
		logger.Info("reset admin account password", zap.String("email", admin.Email))
	default:
		logger.Info("admin account present", zap.String("email", admin.Email))
	}
	if created || resetPassword {
		auditLogger.AdminBootstrapped(ctx, admin.ID, admin.Email, created)
	}
	return nil
}
