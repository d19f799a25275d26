// Command setupadmin creates the admin account, or resets its password
// when the account already exists.
//
//	setupadmin --admin_email=office@example.com --admin_password='S3cret-pass' --admin_name='Office'
//
// Every STRATACMS_* setting (mongo_uri, mongo_database, ...) is honoured.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/stratacms/internal/app/bootstrap"
	"github.com/dalemusser/stratacms/internal/app/store/audit"
	"github.com/dalemusser/stratacms/internal/app/system/auditlog"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Error("setupadmin failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	coreCfg, appCfg, err := bootstrap.LoadConfig(logger)
	if err != nil {
		return err
	}
	if appCfg.AdminEmail == "" || appCfg.AdminPassword == "" {
		return fmt.Errorf("--admin_email and --admin_password are required")
	}
	if err := bootstrap.ValidateConfig(coreCfg, appCfg, logger); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), appCfg.TimeoutLong)
	defer cancel()

	deps, err := bootstrap.ConnectDB(ctx, coreCfg, appCfg, logger)
	if err != nil {
		return err
	}
	defer deps.MongoClient.Disconnect(context.Background())

	auditLogger := auditlog.New(audit.New(deps.MongoDatabase), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	return bootstrap.EnsureAdmin(ctx, deps, appCfg, true, auditLogger, logger)
}
