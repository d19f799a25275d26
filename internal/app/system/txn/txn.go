// Package txn runs multi-document writes inside a MongoDB transaction when
// the deployment supports one (replica set or mongos) and falls back to
// plain ordered execution on standalone servers.
//
//	err := txn.Run(ctx, db, log, func(ctx context.Context) error {
//	    if _, err := faqs.UpdateMany(ctx, old, rename); err != nil {
//	        return err
//	    }
//	    _, err := categories.UpdateByID(ctx, id, set)
//	    return err
//	})
//
// fn must be safe to re-run: the driver retries it on transient
// transaction errors, and the fallback path runs it again from the start.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Func receives a mongo.SessionContext inside a transaction, or the
// caller's context when running without one.
type Func func(ctx context.Context) error

// Run executes fn atomically where possible. log may be nil.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn Func) error {
	session, err := db.Client().StartSession()
	if err != nil {
		warn(log, "failed to start session, running without transaction", err)
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		warn(log, "transactions not supported, running without transaction", err)
		return fn(ctx)
	}
	return err
}

func warn(log *zap.Logger, msg string, err error) {
	if log != nil {
		log.Warn(msg, zap.Error(err))
	}
}

// IsNotSupported reports whether err means the server cannot run
// multi-document transactions.
//
// Known error codes:
//   - 20: IllegalOperation, "Transaction numbers are only allowed on a replica set member or mongos"
//   - 51: also raised by some DocumentDB versions
//   - 263: OperationNotSupportedInTransaction
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}

	// Wording differs between MongoDB and DocumentDB; two hits avoid
	// matching unrelated errors that mention one keyword.
	msg := strings.ToLower(err.Error())
	hits := 0
	for _, kw := range []string{"transaction", "replica set", "session", "not supported", "illegal operation"} {
		if strings.Contains(msg, kw) {
			hits++
		}
	}
	return hits >= 2
}
