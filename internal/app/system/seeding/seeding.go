// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	aboutusstore "github.com/dalemusser/stratacms/internal/app/store/aboutus"
	categorystore "github.com/dalemusser/stratacms/internal/app/store/categories"
	faqstore "github.com/dalemusser/stratacms/internal/app/store/faqs"
	servicestore "github.com/dalemusser/stratacms/internal/app/store/services"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Options selects which default content SeedAll writes.
type Options struct {
	// DefaultContent seeds categories, FAQs and About Us when missing.
	DefaultContent bool
	// ServicesOnEmpty installs the default service catalogue when the
	// services collection is empty.
	ServicesOnEmpty bool
}

// SeedAll seeds default data if not already present. Every step is
// guarded by an emptiness check, so running it on each boot is safe.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger, opts Options) error {
	if opts.DefaultContent {
		if err := seedCategories(ctx, db, logger); err != nil {
			return err
		}
		if err := seedFAQs(ctx, db, logger); err != nil {
			return err
		}
		if err := seedAboutUs(ctx, db, logger); err != nil {
			return err
		}
	}
	if opts.ServicesOnEmpty {
		if err := seedServices(ctx, db, logger); err != nil {
			return err
		}
	}
	return nil
}

func seedCategories(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := categorystore.New(db, logger)
	for _, t := range []string{models.CategoryTypeFAQ, models.CategoryTypeBlog} {
		seeded, err := store.SeedIfEmpty(ctx, t)
		if err != nil {
			logger.Error("failed to seed categories", zap.String("type", t), zap.Error(err))
			return err
		}
		if seeded {
			logger.Info("seeded default categories", zap.String("type", t))
		}
	}
	return nil
}

func seedFAQs(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	seeded, count, err := faqstore.New(db).SeedIfEmpty(ctx)
	if err != nil {
		logger.Error("failed to seed FAQs", zap.Error(err))
		return err
	}
	if seeded {
		logger.Info("seeded default FAQs", zap.Int64("count", count))
	}
	return nil
}

func seedAboutUs(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if _, err := aboutusstore.New(db).EnsureDefault(ctx); err != nil {
		logger.Error("failed to seed about us", zap.Error(err))
		return err
	}
	return nil
}

func seedServices(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := servicestore.New(db)
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	inserted, err := store.ReplaceAll(ctx, servicestore.DefaultCatalogue())
	if err != nil {
		logger.Error("failed to seed services", zap.Int("inserted", inserted), zap.Error(err))
		return err
	}
	logger.Info("seeded default services", zap.Int("count", inserted))
	return nil
}
