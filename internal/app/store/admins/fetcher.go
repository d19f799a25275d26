// internal/app/store/admins/fetcher.go
package adminstore

import (
	"context"

	"github.com/dalemusser/stratacms/internal/app/system/auth"
	"github.com/dalemusser/stratacms/internal/app/system/timeouts"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Fetcher implements auth.AdminFetcher to load fresh admin data on each request.
type Fetcher struct {
	admins *mongo.Collection
	logger *zap.Logger
}

// NewFetcher creates an AdminFetcher that queries the given database.
func NewFetcher(db *mongo.Database, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		admins: db.Collection(Collection),
		logger: logger,
	}
}

// FetchAdmin returns nil if the admin is not found or any error occurs.
func (f *Fetcher) FetchAdmin(ctx context.Context, id primitive.ObjectID) *auth.Admin {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var a models.Admin
	proj := options.FindOne().SetProjection(bson.M{"_id": 1, "email": 1, "name": 1})
	if err := f.admins.FindOne(ctx, bson.M{"_id": id}, proj).Decode(&a); err != nil {
		if err != mongo.ErrNoDocuments {
			f.logger.Error("fetch admin failed", zap.String("admin_id", id.Hex()), zap.Error(err))
		}
		return nil
	}
	return &auth.Admin{ID: a.ID, Email: a.Email, Name: a.Name}
}
