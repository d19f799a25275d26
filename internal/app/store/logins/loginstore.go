// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/stratacms/internal/app/system/network"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds one document per successful admin login.
const Collection = "login_records"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts a LoginRecord. If CreatedAt is zero, it's set to time.Now().UTC().
func (s *Store) Create(ctx context.Context, rec models.LoginRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, rec)
	return err
}

// CreateFrom records a login for adminID using the caller's address and
// user agent from r.
func (s *Store) CreateFrom(ctx context.Context, r *http.Request, adminID primitive.ObjectID) error {
	return s.Create(ctx, models.LoginRecord{
		AdminID:   adminID,
		IP:        network.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
}

// GetByAdmin returns the newest login records for an admin.
func (s *Store) GetByAdmin(ctx context.Context, adminID primitive.ObjectID, limit int64) ([]models.LoginRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"admin_id": adminID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	records := []models.LoginRecord{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
