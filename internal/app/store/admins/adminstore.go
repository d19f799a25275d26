// internal/app/store/admins/adminstore.go
package adminstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratacms/internal/app/system/normalize"
	"github.com/dalemusser/stratacms/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding admin accounts.
const Collection = "admins"

var (
	// ErrNotFound is returned when no admin matches.
	ErrNotFound = errors.New("admin not found")
	// ErrDuplicateEmail is returned when an admin with the email already exists.
	ErrDuplicateEmail = errors.New("an admin with this email already exists")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// GetByID loads an admin by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByEmail looks up an admin by case/diacritic-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(normalize.Email(email))}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new admin. passwordHash must already be a bcrypt hash.
func (s *Store) Create(ctx context.Context, email, name, passwordHash string) (models.Admin, error) {
	now := time.Now()
	a := models.Admin{
		ID:           primitive.NewObjectID(),
		Email:        normalize.Email(email),
		Name:         normalize.Name(name),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	a.EmailCI = text.Fold(a.Email)
	if a.Name == "" {
		a.Name = "Admin"
	}

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateEmail
		}
		return models.Admin{}, err
	}
	return a, nil
}

// SetPassword replaces the password hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin records a successful login.
func (s *Store) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

// Count returns the number of admin accounts.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// Ensure creates the admin when missing. When the admin exists and
// resetPassword is set, its password hash and name are replaced.
// It reports whether a new account was created.
func (s *Store) Ensure(ctx context.Context, email, name, passwordHash string, resetPassword bool) (bool, error) {
	existing, err := s.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		if _, err := s.Create(ctx, email, name, passwordHash); err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	}

	if !resetPassword {
		return false, nil
	}
	set := bson.M{"password_hash": passwordHash, "updated_at": time.Now()}
	if n := normalize.Name(name); n != "" {
		set["name"] = n
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": set})
	return false, err
}

// Names maps each id to its admin's display name. Unknown ids are absent.
func (s *Store) Names(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var a struct {
			ID   primitive.ObjectID `bson:"_id"`
			Name string             `bson:"name"`
		}
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		names[a.ID] = a.Name
	}
	return names, cur.Err()
}
