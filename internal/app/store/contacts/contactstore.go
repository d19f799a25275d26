// internal/app/store/contacts/contactstore.go
package contactstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/stratacms/internal/app/store/storeutil"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding contact submissions.
const Collection = "contacts"

// ErrNotFound is returned when no contact matches.
var ErrNotFound = errors.New("contact not found")

// Store provides access to the contacts collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new contact store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// CreateInput is a contact-form submission.
type CreateInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Create stores a new unread submission. Email is lowercased.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.Contact, error) {
	now := time.Now()
	c := models.Contact{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

// List returns one page of submissions, newest first.
func (s *Store) List(ctx context.Context, page storeutil.PageRequest) (storeutil.Page[models.Contact], error) {
	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return storeutil.Page[models.Contact]{}, err
	}

	opts := page.FindOptions().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return storeutil.Page[models.Contact]{}, err
	}
	defer cur.Close(ctx)

	var items []models.Contact
	if err := cur.All(ctx, &items); err != nil {
		return storeutil.Page[models.Contact]{}, err
	}
	return storeutil.NewPage(page, items, total), nil
}

// Recent returns the n newest submissions.
func (s *Store) Recent(ctx context.Context, n int64) ([]models.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(n)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Contact{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of submissions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CountUnread returns the number of submissions not yet marked read.
func (s *Store) CountUnread(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"is_read": false})
}

// UpdateInput holds the admin-editable fields; nil leaves a field untouched.
type UpdateInput struct {
	IsRead    *bool
	IsReplied *bool
	Notes     *string
}

// Update applies the non-nil fields of in and returns the updated document.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*models.Contact, error) {
	set := bson.M{"updated_at": time.Now()}
	if in.IsRead != nil {
		set["is_read"] = *in.IsRead
	}
	if in.IsReplied != nil {
		set["is_replied"] = *in.IsReplied
	}
	if in.Notes != nil {
		set["notes"] = *in.Notes
	}

	var out models.Contact
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// MarkRead flags a submission as read.
func (s *Store) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.Contact, error) {
	read := true
	return s.Update(ctx, id, UpdateInput{IsRead: &read})
}

// Delete removes a submission.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
