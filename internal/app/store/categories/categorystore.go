// internal/app/store/categories/categorystore.go
package categorystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	blogstore "github.com/dalemusser/stratacms/internal/app/store/blogs"
	faqstore "github.com/dalemusser/stratacms/internal/app/store/faqs"
	"github.com/dalemusser/stratacms/internal/app/system/txn"
	"github.com/dalemusser/stratacms/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection is the MongoDB collection holding categories.
const Collection = "categories"

var (
	// ErrNotFound is returned when no category matches.
	ErrNotFound = errors.New("category not found")
	// ErrDuplicate is returned when (name, type) is already taken.
	ErrDuplicate = errors.New("category already exists for this type")
	// ErrInvalidType is returned for a type other than faq or blog.
	ErrInvalidType = errors.New("invalid category type")
)

// InUseError refuses a delete while FAQs or blogs still carry the name.
type InUseError struct {
	Type  string
	Count int64
}

func (e *InUseError) Error() string {
	kind := "blogs"
	if e.Type == models.CategoryTypeFAQ {
		kind = "FAQs"
	}
	return fmt.Sprintf("Cannot delete. This category is used by %d %s.", e.Count, kind)
}

// Store provides access to the categories collection and the FAQ and blog
// collections that reference category names.
type Store struct {
	db  *mongo.Database
	c   *mongo.Collection
	log *zap.Logger
}

// New creates a new category store. logger may be nil.
func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{db: db, c: db.Collection(Collection), log: logger}
}

// referencing returns the collection whose documents copy names of type t.
func (s *Store) referencing(t string) *mongo.Collection {
	if t == models.CategoryTypeFAQ {
		return s.db.Collection(faqstore.Collection)
	}
	return s.db.Collection(blogstore.Collection)
}

// ListOptions selects what List returns.
type ListOptions struct {
	Type       string // empty means every type
	ActiveOnly bool
}

// List returns categories sorted by order then name. Listing a single type
// that has no rows seeds that type's defaults first.
func (s *Store) List(ctx context.Context, lo ListOptions) ([]models.Category, error) {
	if lo.Type != "" {
		if !models.IsValidCategoryType(lo.Type) {
			return nil, ErrInvalidType
		}
		if _, err := s.SeedIfEmpty(ctx, lo.Type); err != nil {
			return nil, err
		}
	}

	filter := bson.M{}
	if lo.Type != "" {
		filter["type"] = lo.Type
	}
	if lo.ActiveOnly {
		filter["is_active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Category{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SeedIfEmpty inserts the default categories for t when it has none.
func (s *Store) SeedIfEmpty(ctx context.Context, t string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"type": t})
	if err != nil || n > 0 {
		return false, err
	}

	now := time.Now()
	var docs []interface{}
	for _, d := range Defaults(t) {
		docs = append(docs, models.Category{
			ID:        primitive.NewObjectID(),
			Name:      d.Name,
			Type:      t,
			Icon:      d.Icon,
			Order:     d.Order,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if len(docs) == 0 {
		return false, nil
	}

	// Unordered so a concurrent seeder's rows only cost duplicate-key errors.
	_, err = s.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !wafflemongo.IsDup(err) {
		return false, err
	}
	return true, nil
}

// GetByID loads a category by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// CreateInput contains the input for creating a category.
type CreateInput struct {
	Name     string
	Type     string
	Icon     string
	Order    int
	IsActive bool
}

// Create inserts a new category.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.Category, error) {
	if !models.IsValidCategoryType(in.Type) {
		return models.Category{}, ErrInvalidType
	}
	now := time.Now()
	c := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Type:      in.Type,
		Icon:      in.Icon,
		Order:     in.Order,
		IsActive:  in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.Icon == "" {
		c.Icon = models.DefaultCategoryIcon
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Category{}, ErrDuplicate
		}
		return models.Category{}, err
	}
	return c, nil
}

// UpdateInput holds optional fields; nil leaves the stored value untouched.
type UpdateInput struct {
	Name     *string
	Icon     *string
	Order    *int
	IsActive *bool
}

// Update applies in. A name change rewrites every FAQ or blog (by the
// category's type) carrying the old name, in the same transaction as the
// category update when the server supports transactions.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*models.Category, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	rename := in.Name != nil && *in.Name != current.Name
	if rename {
		// Checked up front so a standalone server, which runs the cascade
		// without a transaction, never rewrites references for a rename
		// that the unique index would then reject.
		taken, err := s.c.CountDocuments(ctx, bson.M{
			"name": *in.Name,
			"type": current.Type,
			"_id":  bson.M{"$ne": id},
		})
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, ErrDuplicate
		}
		set["name"] = *in.Name
	}
	if in.Icon != nil {
		set["icon"] = *in.Icon
	}
	if in.Order != nil {
		set["order"] = *in.Order
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}

	var out models.Category
	err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if rename {
			res, err := s.referencing(current.Type).UpdateMany(ctx,
				bson.M{"category": current.Name},
				bson.M{"$set": bson.M{"category": *in.Name, "updated_at": time.Now()}},
			)
			if err != nil {
				return err
			}
			if s.log != nil {
				s.log.Debug("category rename cascaded",
					zap.String("type", current.Type),
					zap.String("from", current.Name),
					zap.String("to", *in.Name),
					zap.Int64("documents", res.ModifiedCount))
			}
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		return s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out)
	})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicate
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// UsageCount returns how many FAQs or blogs (by the category's type) carry
// its name.
func (s *Store) UsageCount(ctx context.Context, c *models.Category) (int64, error) {
	return s.referencing(c.Type).CountDocuments(ctx, bson.M{"category": c.Name})
}

// Delete removes a category that nothing references. Otherwise it returns
// an *InUseError with the referencing count.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.UsageCount(ctx, c)
	if err != nil {
		return err
	}
	if n > 0 {
		return &InUseError{Type: c.Type, Count: n}
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
