// internal/app/store/blogs/blogstore.go
package blogstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratacms/internal/app/store/storeutil"
	"github.com/dalemusser/stratacms/internal/app/system/slug"
	"github.com/dalemusser/stratacms/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding blogs.
const Collection = "blogs"

var (
	// ErrNotFound is returned when no blog matches.
	ErrNotFound = errors.New("blog not found")
	// ErrDuplicateSlug is returned when the title's slug is already taken.
	ErrDuplicateSlug = errors.New("a blog with this title already exists")
	// ErrEmptySlug is returned when a title yields no usable slug.
	ErrEmptySlug = errors.New("title must contain letters or numbers")
)

// Store provides access to the blogs collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new blog store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// ListOptions selects what List returns.
type ListOptions struct {
	PublishedOnly  bool
	Category       string // exact match; empty means any
	FeaturedFirst  bool   // sort featured posts ahead of the rest
	ExcludeContent bool
}

// List returns one page of blogs, newest first.
func (s *Store) List(ctx context.Context, lo ListOptions, page storeutil.PageRequest) (storeutil.Page[models.Blog], error) {
	filter := bson.M{}
	if lo.PublishedOnly {
		filter["is_published"] = true
	}
	if lo.Category != "" {
		filter["category"] = lo.Category
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return storeutil.Page[models.Blog]{}, err
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	if lo.FeaturedFirst {
		sort = bson.D{{Key: "is_featured", Value: -1}, {Key: "created_at", Value: -1}}
	}
	opts := page.FindOptions().SetSort(sort)
	if lo.ExcludeContent {
		opts.SetProjection(bson.M{"content": 0})
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return storeutil.Page[models.Blog]{}, err
	}
	defer cur.Close(ctx)

	var items []models.Blog
	if err := cur.All(ctx, &items); err != nil {
		return storeutil.Page[models.Blog]{}, err
	}
	return storeutil.NewPage(page, items, total), nil
}

// Recent returns the n newest blogs with only title, slug, created_at and views.
func (s *Store) Recent(ctx context.Context, n int64) ([]models.Blog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(n).
		SetProjection(bson.M{"title": 1, "slug": 1, "created_at": 1, "views": 1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Blog{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a blog by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ViewPublished loads a published blog by slug and increments its view
// counter in the same atomic write. Unpublished or unknown slugs return
// ErrNotFound and are not counted.
func (s *Store) ViewPublished(ctx context.Context, sl string) (*models.Blog, error) {
	var b models.Blog
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"slug": sl, "is_published": true},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// CreateInput contains the input for creating a blog.
type CreateInput struct {
	Title       string
	Excerpt     string
	Content     string
	Image       *models.Image
	Author      string
	Category    string
	IsPublished bool
	IsFeatured  bool
}

// Create inserts a new blog, deriving its slug from the title.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.Blog, error) {
	sl := slug.Make(in.Title)
	if sl == "" {
		return models.Blog{}, ErrEmptySlug
	}

	now := time.Now()
	b := models.Blog{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Slug:        sl,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		Image:       in.Image,
		Author:      in.Author,
		Category:    in.Category,
		IsPublished: in.IsPublished,
		IsFeatured:  in.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if b.Category == "" {
		b.Category = models.DefaultBlogCategory
	}

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Blog{}, ErrDuplicateSlug
		}
		return models.Blog{}, err
	}
	return b, nil
}

// UpdateInput holds optional fields; nil leaves the stored value untouched.
type UpdateInput struct {
	Title       *string
	Excerpt     *string
	Content     *string
	Image       *models.Image
	Author      *string
	Category    *string
	IsPublished *bool
	IsFeatured  *bool
}

// Update applies the non-nil fields of in, recomputing the slug only when
// the title changes.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*models.Blog, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	if in.Title != nil && *in.Title != current.Title {
		sl := slug.Make(*in.Title)
		if sl == "" {
			return nil, ErrEmptySlug
		}
		set["title"] = *in.Title
		set["slug"] = sl
	}
	if in.Excerpt != nil {
		set["excerpt"] = *in.Excerpt
	}
	if in.Content != nil {
		set["content"] = *in.Content
	}
	if in.Image != nil {
		set["image"] = *in.Image
	}
	if in.Author != nil {
		set["author"] = *in.Author
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.IsPublished != nil {
		set["is_published"] = *in.IsPublished
	}
	if in.IsFeatured != nil {
		set["is_featured"] = *in.IsFeatured
	}

	var out models.Blog
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateSlug
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Delete removes a blog.
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

// Count returns the number of blogs.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
