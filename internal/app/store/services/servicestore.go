// internal/app/store/services/servicestore.go
package servicestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratacms/internal/app/store/storeutil"
	"github.com/dalemusser/stratacms/internal/app/system/slug"
	"github.com/dalemusser/stratacms/internal/app/system/txn"
	"github.com/dalemusser/stratacms/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding services.
const Collection = "services"

var (
	// ErrNotFound is returned when no service matches.
	ErrNotFound = errors.New("service not found")
	// ErrDuplicateSlug is returned when the title's slug is already taken.
	ErrDuplicateSlug = errors.New("a service with this title already exists")
	// ErrEmptySlug is returned when a title yields no usable slug.
	ErrEmptySlug = errors.New("title must contain letters or numbers")
)

// listSort is (order asc, created_at desc).
var listSort = bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}}

// withoutImageData drops inline image payloads from list results.
var withoutImageData = bson.M{
	"image.data":               0,
	"images.data":              0,
	"sub_services.images.data": 0,
}

// Store provides access to the services collection.
type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

// New creates a new service store.
func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection(Collection)}
}

// ListOptions selects what List returns.
type ListOptions struct {
	ActiveOnly       bool
	ExcludeImageData bool
}

// List returns one page of services sorted by order then newest first.
func (s *Store) List(ctx context.Context, lo ListOptions, page storeutil.PageRequest) (storeutil.Page[models.Service], error) {
	filter := bson.M{}
	if lo.ActiveOnly {
		filter["is_active"] = true
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return storeutil.Page[models.Service]{}, err
	}

	opts := page.FindOptions().SetSort(listSort)
	if lo.ExcludeImageData {
		opts.SetProjection(withoutImageData)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return storeutil.Page[models.Service]{}, err
	}
	defer cur.Close(ctx)

	var items []models.Service
	if err := cur.All(ctx, &items); err != nil {
		return storeutil.Page[models.Service]{}, err
	}
	return storeutil.NewPage(page, items, total), nil
}

// GetByID loads a service by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetBySlug loads a service by slug. With activeOnly, inactive services
// are reported as not found.
func (s *Store) GetBySlug(ctx context.Context, sl string, activeOnly bool) (*models.Service, error) {
	filter := bson.M{"slug": sl}
	if activeOnly {
		filter["is_active"] = true
	}
	return s.findOne(ctx, filter)
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.Service, error) {
	var svc models.Service
	if err := s.c.FindOne(ctx, filter).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// CreateInput contains the input for creating a service.
type CreateInput struct {
	Title            string
	ShortDescription string
	Content          string
	Icon             string
	Images           []models.Image
	SubServices      []models.SubService
	IsActive         bool
	Order            int
}

// Create inserts a new service, deriving its slug from the title.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.Service, error) {
	sl := slug.Make(in.Title)
	if sl == "" {
		return models.Service{}, ErrEmptySlug
	}

	now := time.Now()
	svc := models.Service{
		ID:               primitive.NewObjectID(),
		Title:            in.Title,
		Slug:             sl,
		ShortDescription: in.ShortDescription,
		Content:          in.Content,
		Icon:             in.Icon,
		Images:           capImages(in.Images),
		SubServices:      prepareSubServices(in.SubServices),
		IsActive:         in.IsActive,
		Order:            in.Order,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if svc.Icon == "" {
		svc.Icon = models.DefaultServiceIcon
	}
	if len(svc.Images) > 0 {
		first := svc.Images[0]
		svc.Image = &first
	}

	if _, err := s.c.InsertOne(ctx, svc); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Service{}, ErrDuplicateSlug
		}
		return models.Service{}, err
	}
	return svc, nil
}

// UpdateInput holds optional fields; nil leaves the stored value untouched.
type UpdateInput struct {
	Title            *string
	ShortDescription *string
	Content          *string
	Icon             *string
	Images           *[]models.Image
	SubServices      *[]models.SubService
	IsActive         *bool
	Order            *int
}

// Update applies the non-nil fields of in. The slug is recomputed only
// when the title actually changes; setting Images also rewrites the
// legacy single image.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*models.Service, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	unset := bson.M{}

	if in.Title != nil && *in.Title != current.Title {
		sl := slug.Make(*in.Title)
		if sl == "" {
			return nil, ErrEmptySlug
		}
		set["title"] = *in.Title
		set["slug"] = sl
	}
	if in.ShortDescription != nil {
		set["short_description"] = *in.ShortDescription
	}
	if in.Content != nil {
		set["content"] = *in.Content
	}
	if in.Icon != nil {
		set["icon"] = *in.Icon
	}
	if in.Images != nil {
		imgs := capImages(*in.Images)
		set["images"] = imgs
		if len(imgs) > 0 {
			set["image"] = imgs[0]
		} else {
			unset["image"] = ""
		}
	}
	if in.SubServices != nil {
		set["sub_services"] = prepareSubServices(*in.SubServices)
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}
	if in.Order != nil {
		set["order"] = *in.Order
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var out models.Service
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out); err != nil {
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

// Delete removes a service.
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

// Count returns the number of services.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// ReplaceAll deletes every service and inserts inputs in order, in one
// transaction where the deployment supports it, so a failed insert leaves
// the previous catalogue in place. It returns the number inserted.
func (s *Store) ReplaceAll(ctx context.Context, inputs []CreateInput) (int, error) {
	n := 0
	err := txn.Run(ctx, s.db, nil, func(ctx context.Context) error {
		n = 0
		if _, err := s.c.DeleteMany(ctx, bson.M{}); err != nil {
			return err
		}
		for _, in := range inputs {
			if _, err := s.Create(ctx, in); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

func capImages(imgs []models.Image) []models.Image {
	if imgs == nil {
		return []models.Image{}
	}
	if len(imgs) > models.MaxServiceImages {
		return imgs[:models.MaxServiceImages]
	}
	return imgs
}

// prepareSubServices assigns a slug to sub-services that have none and
// caps their images. Existing slugs are kept even if the title changed;
// a client-sent slug that is not in slug form is normalized first.
func prepareSubServices(subs []models.SubService) []models.SubService {
	out := make([]models.SubService, len(subs))
	for i, sub := range subs {
		if !slug.Valid(sub.Slug) {
			sub.Slug = slug.Make(sub.Slug)
			if sub.Slug == "" {
				sub.Slug = slug.Make(sub.Title)
			}
		}
		sub.Images = capImages(sub.Images)
		out[i] = sub
	}
	return out
}
