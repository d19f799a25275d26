// internal/app/store/faqs/faqstore.go
package faqstore

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"time"

	"github.com/dalemusser/stratacms/internal/app/store/storeutil"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding FAQs.
const Collection = "faqs"

// ErrNotFound is returned when no FAQ matches.
var ErrNotFound = errors.New("FAQ not found")

// Store provides access to the faqs collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new FAQ store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// ListOptions selects what List returns.
type ListOptions struct {
	ActiveOnly bool
	Category   string // exact match; empty or "All" means any
}

func (lo ListOptions) filter() bson.M {
	filter := bson.M{}
	if lo.ActiveOnly {
		filter["is_active"] = true
	}
	if lo.Category != "" && lo.Category != models.FAQCategoryAll {
		filter["category"] = lo.Category
	}
	return filter
}

var displaySort = bson.D{
	{Key: "category", Value: 1},
	{Key: "order", Value: 1},
	{Key: "created_at", Value: -1},
}

// List returns FAQs sorted by category, then order, then newest first.
func (s *Store) List(ctx context.Context, lo ListOptions) ([]models.FAQ, error) {
	cur, err := s.c.Find(ctx, lo.filter(), options.Find().SetSort(displaySort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.FAQ{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Page returns one page of FAQs in display order.
func (s *Store) Page(ctx context.Context, lo ListOptions, page storeutil.PageRequest) (storeutil.Page[models.FAQ], error) {
	filter := lo.filter()
	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return storeutil.Page[models.FAQ]{}, err
	}

	cur, err := s.c.Find(ctx, filter, page.FindOptions().SetSort(displaySort))
	if err != nil {
		return storeutil.Page[models.FAQ]{}, err
	}
	defer cur.Close(ctx)

	var items []models.FAQ
	if err := cur.All(ctx, &items); err != nil {
		return storeutil.Page[models.FAQ]{}, err
	}
	return storeutil.NewPage(page, items, total), nil
}

// Group is the FAQs sharing one category.
type Group struct {
	Category string
	FAQs     []models.FAQ
}

// Grouped is an ordered category -> FAQs mapping. It marshals to a JSON
// object whose keys keep first-seen order.
type Grouped []Group

// GroupByCategory buckets faqs by category in first-seen order.
func GroupByCategory(faqs []models.FAQ) Grouped {
	idx := make(map[string]int)
	var out Grouped
	for _, f := range faqs {
		i, ok := idx[f.Category]
		if !ok {
			i = len(out)
			idx[f.Category] = i
			out = append(out, Group{Category: f.Category})
		}
		out[i].FAQs = append(out[i].FAQs, f)
	}
	return out
}

// Categories returns the category names in order.
func (g Grouped) Categories() []string {
	names := make([]string, 0, len(g))
	for _, grp := range g {
		names = append(names, grp.Category)
	}
	return names
}

// MarshalJSON writes g as an object keyed by category.
func (g Grouped) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, grp := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(grp.Category)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(grp.FAQs)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CategoryCount is one row of CategoryCounts.
type CategoryCount struct {
	Name  string `bson:"_id" json:"name"`
	Count int64  `bson:"count" json:"count"`
}

// CategoryCounts returns the number of active FAQs per category, sorted by name.
func (s *Store) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_active": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []CategoryCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads an FAQ by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FAQ, error) {
	var f models.FAQ
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// CreateInput contains the input for creating an FAQ.
type CreateInput struct {
	Question string
	Answer   string
	Category string
	Order    int
	IsActive bool
}

// Create inserts a new FAQ.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.FAQ, error) {
	now := time.Now()
	f := models.FAQ{
		ID:        primitive.NewObjectID(),
		Question:  in.Question,
		Answer:    in.Answer,
		Category:  in.Category,
		IsActive:  in.IsActive,
		Order:     in.Order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if f.Category == "" {
		f.Category = models.DefaultFAQCategory
	}
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.FAQ{}, err
	}
	return f, nil
}

// UpdateInput holds optional fields; nil leaves the stored value untouched.
type UpdateInput struct {
	Question *string
	Answer   *string
	Category *string
	Order    *int
	IsActive *bool
}

// Update applies the non-nil fields of in.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*models.FAQ, error) {
	set := bson.M{"updated_at": time.Now()}
	if in.Question != nil {
		set["question"] = *in.Question
	}
	if in.Answer != nil {
		set["answer"] = *in.Answer
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Order != nil {
		set["order"] = *in.Order
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}

	var out models.FAQ
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Delete removes an FAQ.
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

// Count returns the number of FAQs.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// SeedIfEmpty inserts the default FAQ set when the collection is empty and
// reports how many FAQs exist afterwards. Every default has a fixed _id, so
// concurrent callers that both saw an empty collection insert each FAQ
// once; the loser's duplicate-key errors are ignored.
func (s *Store) SeedIfEmpty(ctx context.Context) (seeded bool, count int64, err error) {
	count, err = s.Count(ctx)
	if err != nil || count > 0 {
		return false, count, err
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(defaults))
	for i, d := range defaults {
		docs = append(docs, models.FAQ{
			ID:        seedID(i),
			Question:  d.Question,
			Answer:    d.Answer,
			Category:  d.Category,
			IsActive:  true,
			Order:     d.Order,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	inserted := len(docs)
	_, err = s.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		dups, ok := duplicateOnly(err)
		if !ok {
			return false, 0, err
		}
		inserted -= dups
	}

	count, err = s.Count(ctx)
	if err != nil {
		return false, 0, err
	}
	return inserted > 0, count, nil
}

// seedPrefix starts the _id of every default FAQ; the last four bytes hold its index.
var seedPrefix = [8]byte{'f', 'a', 'q', 's', 'e', 'e', 'd', 0}

func seedID(i int) primitive.ObjectID {
	var id primitive.ObjectID
	copy(id[:], seedPrefix[:])
	binary.BigEndian.PutUint32(id[8:], uint32(i+1))
	return id
}

// duplicateOnly reports how many writes failed when every failure in a
// bulk insert was a duplicate key.
func duplicateOnly(err error) (int, bool) {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || bwe.WriteConcernError != nil || len(bwe.WriteErrors) == 0 {
		return 0, false
	}
	for _, we := range bwe.WriteErrors {
		if we.Code != 11000 {
			return 0, false
		}
	}
	return len(bwe.WriteErrors), true
}

// DefaultCount is the size of the default FAQ set.
func DefaultCount() int {
	return len(defaults)
}
