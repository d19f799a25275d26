package categorystore

import (
	"context"
	"errors"
	"testing"

	blogstore "github.com/dalemusser/stratacms/internal/app/store/blogs"
	faqstore "github.com/dalemusser/stratacms/internal/app/store/faqs"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/dalemusser/stratacms/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*mongo.Database, *Store, context.Context) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)
	return db, New(db, zap.NewNop()), ctx
}

func TestList_SeedsEmptyType(t *testing.T) {
	_, store, ctx := setup(t)

	faq, err := store.List(ctx, ListOptions{Type: models.CategoryTypeFAQ})
	require.NoError(t, err)
	require.Len(t, faq, 5)
	assert.Equal(t, "General", faq[0].Name)
	assert.Equal(t, "Audit & Accounting", faq[4].Name)

	blog, err := store.List(ctx, ListOptions{Type: models.CategoryTypeBlog})
	require.NoError(t, err)
	require.Len(t, blog, 5)
	assert.Equal(t, "All", blog[0].Name)

	// second read does not seed again
	again, err := store.List(ctx, ListOptions{Type: models.CategoryTypeFAQ})
	require.NoError(t, err)
	assert.Len(t, again, 5)

	all, err := store.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 10)
}

func TestList_NoSeedWhenTypeHasRows(t *testing.T) {
	_, store, ctx := setup(t)

	_, err := store.Create(ctx, CreateInput{Name: "Custom", Type: models.CategoryTypeBlog, IsActive: true})
	require.NoError(t, err)

	got, err := store.List(ctx, ListOptions{Type: models.CategoryTypeBlog})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.DefaultCategoryIcon, got[0].Icon)
}

func TestList_InvalidType(t *testing.T) {
	_, store, ctx := setup(t)

	_, err := store.List(ctx, ListOptions{Type: "news"})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestCreate_DuplicatePerType(t *testing.T) {
	_, store, ctx := setup(t)

	_, err := store.Create(ctx, CreateInput{Name: "GST", Type: models.CategoryTypeFAQ})
	require.NoError(t, err)

	_, err = store.Create(ctx, CreateInput{Name: "GST", Type: models.CategoryTypeFAQ})
	assert.ErrorIs(t, err, ErrDuplicate)

	// same name under the other type is allowed
	_, err = store.Create(ctx, CreateInput{Name: "GST", Type: models.CategoryTypeBlog})
	assert.NoError(t, err)
}

func TestUpdate_RenameCascadesToFAQs(t *testing.T) {
	db, store, ctx := setup(t)
	faqs := faqstore.New(db)

	cat, err := store.Create(ctx, CreateInput{Name: "GST", Type: models.CategoryTypeFAQ, IsActive: true})
	require.NoError(t, err)
	for _, q := range []string{"one", "two", "three"} {
		_, err := faqs.Create(ctx, faqstore.CreateInput{Question: q, Answer: "a", Category: "GST", IsActive: true})
		require.NoError(t, err)
	}
	_, err = faqs.Create(ctx, faqstore.CreateInput{Question: "other", Answer: "a", Category: "General", IsActive: true})
	require.NoError(t, err)

	got, err := store.Update(ctx, cat.ID, UpdateInput{Name: ptr("Goods and Services Tax")})
	require.NoError(t, err)
	assert.Equal(t, "Goods and Services Tax", got.Name)

	coll := db.Collection(faqstore.Collection)
	renamed, err := coll.CountDocuments(ctx, bson.M{"category": "Goods and Services Tax"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, renamed)

	old, err := coll.CountDocuments(ctx, bson.M{"category": "GST"})
	require.NoError(t, err)
	assert.Zero(t, old)

	untouched, err := coll.CountDocuments(ctx, bson.M{"category": "General"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, untouched)
}

func TestUpdate_RenameCascadesToBlogsOnly(t *testing.T) {
	db, store, ctx := setup(t)
	blogs := blogstore.New(db)
	faqs := faqstore.New(db)

	cat, err := store.Create(ctx, CreateInput{Name: "Income Tax", Type: models.CategoryTypeBlog, IsActive: true})
	require.NoError(t, err)
	for _, title := range []string{"Tax One", "Tax Two"} {
		_, err := blogs.Create(ctx, blogstore.CreateInput{Title: title, Category: "Income Tax", IsPublished: true})
		require.NoError(t, err)
	}
	// an FAQ with the same label belongs to the other type and must not move
	_, err = faqs.Create(ctx, faqstore.CreateInput{Question: "q", Answer: "a", Category: "Income Tax"})
	require.NoError(t, err)

	_, err = store.Update(ctx, cat.ID, UpdateInput{Name: ptr("Direct Tax")})
	require.NoError(t, err)

	n, err := db.Collection(blogstore.Collection).CountDocuments(ctx, bson.M{"category": "Direct Tax"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = db.Collection(faqstore.Collection).CountDocuments(ctx, bson.M{"category": "Income Tax"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUpdate_DuplicateNameLeavesReferences(t *testing.T) {
	db, store, ctx := setup(t)
	faqs := faqstore.New(db)

	a, err := store.Create(ctx, CreateInput{Name: "A", Type: models.CategoryTypeFAQ})
	require.NoError(t, err)
	_, err = store.Create(ctx, CreateInput{Name: "B", Type: models.CategoryTypeFAQ})
	require.NoError(t, err)
	_, err = faqs.Create(ctx, faqstore.CreateInput{Question: "q", Answer: "a", Category: "A"})
	require.NoError(t, err)

	_, err = store.Update(ctx, a.ID, UpdateInput{Name: ptr("B")})
	assert.ErrorIs(t, err, ErrDuplicate)

	stored, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", stored.Name)

	n, err := db.Collection(faqstore.Collection).CountDocuments(ctx, bson.M{"category": "A"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUpdate_NoRenameKeepsOtherFields(t *testing.T) {
	_, store, ctx := setup(t)

	cat, err := store.Create(ctx, CreateInput{Name: "GST", Type: models.CategoryTypeFAQ, Icon: "Receipt", IsActive: true})
	require.NoError(t, err)

	got, err := store.Update(ctx, cat.ID, UpdateInput{Name: ptr("GST"), Order: ptr(9), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "GST", got.Name)
	assert.Equal(t, "Receipt", got.Icon)
	assert.Equal(t, 9, got.Order)
	assert.False(t, got.IsActive)

	_, err = store.Update(ctx, primitive.NewObjectID(), UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_BlockedWhileReferenced(t *testing.T) {
	db, store, ctx := setup(t)
	faqs := faqstore.New(db)

	cat, err := store.Create(ctx, CreateInput{Name: "GST", Type: models.CategoryTypeFAQ})
	require.NoError(t, err)
	f, err := faqs.Create(ctx, faqstore.CreateInput{Question: "q", Answer: "a", Category: "GST"})
	require.NoError(t, err)
	_, err = faqs.Create(ctx, faqstore.CreateInput{Question: "q2", Answer: "a", Category: "GST"})
	require.NoError(t, err)

	err = store.Delete(ctx, cat.ID)
	var inUse *InUseError
	require.True(t, errors.As(err, &inUse), "want InUseError, got %v", err)
	assert.EqualValues(t, 2, inUse.Count)
	assert.Equal(t, "Cannot delete. This category is used by 2 FAQs.", inUse.Error())

	require.NoError(t, faqs.Delete(ctx, f.ID))
	err = store.Delete(ctx, cat.ID)
	require.True(t, errors.As(err, &inUse))
	assert.EqualValues(t, 1, inUse.Count)
}

func TestDelete_Unreferenced(t *testing.T) {
	_, store, ctx := setup(t)

	cat, err := store.Create(ctx, CreateInput{Name: "Startups", Type: models.CategoryTypeBlog})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, cat.ID))
	_, err = store.GetByID(ctx, cat.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, cat.ID), ErrNotFound)
}

func TestInUseError_BlogWording(t *testing.T) {
	err := &InUseError{Type: models.CategoryTypeBlog, Count: 3}
	assert.Equal(t, "Cannot delete. This category is used by 3 blogs.", err.Error())
}
