package faqs

import (
	"encoding/json"
	"net/http"
	"testing"

	faqstore "github.com/dalemusser/stratacms/internal/app/store/faqs"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/dalemusser/stratacms/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *faqstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(db, nil, nil, zap.NewNop()), faqstore.New(db)
}

func serve(h http.Handler, req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type publicBody struct {
	Success    bool                         `json:"success"`
	Data       []models.FAQ                 `json:"data"`
	Grouped    map[string][]json.RawMessage `json:"grouped"`
	Categories []string                     `json:"categories"`
}

func TestPublicList_SeedsWhenEmpty(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := serve(Routes(h), testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	var body publicBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, faqstore.DefaultCount())
	assert.Len(t, body.Grouped, len(body.Categories))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(faqstore.DefaultCount()), n)
}

func TestPublicList_GroupsAndFilters(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Create(ctx, faqstore.CreateInput{Question: "GST q2", Answer: "a", Category: "GST", Order: 2, IsActive: true})
	store.Create(ctx, faqstore.CreateInput{Question: "GST q1", Answer: "a", Category: "GST", Order: 1, IsActive: true})
	store.Create(ctx, faqstore.CreateInput{Question: "Audit q", Answer: "a", Category: "Audit", IsActive: true})
	store.Create(ctx, faqstore.CreateInput{Question: "Hidden", Answer: "a", Category: "Audit", IsActive: false})

	rec := serve(Routes(h), testutil.NewRequest(http.MethodGet, "/?category=All"))
	rec.AssertStatus(t, http.StatusOK)
	var body publicBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)
	assert.Equal(t, []string{"Audit", "GST"}, body.Categories)
	assert.Equal(t, "GST q1", body.Data[1].Question)
	assert.Len(t, body.Grouped["GST"], 2)

	rec = serve(Routes(h), testutil.NewRequest(http.MethodGet, "/?category=GST"))
	body = publicBody{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, []string{"GST"}, body.Categories)
}

func TestCategoryCounts(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Create(ctx, faqstore.CreateInput{Question: "q1", Answer: "a", Category: "GST", IsActive: true})
	store.Create(ctx, faqstore.CreateInput{Question: "q2", Answer: "a", Category: "GST", IsActive: true})
	store.Create(ctx, faqstore.CreateInput{Question: "q3", Answer: "a", Category: "Audit", IsActive: true})
	store.Create(ctx, faqstore.CreateInput{Question: "q4", Answer: "a", Category: "Audit", IsActive: false})

	rec := serve(Routes(h), testutil.NewRequest(http.MethodGet, "/categories"))
	rec.AssertStatus(t, http.StatusOK)

	var counts []faqstore.CategoryCount
	rec.DecodeData(t, &counts)
	assert.Equal(t, []faqstore.CategoryCount{{Name: "Audit", Count: 1}, {Name: "GST", Count: 2}}, counts)
}

func TestCreate(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPost, "/", map[string]any{
		"question": "  What is GST?  ",
		"answer":   "A tax.",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	var f models.FAQ
	env := rec.DecodeData(t, &f)
	assert.Equal(t, "FAQ created successfully", env.Message)
	assert.Equal(t, "What is GST?", f.Question)
	assert.Equal(t, models.DefaultFAQCategory, f.Category)
	assert.True(t, f.IsActive)
	assert.Equal(t, 0, f.Order)
}

func TestCreate_Validation(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPost, "/", map[string]any{"question": "Q"}))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Answer is required")

	rec = serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPost, "/", "{not json"))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Invalid request body")
}

func TestUpdate_PartialFields(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f, err := store.Create(ctx, faqstore.CreateInput{Question: "Q", Answer: "A", Category: "GST", Order: 3, IsActive: true})
	require.NoError(t, err)

	rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPut, "/"+f.ID.Hex(), map[string]any{
		"question": "",
		"answer":   "New answer",
		"isActive": false,
		"order":    0,
	}))
	rec.AssertStatus(t, http.StatusOK)

	var got models.FAQ
	env := rec.DecodeData(t, &got)
	assert.Equal(t, "FAQ updated successfully", env.Message)
	assert.Equal(t, "Q", got.Question)
	assert.Equal(t, "New answer", got.Answer)
	assert.Equal(t, "GST", got.Category)
	assert.False(t, got.IsActive)
	assert.Equal(t, 0, got.Order)
}

func TestAdminList(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 25; i++ {
		store.Create(ctx, faqstore.CreateInput{Question: "q", Answer: "a", IsActive: i%2 == 0})
	}

	rec := serve(AdminRoutes(h), testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)
	var items []models.FAQ
	env := rec.DecodeData(t, &items)
	assert.Len(t, items, 20)
	assert.Equal(t, int64(25), *env.Total)
	assert.Equal(t, int64(2), *env.Pages)
}

func TestAdminByID_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := serve(AdminRoutes(h), testutil.NewRequest(method, "/64b7f0c2a1b2c3d4e5f60718"))
		rec.AssertStatus(t, http.StatusNotFound)
		rec.AssertContains(t, "FAQ not found")
	}
	rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPut, "/bad", map[string]any{}))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestDelete(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f, _ := store.Create(ctx, faqstore.CreateInput{Question: "Q", Answer: "A", IsActive: true})

	rec := serve(AdminRoutes(h), testutil.NewRequest(http.MethodDelete, "/"+f.ID.Hex()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "FAQ deleted successfully")

	_, err := store.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, faqstore.ErrNotFound)
}

func TestSeed(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.Seed(rec, testutil.NewRequest(http.MethodPost, "/seed-faqs"))
	rec.AssertStatus(t, http.StatusOK)
	env := rec.Decode(t)
	assert.True(t, env.Success)
	assert.Equal(t, "FAQs seeded successfully", env.Message)
	require.NotNil(t, env.Count)
	assert.Equal(t, int64(faqstore.DefaultCount()), *env.Count)

	rec = testutil.NewRecorder()
	h.Seed(rec, testutil.NewRequest(http.MethodPost, "/seed-faqs"))
	env = rec.Decode(t)
	assert.Equal(t, "FAQs already exist", env.Message)
	assert.Equal(t, int64(faqstore.DefaultCount()), *env.Count)
}
