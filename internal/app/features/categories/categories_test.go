package categories

import (
	"net/http"
	"testing"

	blogstore "github.com/dalemusser/stratacms/internal/app/store/blogs"
	categorystore "github.com/dalemusser/stratacms/internal/app/store/categories"
	faqstore "github.com/dalemusser/stratacms/internal/app/store/faqs"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/dalemusser/stratacms/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(db, nil, nil, zap.NewNop()), db
}

func serve(h http.Handler, req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createCategory(t *testing.T, db *mongo.Database, name, typ string) models.Category {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c, err := categorystore.New(db, nil).Create(ctx, categorystore.CreateInput{Name: name, Type: typ, IsActive: true})
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", name, err)
	}
	return c
}

func TestList_SeedsRequestedType(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(AdminRoutes(h), testutil.NewRequest(http.MethodGet, "/?type=FAQ"))
	rec.AssertStatus(t, http.StatusOK)

	var cats []models.Category
	rec.DecodeData(t, &cats)
	if len(cats) != 5 {
		t.Fatalf("len = %d, want 5 default FAQ categories", len(cats))
	}
	if cats[0].Name != "General" || cats[0].Type != models.CategoryTypeFAQ {
		t.Errorf("first = %+v", cats[0])
	}

	rec = serve(AdminRoutes(h), testutil.NewRequest(http.MethodGet, "/"))
	rec.DecodeData(t, &cats)
	if len(cats) != 5 {
		t.Errorf("untyped list = %d, want only the seeded FAQ categories", len(cats))
	}
}

func TestList_InvalidType(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(AdminRoutes(h), testutil.NewRequest(http.MethodGet, "/?type=service"))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestCreate(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPost, "/", map[string]any{
		"name": "Payroll",
		"type": "faq",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	var c models.Category
	env := rec.DecodeData(t, &c)
	if env.Message != "Category created successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if c.Icon != models.DefaultCategoryIcon || !c.IsActive || c.Order != 0 {
		t.Errorf("defaults not applied: %+v", c)
	}
}

func TestCreate_Errors(t *testing.T) {
	h, db := newTestHandler(t)
	createCategory(t, db, "GST", models.CategoryTypeBlog)

	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"missing type", map[string]any{"name": "X"}, "Name and type are required"},
		{"blank name", map[string]any{"name": "  ", "type": "faq"}, "Name and type are required"},
		{"bad type", map[string]any{"name": "X", "type": "service"}, "Type must be faq or blog"},
		{"duplicate", map[string]any{"name": "GST", "type": "blog"}, "Category already exists for this type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPost, "/", tt.body))
			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, tt.want)
		})
	}

	// Same name, other type is fine.
	rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPost, "/", map[string]any{"name": "GST", "type": "faq"}))
	rec.AssertStatus(t, http.StatusCreated)
}

func TestUpdate_RenameCascades(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := createCategory(t, db, "Income Tax", models.CategoryTypeBlog)
	blogs := blogstore.New(db)
	b1, _ := blogs.Create(ctx, blogstore.CreateInput{Title: "One", Category: "Income Tax"})
	b2, _ := blogs.Create(ctx, blogstore.CreateInput{Title: "Two", Category: "Income Tax"})
	faq, _ := faqstore.New(db).Create(ctx, faqstore.CreateInput{Question: "q", Answer: "a", Category: "Income Tax"})

	rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPut, "/"+c.ID.Hex(), map[string]any{
		"name": "Direct Tax",
	}))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Category updated successfully")

	for _, b := range []models.Blog{b1, b2} {
		got, _ := blogs.GetByID(ctx, b.ID)
		if got.Category != "Direct Tax" {
			t.Errorf("blog %q category = %q, want Direct Tax", got.Title, got.Category)
		}
	}
	gotFAQ, _ := faqstore.New(db).GetByID(ctx, faq.ID)
	if gotFAQ.Category != "Income Tax" {
		t.Errorf("FAQ category = %q, a blog rename must not touch FAQs", gotFAQ.Category)
	}
}

func TestUpdate_RenameToTakenName(t *testing.T) {
	h, db := newTestHandler(t)
	createCategory(t, db, "GST", models.CategoryTypeFAQ)
	c := createCategory(t, db, "Audit", models.CategoryTypeFAQ)

	rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPut, "/"+c.ID.Hex(), map[string]any{"name": "GST"}))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Category name already exists for this type")
}

func TestUpdate_FlagsAndOrder(t *testing.T) {
	h, db := newTestHandler(t)
	c := createCategory(t, db, "GST", models.CategoryTypeFAQ)

	rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPut, "/"+c.ID.Hex(), map[string]any{
		"isActive": false,
		"order":    7,
		"icon":     "",
	}))
	rec.AssertStatus(t, http.StatusOK)

	var got models.Category
	rec.DecodeData(t, &got)
	if got.IsActive || got.Order != 7 || got.Icon != c.Icon || got.Name != "GST" {
		t.Errorf("got %+v", got)
	}
}

func TestDelete_RefusedWhileInUse(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := createCategory(t, db, "GST", models.CategoryTypeBlog)
	blogs := blogstore.New(db)
	blogs.Create(ctx, blogstore.CreateInput{Title: "One", Category: "GST"})
	blogs.Create(ctx, blogstore.CreateInput{Title: "Two", Category: "GST"})

	rec := serve(AdminRoutes(h), testutil.NewRequest(http.MethodDelete, "/"+c.ID.Hex()))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Cannot delete. This category is used by 2 blogs.")
}

func TestDelete(t *testing.T) {
	h, db := newTestHandler(t)
	c := createCategory(t, db, "Unused", models.CategoryTypeFAQ)

	rec := serve(AdminRoutes(h), testutil.NewRequest(http.MethodDelete, "/"+c.ID.Hex()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Category deleted successfully")

	rec = serve(AdminRoutes(h), testutil.NewRequest(http.MethodDelete, "/"+c.ID.Hex()))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Category not found")
}

func TestMalformedID(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPut, "/nope", map[string]any{"name": "x"}))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Category not found")
}

func TestCreate_CollapsesWhitespace(t *testing.T) {
	h, db := newTestHandler(t)
	createCategory(t, db, "Income Tax", models.CategoryTypeBlog)

	rec := serve(AdminRoutes(h), testutil.NewJSONRequest(http.MethodPost, "/", map[string]any{
		"name": "  Income   Tax ",
		"type": "blog",
	}))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Category already exists for this type")
}
