package blogs

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	blogstore "github.com/dalemusser/stratacms/internal/app/store/blogs"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/dalemusser/stratacms/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *blogstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(db, nil, nil, 0, zap.NewNop()), blogstore.New(db)
}

func serve(h http.Handler, req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validFields() map[string]string {
	return map[string]string{
		"title":   "Budget 2025 Highlights",
		"excerpt": "What changed for taxpayers.",
		"content": "<p>Details</p>",
		"author":  "CA Gupta",
	}
}

func TestPublicList_PublishedFeaturedFirst(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Create(ctx, blogstore.CreateInput{Title: "Older Featured", Content: "x", IsPublished: true, IsFeatured: true})
	store.Create(ctx, blogstore.CreateInput{Title: "Newer", Content: "x", IsPublished: true})
	store.Create(ctx, blogstore.CreateInput{Title: "Draft", Content: "x", IsPublished: false})

	rec := serve(Routes(h), testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	var items []models.Blog
	env := rec.DecodeData(t, &items)
	if len(items) != 2 || *env.Total != 2 {
		t.Fatalf("items = %d total = %d, want 2", len(items), *env.Total)
	}
	if items[0].Title != "Older Featured" {
		t.Errorf("first = %q, want featured post first", items[0].Title)
	}
	for _, b := range items {
		if b.Content != "" {
			t.Errorf("%q: content should be omitted from the list", b.Title)
		}
	}
}

func TestPublicList_CategoryFilter(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Create(ctx, blogstore.CreateInput{Title: "GST Update", Category: "GST", IsPublished: true})
	store.Create(ctx, blogstore.CreateInput{Title: "ITR Due Dates", Category: "Income Tax", IsPublished: true})

	tests := []struct {
		query string
		want  int
	}{
		{"?category=GST", 1},
		{"?category=All", 2},
		{"", 2},
		{"?category=Startups", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := serve(Routes(h), testutil.NewRequest(http.MethodGet, "/"+tt.query))
			rec.AssertStatus(t, http.StatusOK)
			var items []models.Blog
			rec.DecodeData(t, &items)
			if len(items) != tt.want {
				t.Errorf("len = %d, want %d", len(items), tt.want)
			}
		})
	}
}

func TestPublicList_Pagination(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 25; i++ {
		store.Create(ctx, blogstore.CreateInput{Title: fmt.Sprintf("Post %02d", i), IsPublished: true})
	}

	rec := serve(Routes(h), testutil.NewRequest(http.MethodGet, "/?page=3&limit=10"))
	rec.AssertStatus(t, http.StatusOK)
	var items []models.Blog
	env := rec.DecodeData(t, &items)
	if len(items) != 5 || *env.Pages != 3 || *env.Page != 3 || *env.Count != 5 {
		t.Errorf("len %d pages %d page %d count %d", len(items), *env.Pages, *env.Page, *env.Count)
	}

	rec = serve(Routes(h), testutil.NewRequest(http.MethodGet, "/"))
	rec.DecodeData(t, &items)
	if len(items) != 9 {
		t.Errorf("default page size = %d, want 9", len(items))
	}
}

func TestShowBySlug_CountsViews(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Create(ctx, blogstore.CreateInput{Title: "Tax Tips", Content: "<p>Body</p>", IsPublished: true})
	draft, _ := store.Create(ctx, blogstore.CreateInput{Title: "Draft Tips", IsPublished: false})

	for i := 1; i <= 3; i++ {
		rec := serve(Routes(h), testutil.NewRequest(http.MethodGet, "/tax-tips"))
		rec.AssertStatus(t, http.StatusOK)
		var b models.Blog
		rec.DecodeData(t, &b)
		if b.Views != int64(i) || b.Content != "<p>Body</p>" {
			t.Errorf("fetch %d: views = %d content = %q", i, b.Views, b.Content)
		}
	}

	rec := serve(Routes(h), testutil.NewRequest(http.MethodGet, "/draft-tips"))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Blog not found")

	got, _ := store.GetByID(ctx, draft.ID)
	if got.Views != 0 {
		t.Errorf("draft views = %d, want 0", got.Views)
	}
}

func TestPublicCategories_SeedsOnEmpty(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(Routes(h), testutil.NewRequest(http.MethodGet, "/categories"))
	rec.AssertStatus(t, http.StatusOK)

	var cats []map[string]any
	rec.DecodeData(t, &cats)
	if len(cats) != 5 {
		t.Fatalf("len = %d, want 5 seeded blog categories", len(cats))
	}
	if cats[0]["name"] != "All" {
		t.Errorf("first = %v, want All (order 0)", cats[0]["name"])
	}
	if _, ok := cats[0]["icon"]; ok {
		t.Error("public categories should carry names only")
	}
}

func TestCreate(t *testing.T) {
	h, _ := newTestHandler(t)

	fields := validFields()
	fields["content"] = `<p>Details</p><script>alert(1)</script>`
	rec := serve(AdminRoutes(h), testutil.NewMultipartRequest(http.MethodPost, "/", fields,
		testutil.File{Field: "image", Name: "cover.png", Data: testutil.PNG}))
	rec.AssertStatus(t, http.StatusCreated)

	var b models.Blog
	env := rec.DecodeData(t, &b)
	if env.Message != "Blog created successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if b.Slug != "budget-2025-highlights" || b.Category != models.DefaultBlogCategory {
		t.Errorf("slug %q category %q", b.Slug, b.Category)
	}
	if !b.IsPublished || b.IsFeatured {
		t.Errorf("published %v featured %v, want true/false", b.IsPublished, b.IsFeatured)
	}
	if b.Content != "<p>Details</p>" {
		t.Errorf("content = %q, want sanitized", b.Content)
	}
	if b.Image == nil || b.Image.ContentType != "image/png" {
		t.Errorf("image = %+v", b.Image)
	}
}

func TestCreate_Validation(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"missing title", "title", "", "Blog title is required"},
		{"missing author", "author", "", "Author name is required"},
		{"long excerpt", "excerpt", strings.Repeat("a", 301), "cannot exceed 300"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			fields[tt.key] = tt.value
			rec := serve(AdminRoutes(h), testutil.NewMultipartRequest(http.MethodPost, "/", fields))
			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, tt.want)
		})
	}
}

func TestCreate_DuplicateTitle(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Create(ctx, blogstore.CreateInput{Title: "Budget 2025 Highlights"})

	rec := serve(AdminRoutes(h), testutil.NewMultipartRequest(http.MethodPost, "/", validFields()))
	rec.AssertStatus(t, http.StatusConflict)
	rec.AssertContains(t, "A blog with this title already exists")
}

func TestUpdate_BlankFieldsKeepValues(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, _ := store.Create(ctx, blogstore.CreateInput{
		Title: "Original", Excerpt: "e", Content: "c", Author: "A", Category: "GST", IsPublished: true,
		Image: &models.Image{Data: "QQ==", ContentType: "image/png"},
	})

	rec := serve(AdminRoutes(h), testutil.NewMultipartRequest(http.MethodPut, "/"+b.ID.Hex(), map[string]string{
		"title":       "",
		"excerpt":     "new excerpt",
		"author":      "  ",
		"isPublished": "false",
	}))
	rec.AssertStatus(t, http.StatusOK)

	var got models.Blog
	rec.DecodeData(t, &got)
	if got.Title != "Original" || got.Slug != "original" || got.Author != "A" || got.Category != "GST" {
		t.Errorf("blank fields changed stored values: %+v", got)
	}
	if got.Excerpt != "new excerpt" || got.IsPublished {
		t.Errorf("excerpt %q published %v", got.Excerpt, got.IsPublished)
	}
	if got.Image == nil || got.Image.Data != "QQ==" {
		t.Error("image should be kept when no file is sent")
	}
}

func TestUpdate_RetitleAndReplaceImage(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, _ := store.Create(ctx, blogstore.CreateInput{Title: "Original", Image: &models.Image{Data: "QQ==", ContentType: "image/gif"}})

	rec := serve(AdminRoutes(h), testutil.NewMultipartRequest(http.MethodPut, "/"+b.ID.Hex(),
		map[string]string{"title": "Renamed Post"},
		testutil.File{Field: "image", Name: "new.png", Data: testutil.PNG}))
	rec.AssertStatus(t, http.StatusOK)

	var got models.Blog
	rec.DecodeData(t, &got)
	if got.Slug != "renamed-post" {
		t.Errorf("slug = %q", got.Slug)
	}
	if got.Image == nil || got.Image.ContentType != "image/png" {
		t.Errorf("image = %+v", got.Image)
	}
}

func TestAdminList_IncludesDraftsWithoutContent(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Create(ctx, blogstore.CreateInput{Title: "Draft", Content: "body", IsPublished: false})

	rec := serve(AdminRoutes(h), testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)
	var items []models.Blog
	rec.DecodeData(t, &items)
	if len(items) != 1 || items[0].Content != "" {
		t.Errorf("items = %+v", items)
	}
}

func TestAdminByID_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := serve(AdminRoutes(h), testutil.NewRequest(method, "/zzz"))
		rec.AssertStatus(t, http.StatusNotFound)
		rec.AssertContains(t, "Blog not found")
	}
}

func TestDelete(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, _ := store.Create(ctx, blogstore.CreateInput{Title: "Bye"})

	rec := serve(AdminRoutes(h), testutil.NewRequest(http.MethodDelete, "/"+b.ID.Hex()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Blog deleted successfully")

	if n, _ := store.Count(ctx); n != 0 {
		t.Errorf("Count() = %d after delete", n)
	}
}
