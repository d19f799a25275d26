package blogstore

import (
	"fmt"
	"testing"
	"time"

	"github.com/dalemusser/stratacms/internal/app/store/storeutil"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/dalemusser/stratacms/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr[T any](v T) *T { return &v }

func newBlog(title string) CreateInput {
	return CreateInput{
		Title:       title,
		Excerpt:     "excerpt",
		Content:     "<p>content</p>",
		Author:      "A S Gupta",
		IsPublished: true,
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, err := store.Create(ctx, newBlog("Budget 2025: What Changes?"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if b.Slug != "budget-2025-what-changes" {
		t.Errorf("Slug = %q", b.Slug)
	}
	if b.Category != models.DefaultBlogCategory {
		t.Errorf("Category = %q, want %q", b.Category, models.DefaultBlogCategory)
	}

	if _, err := store.Create(ctx, newBlog("Budget 2025 - what changes")); err != ErrDuplicateSlug {
		t.Errorf("duplicate Create() error = %v, want ErrDuplicateSlug", err)
	}
}

func TestStore_ViewPublished_CountsEachRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, _ := store.Create(ctx, newBlog("GST Basics"))

	const n = 4
	for i := 0; i < n; i++ {
		got, err := store.ViewPublished(ctx, b.Slug)
		if err != nil {
			t.Fatalf("ViewPublished() error = %v", err)
		}
		if got.Views != int64(i+1) {
			t.Errorf("read %d: Views = %d, want %d", i, got.Views, i+1)
		}
	}

	stored, _ := store.GetByID(ctx, b.ID)
	if stored.Views != n {
		t.Errorf("stored Views = %d, want %d", stored.Views, n)
	}
}

func TestStore_ViewPublished_Unpublished(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := newBlog("Draft Post")
	in.IsPublished = false
	b, _ := store.Create(ctx, in)

	if _, err := store.ViewPublished(ctx, b.Slug); err != ErrNotFound {
		t.Errorf("ViewPublished(draft) error = %v, want ErrNotFound", err)
	}
	if _, err := store.ViewPublished(ctx, "missing"); err != ErrNotFound {
		t.Errorf("ViewPublished(missing) error = %v, want ErrNotFound", err)
	}

	stored, _ := store.GetByID(ctx, b.ID)
	if stored.Views != 0 {
		t.Errorf("draft Views = %d, want 0", stored.Views)
	}
}

func TestStore_List_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 25; i++ {
		if _, err := store.Create(ctx, newBlog(fmt.Sprintf("Post %02d", i))); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	page2, err := store.List(ctx, ListOptions{PublishedOnly: true}, storeutil.PageRequest{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page2.Items) != 10 || page2.Pages != 3 || page2.Total != 25 {
		t.Errorf("page 2: items=%d pages=%d total=%d", len(page2.Items), page2.Pages, page2.Total)
	}

	page3, _ := store.List(ctx, ListOptions{PublishedOnly: true}, storeutil.PageRequest{Page: 3, Limit: 10})
	if len(page3.Items) != 5 {
		t.Errorf("page 3 items = %d, want 5", len(page3.Items))
	}
}

func TestStore_List_PublicFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	old := newBlog("Old GST Post")
	old.Category = "GST"
	old.IsFeatured = true
	store.Create(ctx, old)

	time.Sleep(5 * time.Millisecond)
	recent := newBlog("Recent GST Post")
	recent.Category = "GST"
	store.Create(ctx, recent)

	other := newBlog("Income Tax Post")
	other.Category = "Income Tax"
	store.Create(ctx, other)

	draft := newBlog("Draft GST Post")
	draft.Category = "GST"
	draft.IsPublished = false
	store.Create(ctx, draft)

	page, err := store.List(ctx, ListOptions{
		PublishedOnly:  true,
		Category:       "GST",
		FeaturedFirst:  true,
		ExcludeContent: true,
	}, storeutil.PageRequest{Page: 1, Limit: 9})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	if page.Items[0].Title != "Old GST Post" {
		t.Errorf("first = %q, want featured post first", page.Items[0].Title)
	}
	for _, b := range page.Items {
		if b.Content != "" {
			t.Errorf("%q content should be excluded", b.Title)
		}
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, _ := store.Create(ctx, newBlog("Company Law Update"))

	got, err := store.Update(ctx, b.ID, UpdateInput{IsPublished: ptr(false), Category: ptr("Company Law")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.IsPublished || got.Category != "Company Law" || got.Slug != "company-law-update" {
		t.Errorf("Update() = %+v", got)
	}

	got, _ = store.Update(ctx, b.ID, UpdateInput{Title: ptr("Company Law Changes")})
	if got.Slug != "company-law-changes" {
		t.Errorf("Slug = %q, want company-law-changes", got.Slug)
	}

	if _, err := store.Update(ctx, primitive.NewObjectID(), UpdateInput{}); err != ErrNotFound {
		t.Errorf("Update(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestStore_Recent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 7; i++ {
		store.Create(ctx, newBlog(fmt.Sprintf("Recent %d", i)))
	}
	// force a known newest entry
	db.Collection(Collection).UpdateOne(ctx, bson.M{"slug": "recent-3"},
		bson.M{"$set": bson.M{"created_at": time.Now().Add(time.Hour)}})

	got, err := store.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0].Slug != "recent-3" {
		t.Errorf("newest = %q, want recent-3", got[0].Slug)
	}
	if got[0].Excerpt != "" || got[0].Author != "" {
		t.Errorf("Recent() should project summary fields only, got %+v", got[0])
	}
}
