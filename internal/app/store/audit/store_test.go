package audit

import (
	"testing"
	"time"

	"github.com/dalemusser/stratacms/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_EnsureIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes() error = %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes() second call error = %v", err)
	}
}

func TestStore_LogAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	actor := primitive.NewObjectID()
	events := []Event{
		{Category: CategoryAuth, EventType: EventLoginSuccess, ActorID: &actor, IP: "1.1.1.1", Success: true},
		{Category: CategoryAdmin, EventType: EventContentCreated, ActorID: &actor, Entity: EntityBlog, EntityID: "b1", Success: true},
		{Category: CategoryAdmin, EventType: EventContentDeleted, ActorID: &actor, Entity: EntityFAQ, EntityID: "f1", Success: true},
		{Category: CategoryAuth, EventType: EventLoginFailedUnknownEmail, IP: "2.2.2.2", FailureReason: "unknown email"},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}

	admin, err := store.Query(ctx, QueryFilter{Category: CategoryAdmin})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(admin) != 2 {
		t.Errorf("admin events = %d, want 2", len(admin))
	}

	blogs, _ := store.Query(ctx, QueryFilter{Entity: EntityBlog})
	if len(blogs) != 1 || blogs[0].EntityID != "b1" {
		t.Errorf("blog events = %+v", blogs)
	}

	byActor, _ := store.Count(ctx, QueryFilter{ActorID: &actor})
	if byActor != 3 {
		t.Errorf("Count(actor) = %d, want 3", byActor)
	}

	page, _ := store.Query(ctx, QueryFilter{Limit: 2, Offset: 3})
	if len(page) != 1 {
		t.Errorf("Query(offset 3) = %d events, want 1", len(page))
	}
}

func TestStore_FailedLogins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Log(ctx, Event{Category: CategoryAuth, EventType: EventLoginFailedWrongPassword})
	store.Log(ctx, Event{Category: CategoryAuth, EventType: EventLoginLockedOut})
	store.Log(ctx, Event{Category: CategoryAuth, EventType: EventLoginSuccess, Success: true})
	store.Log(ctx, Event{
		Category:  CategoryAuth,
		EventType: EventLoginFailedUnknownEmail,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	})

	got, err := store.FailedLogins(ctx, time.Now().Add(-time.Hour), 10)
	if err != nil {
		t.Fatalf("FailedLogins() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("FailedLogins() = %d, want 2", len(got))
	}
}
