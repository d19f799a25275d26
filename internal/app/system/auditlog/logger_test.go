package auditlog

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/stratacms/internal/app/store/audit"
	"github.com/dalemusser/stratacms/internal/app/system/auth"
	"github.com/dalemusser/stratacms/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidMode(t *testing.T) {
	for _, m := range []string{"all", "db", "log", "off"} {
		if !ValidMode(m) {
			t.Errorf("ValidMode(%q) = false", m)
		}
	}
	if ValidMode("ALL") || ValidMode("") {
		t.Error("ValidMode should reject unknown values")
	}
}

func TestLogger_NilIsNoop(t *testing.T) {
	var l *Logger
	r := httptest.NewRequest("POST", "/api/auth/login", nil)
	l.LoginFailedUnknownEmail(r, "nobody@example.com")
}

func TestLogger_Modes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	core, logs := observer.New(zap.InfoLevel)
	l := New(store, zap.New(core), Config{Auth: ModeLog, Admin: ModeDB})

	r := httptest.NewRequest("POST", "/api/auth/login", nil)
	r.RemoteAddr = "203.0.113.9:4000"
	adminID := primitive.NewObjectID()
	l.LoginSuccess(r, adminID, "admin@example.com")

	if logs.Len() != 1 {
		t.Fatalf("zap entries = %d, want 1", logs.Len())
	}
	entry := logs.All()[0]
	if entry.ContextMap()["ip"] != "203.0.113.9" {
		t.Errorf("ip field = %v", entry.ContextMap()["ip"])
	}
	if n, _ := store.Count(ctx, audit.QueryFilter{Category: audit.CategoryAuth}); n != 0 {
		t.Errorf("auth events in db = %d, want 0 in log mode", n)
	}

	admin := &auth.Admin{ID: adminID, Email: "admin@example.com"}
	req := auth.WithAdmin(httptest.NewRequest("DELETE", "/api/admin/faqs/x", nil), admin)
	l.Deleted(req, audit.EntityFAQ, "x")

	if logs.Len() != 1 {
		t.Errorf("admin event should not reach zap in db mode")
	}
	events, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAdmin})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("admin events = %d, want 1", len(events))
	}
	got := events[0]
	if got.ActorID == nil || *got.ActorID != adminID || got.Entity != audit.EntityFAQ || got.EntityID != "x" {
		t.Errorf("stored event = %+v", got)
	}
}

func TestLogger_Off(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	core, logs := observer.New(zap.DebugLevel)
	l := New(store, zap.New(core), Config{Auth: ModeOff, Admin: ModeOff})

	r := httptest.NewRequest("POST", "/", nil)
	l.LoginLockedOut(r, "x@example.com")
	l.Seeded(r, audit.EntityFAQ, 20)

	if logs.Len() != 0 {
		t.Errorf("zap entries = %d, want 0", logs.Len())
	}
	if n, _ := store.Count(ctx, audit.QueryFilter{}); n != 0 {
		t.Errorf("stored events = %d, want 0", n)
	}
}
