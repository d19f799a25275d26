package loginstore

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/dalemusser/stratacms/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adminID := primitive.NewObjectID()
	if err := store.Create(ctx, models.LoginRecord{AdminID: adminID, IP: "192.168.1.1"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	records, err := store.GetByAdmin(ctx, adminID, 10)
	if err != nil {
		t.Fatalf("GetByAdmin() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("GetByAdmin() returned %d records, want 1", len(records))
	}
	if records[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set automatically")
	}
	if records[0].IP != "192.168.1.1" {
		t.Errorf("IP = %q, want 192.168.1.1", records[0].IP)
	}
}

func TestStore_CreateFrom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := testutil.NewRequest(http.MethodPost, "/login")
	r.RemoteAddr = "10.0.0.1:5000"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
	r.Header.Set("User-Agent", "test-agent/1.0")

	adminID := primitive.NewObjectID()
	if err := store.CreateFrom(ctx, r, adminID); err != nil {
		t.Fatalf("CreateFrom() error = %v", err)
	}

	records, _ := store.GetByAdmin(ctx, adminID, 1)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].IP != "203.0.113.7" || records[0].UserAgent != "test-agent/1.0" {
		t.Errorf("record = %+v", records[0])
	}
}

func TestStore_GetByAdmin_NewestFirstAndLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adminID := primitive.NewObjectID()
	other := primitive.NewObjectID()
	base := time.Now().Add(-time.Hour).UTC()
	for i := 0; i < 5; i++ {
		store.Create(ctx, models.LoginRecord{AdminID: adminID, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	store.Create(ctx, models.LoginRecord{AdminID: other})

	records, err := store.GetByAdmin(ctx, adminID, 3)
	if err != nil {
		t.Fatalf("GetByAdmin() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Error("records should be newest first")
		}
	}
	if records[0].AdminID != adminID {
		t.Error("records for another admin were returned")
	}
}
