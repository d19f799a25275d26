// Package testutil holds the MongoDB and HTTP helpers shared by package tests.
package testutil

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/stratacms/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTestURI = "mongodb://localhost:27017"
	// dbPrefix starts every test database name.
	dbPrefix = "stratacms_test_"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// testURI honours STRATACMS_TEST_MONGO_URI so CI can point at its own server.
func testURI() string {
	if v := strings.TrimSpace(os.Getenv("STRATACMS_TEST_MONGO_URI")); v != "" {
		return v
	}
	return defaultTestURI
}

func getClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Client().
			ApplyURI(testURI()).
			SetMaxPoolSize(200).
			SetMinPoolSize(5).
			SetMaxConnIdleTime(30 * time.Second).
			SetServerSelectionTimeout(10 * time.Second)

		client, clientErr = mongo.Connect(ctx, opts)
		if clientErr != nil {
			return
		}
		clientErr = client.Ping(ctx, nil)
	})
	return client, clientErr
}

// SetupTestDB returns an empty database private to t, with the production
// indexes in place. It is dropped again when t finishes.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	c, err := getClient()
	if err != nil {
		t.Fatalf("connect to test MongoDB at %s: %v", testURI(), err)
	}
	db := c.Database(DBName(t.Name()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Drop(ctx); err != nil {
		t.Fatalf("drop test database: %v", err)
	}
	// Unique indexes back the slug and category-name rules.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop test database on cleanup: %v", err)
		}
	})
	return db
}

// DBName maps a test name to a database name within MongoDB's 63 byte
// limit. Long names keep a readable head plus a hash of the full name, so
// sibling subtests never share a database.
func DBName(testName string) string {
	var b strings.Builder
	for _, r := range testName {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()

	const max = 63 - len(dbPrefix)
	if len(name) > max {
		sum := sha1.Sum([]byte(testName))
		suffix := hex.EncodeToString(sum[:4])
		name = name[:max-len(suffix)-1] + "_" + suffix
	}
	return dbPrefix + name
}

// TestContext returns a context with a reasonable timeout for test operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
