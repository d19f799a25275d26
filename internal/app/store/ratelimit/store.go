// internal/app/store/ratelimit/store.go
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratacms/internal/app/system/normalize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds one lockout record per admin email.
const Collection = "login_attempts"

// Attempt is the failed-login state for one admin email.
type Attempt struct {
	Email        string     `bson:"_id"`
	AttemptCount int        `bson:"attempt_count"` // failures in the current window
	WindowStart  time.Time  `bson:"window_start"`
	LockedUntil  *time.Time `bson:"locked_until"`
	LastAttempt  time.Time  `bson:"last_attempt"` // TTL anchor
	CreatedAt    time.Time  `bson:"created_at"`
}

// Store tracks failed admin logins and locks an email out after too many.
type Store struct {
	c           *mongo.Collection
	maxAttempts int
	window      time.Duration
	lockout     time.Duration
}

// New creates a Store that locks an email for lockout once maxAttempts
// failures land inside window.
func New(db *mongo.Database, maxAttempts int, window, lockout time.Duration) *Store {
	return &Store{
		c:           db.Collection(Collection),
		maxAttempts: maxAttempts,
		window:      window,
		lockout:     lockout,
	}
}

// EnsureIndexes expires records a day after the last attempt.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "last_attempt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(86400).SetName("idx_login_attempts_ttl"),
	})
	return err
}

// Status is the outcome of Check.
type Status struct {
	Allowed     bool
	Remaining   int        // attempts left before lockout, -1 while locked
	LockedUntil *time.Time // set while locked
}

// Check reports whether email may attempt a login now. Store errors are
// returned alongside an allowing Status so callers can fail open.
func (s *Store) Check(ctx context.Context, email string) (Status, error) {
	now := time.Now()
	open := Status{Allowed: true, Remaining: s.maxAttempts}

	var a Attempt
	err := s.c.FindOne(ctx, bson.M{"_id": normalize.Email(email)}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return open, nil
	}
	if err != nil {
		return open, err
	}

	if a.LockedUntil != nil && now.Before(*a.LockedUntil) {
		return Status{Remaining: -1, LockedUntil: a.LockedUntil}, nil
	}
	if a.LockedUntil != nil || now.After(a.WindowStart.Add(s.window)) {
		return open, nil
	}
	remaining := s.maxAttempts - a.AttemptCount
	if remaining <= 0 {
		return Status{Remaining: 0}, nil
	}
	return Status{Allowed: true, Remaining: remaining}, nil
}

// RecordFailure counts one failed login for email in a single upsert and
// returns the lockout expiry when this failure reached the limit.
func (s *Store) RecordFailure(ctx context.Context, email string) (*time.Time, error) {
	now := time.Now()
	lockUntil := now.Add(s.lockout)

	// A new window starts when there is none yet, the old one has passed,
	// or a previous lockout has expired.
	fresh := bson.M{"$or": bson.A{
		bson.M{"$eq": bson.A{bson.M{"$ifNull": bson.A{"$window_start", nil}}, nil}},
		bson.M{"$lt": bson.A{"$window_start", now.Add(-s.window)}},
		bson.M{"$lt": bson.A{bson.M{"$ifNull": bson.A{"$locked_until", now}}, now}},
	}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"window_start":  bson.M{"$cond": bson.A{fresh, now, "$window_start"}},
			"attempt_count": bson.M{"$cond": bson.A{fresh, 1, bson.M{"$add": bson.A{"$attempt_count", 1}}}},
			"last_attempt":  now,
			"created_at":    bson.M{"$ifNull": bson.A{"$created_at", now}},
		}}},
		{{Key: "$set", Value: bson.M{
			"locked_until": bson.M{"$cond": bson.A{
				bson.M{"$gte": bson.A{"$attempt_count", s.maxAttempts}}, lockUntil, nil,
			}},
		}}},
	}

	var a Attempt
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": normalize.Email(email)}, pipeline, opts).Decode(&a); err != nil {
		return nil, err
	}
	return a.LockedUntil, nil
}

// Clear forgets the failures for email after a successful login.
func (s *Store) Clear(ctx context.Context, email string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": normalize.Email(email)})
	return err
}

// Get returns the record for email, or nil when there is none.
func (s *Store) Get(ctx context.Context, email string) (*Attempt, error) {
	var a Attempt
	err := s.c.FindOne(ctx, bson.M{"_id": normalize.Email(email)}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
