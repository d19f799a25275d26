// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Content and admin collections
	ensure("admins", adminsSchema())
	ensure("services", servicesSchema())
	ensure("blogs", blogsSchema())
	ensure("faqs", faqsSchema())
	ensure("categories", categoriesSchema())
	ensure("contacts", contactsSchema())
	ensure("aboutus", aboutUsSchema())
	ensure("audit_logs", nil)
	ensure("login_attempts", nil)
	ensure("login_records", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	slugStr  = bson.M{"bsonType": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"}
	number   = bson.M{"bsonType": bson.A{"int", "long"}}
	image    = bson.M{
		"bsonType": "object",
		"properties": bson.M{
			"data":         bson.M{"bsonType": "string"},
			"content_type": bson.M{"bsonType": "string", "pattern": "^image/"},
		},
	}
)

func maxLen(n int) bson.M {
	return bson.M{"bsonType": "string", "maxLength": n}
}

func object(required bson.A, props bson.M) bson.M {
	schema := bson.M{"bsonType": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return bson.M{"$jsonSchema": schema}
}

func adminsSchema() bson.M {
	return object(bson.A{"email", "email_ci", "password_hash"}, bson.M{
		"email":         nonBlank,
		"email_ci":      nonBlank,
		"password_hash": nonBlank,
		"name":          bson.M{"bsonType": "string"},
	})
}

func servicesSchema() bson.M {
	return object(bson.A{"title", "slug", "short_description", "is_active"}, bson.M{
		"title":             nonBlank,
		"slug":              slugStr,
		"short_description": maxLen(300),
		"image":             image,
		"images":            bson.M{"bsonType": bson.A{"array", "null"}, "maxItems": 3, "items": image},
		"is_active":         bson.M{"bsonType": "bool"},
		"order":             number,
	})
}

func blogsSchema() bson.M {
	return object(bson.A{"title", "slug", "excerpt", "author"}, bson.M{
		"title":        nonBlank,
		"slug":         slugStr,
		"excerpt":      maxLen(300),
		"author":       bson.M{"bsonType": "string"},
		"category":     bson.M{"bsonType": "string"},
		"image":        image,
		"is_published": bson.M{"bsonType": "bool"},
		"is_featured":  bson.M{"bsonType": "bool"},
		"views":        bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
	})
}

func faqsSchema() bson.M {
	return object(bson.A{"question", "answer", "category"}, bson.M{
		"question":  nonBlank,
		"answer":    nonBlank,
		"category":  nonBlank,
		"is_active": bson.M{"bsonType": "bool"},
		"order":     number,
	})
}

func categoriesSchema() bson.M {
	return object(bson.A{"name", "type"}, bson.M{
		"name":      nonBlank,
		"type":      bson.M{"enum": bson.A{"faq", "blog"}},
		"icon":      bson.M{"bsonType": "string"},
		"order":     number,
		"is_active": bson.M{"bsonType": "bool"},
	})
}

func contactsSchema() bson.M {
	return object(bson.A{"name", "email", "subject", "message"}, bson.M{
		"name":       maxLen(100),
		"email":      bson.M{"bsonType": "string", "pattern": "^[^@\\s]+@[^@\\s]+$"},
		"phone":      maxLen(20),
		"subject":    maxLen(200),
		"message":    maxLen(5000),
		"is_read":    bson.M{"bsonType": "bool"},
		"is_replied": bson.M{"bsonType": "bool"},
	})
}

func aboutUsSchema() bson.M {
	return object(nil, bson.M{
		"_id":          bson.M{"enum": bson.A{"aboutus"}},
		"team_members": bson.M{"bsonType": bson.A{"array", "null"}, "items": bson.M{"bsonType": "object", "required": bson.A{"name", "designation"}}},
	})
}
