// internal/domain/models/faq.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FAQ is a question and answer pair grouped by Category (a name, by value).
type FAQ struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Question string             `bson:"question" json:"question"`
	Answer   string             `bson:"answer" json:"answer"`
	Category string             `bson:"category" json:"category"`
	IsActive bool               `bson:"is_active" json:"isActive"`
	Order    int                `bson:"order" json:"order"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DefaultFAQCategory is assigned when an FAQ is created without a category.
const DefaultFAQCategory = "General"

// FAQCategoryAll is the pseudo-category the site uses to mean "no filter".
const FAQCategoryAll = "All"
