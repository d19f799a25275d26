// internal/domain/models/category.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category names a group of FAQs or blogs. FAQ.Category and Blog.Category
// copy Name by value, so renames must be cascaded.
type Category struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Type     string             `bson:"type" json:"type"`
	Icon     string             `bson:"icon" json:"icon"`
	Order    int                `bson:"order" json:"order"`
	IsActive bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Category types
const (
	CategoryTypeFAQ  = "faq"
	CategoryTypeBlog = "blog"
)

// DefaultCategoryIcon is used when a category is created without an icon.
const DefaultCategoryIcon = "HelpCircle"

// AllCategoryTypes returns all valid category types.
func AllCategoryTypes() []string {
	return []string{
		CategoryTypeFAQ,
		CategoryTypeBlog,
	}
}

// IsValidCategoryType checks if a category type is valid.
func IsValidCategoryType(t string) bool {
	for _, v := range AllCategoryTypes() {
		if v == t {
			return true
		}
	}
	return false
}
