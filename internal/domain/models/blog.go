// internal/domain/models/blog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is an article published on the site. Category holds a category
// name by value, not an id.
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Excerpt     string             `bson:"excerpt" json:"excerpt"`
	Content     string             `bson:"content,omitempty" json:"content,omitempty"`
	Image       *Image             `bson:"image,omitempty" json:"image,omitempty"`
	Author      string             `bson:"author" json:"author"`
	Category    string             `bson:"category" json:"category"`
	IsPublished bool               `bson:"is_published" json:"isPublished"`
	IsFeatured  bool               `bson:"is_featured" json:"isFeatured"`
	Views       int64              `bson:"views" json:"views"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DefaultBlogCategory is assigned when a blog is created without a category.
const DefaultBlogCategory = "Others"

// MaxExcerptLength bounds Blog.Excerpt and the short descriptions on services.
const MaxExcerptLength = 300
