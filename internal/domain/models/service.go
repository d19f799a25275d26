// internal/domain/models/service.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is one of the firm's practice areas shown on the public site.
//
// Image mirrors Images[0] for clients that predate multi-image support.
type Service struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title            string             `bson:"title" json:"title"`
	Slug             string             `bson:"slug" json:"slug"`
	ShortDescription string             `bson:"short_description" json:"shortDescription"`
	Content          string             `bson:"content" json:"content"`
	Icon             string             `bson:"icon" json:"icon"`
	Image            *Image             `bson:"image,omitempty" json:"image,omitempty"`
	Images           []Image            `bson:"images" json:"images"`
	SubServices      []SubService       `bson:"sub_services" json:"subServices"`
	IsActive         bool               `bson:"is_active" json:"isActive"`
	Order            int                `bson:"order" json:"order"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// SubService is embedded in a Service and has no lifecycle of its own.
type SubService struct {
	Title            string  `bson:"title" json:"title"`
	Slug             string  `bson:"slug" json:"slug"`
	ShortDescription string  `bson:"short_description" json:"shortDescription"`
	Content          string  `bson:"content" json:"content"`
	Images           []Image `bson:"images" json:"images"`
	IsActive         bool    `bson:"is_active" json:"isActive"`
	Order            int     `bson:"order" json:"order"`
}

// DefaultServiceIcon is used when a service is created without an icon.
const DefaultServiceIcon = "FileText"
