// internal/domain/models/contact.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a contact-form submission. Only IsRead, IsReplied and Notes
// change after creation.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"` // lowercase
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	IsRead    bool               `bson:"is_read" json:"isRead"`
	IsReplied bool               `bson:"is_replied" json:"isReplied"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Contact field limits
const (
	MaxContactNameLength    = 100
	MaxContactPhoneLength   = 20
	MaxContactSubjectLength = 200
	MaxContactMessageLength = 5000
)
