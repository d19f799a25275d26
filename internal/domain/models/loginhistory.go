// internal/domain/models/loginhistory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRecord captures a single successful admin login.
type LoginRecord struct {
	AdminID   primitive.ObjectID `bson:"admin_id" json:"adminId"`
	IP        string             `bson:"ip" json:"ip"`
	UserAgent string             `bson:"user_agent,omitempty" json:"userAgent,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
