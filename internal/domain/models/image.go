// internal/domain/models/image.go
package models

// Image is an uploaded picture stored inline on its owning document.
// Data holds the base64 encoding of the raw bytes.
type Image struct {
	Data        string `bson:"data" json:"data,omitempty"`
	ContentType string `bson:"content_type" json:"contentType,omitempty"`
}

// MaxServiceImages caps Service.Images and SubService.Images.
const MaxServiceImages = 3

// MaxTeamImages caps the number of team photos accepted in one About Us update.
const MaxTeamImages = 10

// IsZero reports whether the image carries no data.
func (i *Image) IsZero() bool {
	return i == nil || i.Data == ""
}
