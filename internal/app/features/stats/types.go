// internal/app/features/stats/types.go
package statsfeature

import (
	"time"

	"github.com/dalemusser/stratacms/internal/domain/models"
)

// Dashboard is the payload of GET /api/admin/stats.
type Dashboard struct {
	ServicesCount  int64            `json:"servicesCount"`
	BlogsCount     int64            `json:"blogsCount"`
	ContactsCount  int64            `json:"contactsCount"`
	UnreadContacts int64            `json:"unreadContacts"`
	RecentContacts []models.Contact `json:"recentContacts"`
	RecentBlogs    []RecentBlog     `json:"recentBlogs"`
}

// RecentBlog is the trimmed blog shown on the dashboard; content and
// image data are left out.
type RecentBlog struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
}
