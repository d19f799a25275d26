// internal/app/features/stats/handler.go
package statsfeature

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/stratacms/internal/app/features/errors"
	blogstore "github.com/dalemusser/stratacms/internal/app/store/blogs"
	contactstore "github.com/dalemusser/stratacms/internal/app/store/contacts"
	servicestore "github.com/dalemusser/stratacms/internal/app/store/services"
	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/stratacms/internal/app/system/timeouts"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// recentLimit is how many contacts and blogs the dashboard lists.
const recentLimit = 5

// Handler serves the admin dashboard statistics.
type Handler struct {
	services *servicestore.Store
	blogs    *blogstore.Store
	contacts *contactstore.Store
	errLog   *errorsfeature.ErrorLogger
	log      *zap.Logger
}

// NewHandler creates a new stats handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		services: servicestore.New(db),
		blogs:    blogstore.New(db),
		contacts: contactstore.New(db),
		errLog:   errLog,
		log:      logger,
	}
}

// ServeDashboard handles GET /api/admin/stats.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var resp Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		resp.ServicesCount, err = h.services.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.BlogsCount, err = h.blogs.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.ContactsCount, err = h.contacts.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.UnreadContacts, err = h.contacts.CountUnread(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.RecentContacts, err = h.contacts.Recent(gctx, recentLimit)
		return err
	})
	g.Go(func() error {
		items, err := h.blogs.Recent(gctx, recentLimit)
		for _, b := range items {
			resp.RecentBlogs = append(resp.RecentBlogs, RecentBlog{
				ID:        b.ID.Hex(),
				Title:     b.Title,
				Slug:      b.Slug,
				Views:     b.Views,
				CreatedAt: b.CreatedAt,
			})
		}
		return err
	})

	if err := g.Wait(); err != nil {
		h.errLog.Log(r, "failed to load dashboard stats", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}

	if resp.RecentContacts == nil {
		resp.RecentContacts = []models.Contact{}
	}
	if resp.RecentBlogs == nil {
		resp.RecentBlogs = []RecentBlog{}
	}
	jsonutil.OK(w, resp)
}
