package services

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the public router, mounted at /api/services:
//   - GET /        active services, image payloads omitted
//   - GET /{slug}  one active service
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/{slug}", h.showBySlug)
	return r
}

// AdminRoutes returns the admin router, mounted at /api/admin/services
// behind the admin token check.
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.adminList)
	r.Post("/", h.create)
	r.Get("/{id}", h.adminShow)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}
