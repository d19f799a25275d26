package categories

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes returns the admin router, mounted at /api/admin/categories.
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}
