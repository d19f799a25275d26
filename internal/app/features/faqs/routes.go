package faqs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the public router, mounted at /api/faq.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/categories", h.categoryCounts)
	return r
}

// AdminRoutes returns the admin router, mounted at /api/admin/faqs.
// Bodies are JSON.
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.adminList)
	r.Post("/", h.create)
	r.Get("/{id}", h.adminShow)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}
