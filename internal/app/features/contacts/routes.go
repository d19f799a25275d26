package contacts

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the public router, mounted at /api/contact.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.submit)
	return r
}

// AdminRoutes returns the admin inbox router, mounted at /api/admin/contacts.
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Put("/{id}/read", h.markRead)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}
