package aboutus

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the public router, mounted at /api/aboutus.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.show)
	return r
}

// AdminRoutes returns the admin router, mounted at /api/admin/aboutus.
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.adminShow)
	r.Put("/", h.update)
	return r
}
