// internal/app/features/stats/routes.go
package statsfeature

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes returns the router mounted at /api/admin/stats. The caller
// applies the admin guard.
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ServeDashboard)
	return r
}
