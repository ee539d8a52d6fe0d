// internal/app/features/adminusers/routes.go
package adminusers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the admin account views. The caller
// supplies the role guard; the token guard is applied further up where
// the router is mounted.
func Routes(h *Handler, requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireAdmin)
	r.Get("/", h.ServeList)
	r.Patch("/{id}/status", h.HandleStatusToggle)
	return r
}
