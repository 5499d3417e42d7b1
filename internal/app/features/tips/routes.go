// internal/app/features/tips/routes.go
package tips

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /tips.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}
