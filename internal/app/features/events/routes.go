// internal/app/features/events/routes.go
package events

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /events.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}
