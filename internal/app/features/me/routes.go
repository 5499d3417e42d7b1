// internal/app/features/me/routes.go
package me

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /me.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/challenges", h.Challenges)
	return r
}
