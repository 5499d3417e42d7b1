// internal/app/features/challenges/routes.go
package challenges

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /challenges. joinLimit
// guards the join endpoint; pass nil to mount it unguarded (tests).
func Routes(h *Handler, joinLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	if joinLimit != nil {
		r.With(joinLimit).Post("/{id}/join", h.Join)
	} else {
		r.Post("/{id}/join", h.Join)
	}

	return r
}
