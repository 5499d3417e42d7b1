// internal/app/features/events/handler.go

// Package events serves the read-only event listing. Events are seeded
// out of band; there is no write path.
package events

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/challengehub/internal/app/features/errors"
	eventstore "github.com/dalemusser/challengehub/internal/app/store/events"
	"github.com/dalemusser/challengehub/internal/app/system/dates"
	"github.com/dalemusser/challengehub/internal/app/system/paging"
	"github.com/dalemusser/challengehub/internal/app/system/timeouts"
	"github.com/dalemusser/challengehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	store *eventstore.Store
	errs  *uierrors.Renderer
	log   *zap.Logger
}

func NewHandler(db *mongo.Database, errs *uierrors.Renderer, logger *zap.Logger) *Handler {
	return &Handler{store: eventstore.New(db), errs: errs, log: logger}
}

type listResponse struct {
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Total  int64          `json:"total"`
	Events []models.Event `json:"events"`
}

// List handles GET /events: upcoming events, soonest first. An optional
// "from" date moves the horizon; it defaults to now.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	from := time.Now().UTC()
	if t := dates.ParseLenient(query.Get(r, "from")); t != nil {
		from = *t
	}

	page := paging.Parse(r)
	events, total, err := h.store.ListUpcoming(ctx, from, page)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, listResponse{
		Page:   page.Page,
		Limit:  page.Limit,
		Total:  total,
		Events: events,
	})
}
