// internal/app/features/tips/handler.go

// Package tips serves the read-only tip listing. Tips are seeded out of
// band; there is no write path.
package tips

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/challengehub/internal/app/features/errors"
	tipstore "github.com/dalemusser/challengehub/internal/app/store/tips"
	"github.com/dalemusser/challengehub/internal/app/system/paging"
	"github.com/dalemusser/challengehub/internal/app/system/timeouts"
	"github.com/dalemusser/challengehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	store *tipstore.Store
	errs  *uierrors.Renderer
	log   *zap.Logger
}

func NewHandler(db *mongo.Database, errs *uierrors.Renderer, logger *zap.Logger) *Handler {
	return &Handler{store: tipstore.New(db), errs: errs, log: logger}
}

type listResponse struct {
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int64        `json:"total"`
	Tips  []models.Tip `json:"tips"`
}

// List handles GET /tips.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	page := paging.Parse(r)
	tips, total, err := h.store.List(ctx, query.Get(r, "category"), page)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, listResponse{
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
		Tips:  tips,
	})
}
