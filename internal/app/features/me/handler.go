// internal/app/features/me/handler.go

// Package me serves the signed-in user's own data.
package me

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/challengehub/internal/app/features/errors"
	membershipstore "github.com/dalemusser/challengehub/internal/app/store/memberships"
	"github.com/dalemusser/challengehub/internal/app/system/apperr"
	"github.com/dalemusser/challengehub/internal/app/system/authz"
	"github.com/dalemusser/challengehub/internal/app/system/timeouts"
	"github.com/dalemusser/challengehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	memberships *membershipstore.Store
	errs        *uierrors.Renderer
	log         *zap.Logger
}

func NewHandler(db *mongo.Database, errs *uierrors.Renderer, logger *zap.Logger) *Handler {
	return &Handler{
		memberships: membershipstore.New(db.Client(), db),
		errs:        errs,
		log:         logger,
	}
}

// Challenges handles GET /me/challenges: the caller's memberships,
// newest join first.
func (h *Handler) Challenges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	userID, _, ok := authz.UserCtx(r)
	if !ok {
		h.errs.Write(w, r, apperr.New(apperr.Validation, "listing your challenges requires a signed-in user"))
		return
	}

	rows, err := h.memberships.ListByUser(ctx, userID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.UserChallenge{}
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"memberships": rows})
}
