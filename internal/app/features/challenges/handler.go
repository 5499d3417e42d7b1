// internal/app/features/challenges/handler.go
package challenges

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	uierrors "github.com/dalemusser/challengehub/internal/app/features/errors"
	challengestore "github.com/dalemusser/challengehub/internal/app/store/challenges"
	membershipstore "github.com/dalemusser/challengehub/internal/app/store/memberships"
	"github.com/dalemusser/challengehub/internal/app/store/queries/challengequeries"
	"github.com/dalemusser/challengehub/internal/app/system/apperr"
	"github.com/dalemusser/challengehub/internal/app/system/authz"
	"github.com/dalemusser/challengehub/internal/app/system/metrics"
	"github.com/dalemusser/challengehub/internal/app/system/paging"
	"github.com/dalemusser/challengehub/internal/app/system/timeouts"
	"github.com/dalemusser/challengehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; challenge payloads are small.
const maxBodyBytes = 1 << 20

// Handler serves the challenge catalogue and membership endpoints.
type Handler struct {
	db          *mongo.Database
	store       *challengestore.Store
	memberships *membershipstore.Store
	errs        *uierrors.Renderer
	sanitize    *bluemonday.Policy
	log         *zap.Logger
}

// NewHandler constructs the challenges Handler. The membership store is
// built here so no other component can reach the join internals.
func NewHandler(db *mongo.Database, errs *uierrors.Renderer, logger *zap.Logger) *Handler {
	return &Handler{
		db:          db,
		store:       challengestore.New(db),
		memberships: membershipstore.New(db.Client(), db),
		errs:        errs,
		sanitize:    bluemonday.StrictPolicy(),
		log:         logger,
	}
}

// List handles GET /challenges.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	page := paging.Parse(r)
	filter := challengequeries.Filter{
		Category:        query.Get(r, "category"),
		StartDate:       query.Get(r, "startDate"),
		EndDate:         query.Get(r, "endDate"),
		ParticipantsMin: query.Get(r, "participantsMin"),
		ParticipantsMax: query.Get(r, "participantsMax"),
		Search:          query.Get(r, "search"),
	}

	res, err := challengequeries.List(ctx, h.db, filter, page)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, listResponse{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      res.Total,
		Challenges: res.Items,
	})
}

// Get handles GET /challenges/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	ch, err := h.store.GetByID(ctx, id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, ch)
}

// Create handles POST /challenges. The caller's identity, when
// present, becomes the challenge owner; anonymous creates leave the
// owner unset, and an ownerless challenge is admin-managed.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var ownerID *primitive.ObjectID
	if uid, _, ok := authz.UserCtx(r); ok {
		ownerID = &uid
	}

	var req createRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	start, end, err := req.validate()
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}
	ch := models.Challenge{
		Slug:            req.Slug,
		Title:           h.sanitize.Sanitize(req.Title),
		Description:     h.sanitize.Sanitize(req.Description),
		Category:        req.Category,
		Tags:            []string(req.Tags),
		StartDate:       start,
		EndDate:         &end,
		OwnerID:         ownerID,
		MaxParticipants: req.MaxParticipants,
		IsPublished:     published,
		Location:        h.sanitize.Sanitize(req.Location),
		Image:           req.Image,
		Metadata:        req.Metadata,
	}

	created, err := h.store.Create(ctx, ch)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	owner := ""
	if ownerID != nil {
		owner = ownerID.Hex()
	}
	h.log.Info("challenge created",
		zap.String("challenge_id", created.ID.Hex()),
		zap.String("slug", created.Slug),
		zap.String("owner_id", owner))
	uierrors.WriteJSON(w, http.StatusCreated, created)
}

// Update handles PATCH /challenges/{id}. Owner or admin only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	current, err := h.store.GetByID(ctx, id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	if !authz.CanManageChallenge(r, current.OwnerID) {
		h.errs.Write(w, r, apperr.New(apperr.Authorization, "only the owner or an admin may modify this challenge"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.errs.Write(w, r, apperr.New(apperr.Validation, "unable to read request body"))
		return
	}
	set, err := parseUpdate(body)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	for _, key := range []string{"title", "description", "location"} {
		if s, ok := set[key].(string); ok {
			set[key] = h.sanitize.Sanitize(s)
		}
	}

	updated, err := h.store.Update(ctx, id, set)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /challenges/{id}. Owner or admin only; the
// challenge's membership rows are removed with it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	current, err := h.store.GetByID(ctx, id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	if !authz.CanManageChallenge(r, current.OwnerID) {
		h.errs.Write(w, r, apperr.New(apperr.Authorization, "only the owner or an admin may delete this challenge"))
		return
	}

	if err := h.memberships.DeleteChallenge(ctx, id); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	h.log.Info("challenge deleted",
		zap.String("challenge_id", id.Hex()),
		zap.String("slug", current.Slug))
	w.WriteHeader(http.StatusNoContent)
}

// Join handles POST /challenges/{id}/join.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	userID, _, ok := authz.UserCtx(r)
	if !ok {
		metrics.ObserveJoin("invalid_identity")
		h.errs.Write(w, r, apperr.New(apperr.Validation, "joining a challenge requires a signed-in user"))
		return
	}
	id, err := pathID(r)
	if err != nil {
		metrics.ObserveJoin("invalid_id")
		h.errs.Write(w, r, err)
		return
	}

	joinID := uuid.NewString()
	uc, err := h.memberships.Join(ctx, userID, id)
	if err != nil {
		metrics.ObserveJoin(joinOutcome(err))
		h.log.Info("join rejected",
			zap.String("join_id", joinID),
			zap.String("challenge_id", id.Hex()),
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
		h.errs.Write(w, r, err)
		return
	}

	metrics.ObserveJoin("joined")
	h.log.Info("join accepted",
		zap.String("join_id", joinID),
		zap.String("challenge_id", id.Hex()),
		zap.String("user_id", userID.Hex()))
	uierrors.WriteJSON(w, http.StatusCreated, uc)
}

func joinOutcome(err error) string {
	switch {
	case err == nil:
		return "joined"
	case err == membershipstore.ErrDuplicateMembership:
		return "duplicate"
	case err == membershipstore.ErrChallengeFull:
		return "full"
	default:
		return "error"
	}
}

// pathID parses the {id} URL parameter as an ObjectID.
func pathID(r *http.Request) (primitive.ObjectID, error) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.New(apperr.Validation, "challenge id must be a 24-character hex string")
	}
	return id, nil
}

// decodeBody decodes a bounded JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return apperr.New(apperr.Validation, "request body is not valid JSON")
	}
	return nil
}
