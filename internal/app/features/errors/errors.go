// internal/app/features/errors/errors.go

// Package errors renders API errors as a uniform JSON envelope and maps
// domain error values to HTTP status codes. Handlers return errors;
// only this package writes error responses.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	challengestore "github.com/dalemusser/challengehub/internal/app/store/challenges"
	membershipstore "github.com/dalemusser/challengehub/internal/app/store/memberships"
	"github.com/dalemusser/challengehub/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// envelope is the JSON body of every error response.
type envelope struct {
	Error errBody `json:"error"`
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Renderer writes error responses and logs the unexpected ones.
type Renderer struct {
	log *zap.Logger
}

// NewRenderer constructs a Renderer with the given logger.
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{log: logger}
}

// Write maps err to a status code and writes the JSON envelope.
//
// Store sentinels and mongo.ErrNoDocuments are translated to their
// domain kinds first, so stores never need to import apperr.
// Anything unrecognized is a 503: the caller asked for state and the
// store could not answer.
func (rd *Renderer) Write(w http.ResponseWriter, r *http.Request, err error) {
	kind, msg := classify(err)
	status := apperr.Status(kind)

	if status >= http.StatusInternalServerError {
		rd.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Error(err))
		// Internal detail stays out of the response body.
		msg = "service temporarily unavailable"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: errBody{Code: string(kind), Message: msg}})
}

func classify(err error) (apperr.Kind, string) {
	switch {
	case stderrors.Is(err, mongo.ErrNoDocuments):
		return apperr.NotFound, "not found"
	case stderrors.Is(err, challengestore.ErrDuplicateSlug):
		return apperr.Conflict, challengestore.ErrDuplicateSlug.Error()
	case stderrors.Is(err, membershipstore.ErrDuplicateMembership):
		return apperr.DuplicateMembership, membershipstore.ErrDuplicateMembership.Error()
	case stderrors.Is(err, membershipstore.ErrChallengeFull):
		return apperr.CapacityExceeded, membershipstore.ErrChallengeFull.Error()
	}

	return apperr.KindOf(err), apperr.Message(err)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
