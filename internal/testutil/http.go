package testutil

import (
	"context"
	"net/http"

	"github.com/dalemusser/challengehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// UserIdentity returns an Identity for a fresh regular user.
func UserIdentity() auth.Identity {
	return auth.Identity{UserID: primitive.NewObjectID().Hex()}
}

// AdminIdentity returns an Identity with the admin flag set.
func AdminIdentity() auth.Identity {
	return auth.Identity{UserID: primitive.NewObjectID().Hex(), IsAdmin: true}
}

// WithIdentity attaches an identity to the request, bypassing the token
// middleware. Use this in handler tests for authenticated endpoints.
func WithIdentity(r *http.Request, id auth.Identity) *http.Request {
	return auth.WithIdentity(r, id)
}
