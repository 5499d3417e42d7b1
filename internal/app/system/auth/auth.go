// internal/app/system/auth/auth.go

// Package auth resolves the caller's identity for each request.
//
// Identity verification is pluggable: a Verifier turns a bearer token
// into an Identity. The production verifier checks HMAC-signed JWTs
// (jwt.go); tests and local development use the static map-backed
// verifier (static.go). Handlers never see tokens, only the Identity
// loaded into the request context.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Identity is what the rest of the app knows about a caller: a string
// user id usable as a store key, and whether the caller holds
// administrative privilege.
type Identity struct {
	UserID  string
	IsAdmin bool
}

// ErrInvalidToken is returned by a Verifier for malformed, expired, or
// improperly signed tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier resolves a bearer token to an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentIdentity returns the caller's identity and a found flag.
// ok=false means the request is anonymous.
func CurrentIdentity(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity injects an identity into the request context.
// Exported for handler tests.
func WithIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// LoadIdentity is middleware that resolves the Authorization header
// through the verifier and stores the result in the request context.
// A missing header leaves the request anonymous; a present but invalid
// token is rejected with 401 so a caller never proceeds with a token
// they believe is valid.
func LoadIdentity(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := v.Verify(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, WithIdentity(r, id))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
