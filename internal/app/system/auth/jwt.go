// internal/app/system/auth/jwt.go
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier validates HMAC-signed bearer tokens issued by the
// upstream identity service. The subject claim carries the user id;
// the custom "admin" claim carries the admin flag.
type JWTVerifier struct {
	key []byte
}

// NewJWTVerifier creates a verifier for tokens signed with the shared
// HMAC key.
func NewJWTVerifier(signingKey string) *JWTVerifier {
	return &JWTVerifier{key: []byte(signingKey)}
}

type identityClaims struct {
	Admin bool `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Verify parses and validates the token, returning the embedded
// identity. Any parse, signature, or expiry failure maps to
// ErrInvalidToken; the caller does not learn which check failed.
func (v *JWTVerifier) Verify(_ context.Context, token string) (Identity, error) {
	var claims identityClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.key, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.Subject, IsAdmin: claims.Admin}, nil
}
