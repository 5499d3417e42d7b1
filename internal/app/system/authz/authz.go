// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/challengehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's ObjectID, admin flag, and a found flag.
// If no identity is present or the user id is not valid ObjectID hex,
// it returns NilObjectID, false, false — callers can trust that ok=true
// means a valid store key. Fail closed on malformed ids.
func UserCtx(r *http.Request) (userID primitive.ObjectID, isAdmin bool, ok bool) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		return primitive.NilObjectID, false, false
	}
	oid, err := primitive.ObjectIDFromHex(id.UserID)
	if err != nil {
		return primitive.NilObjectID, false, false
	}
	return oid, id.IsAdmin, true
}

// IsAdmin reports whether the current request's caller holds
// administrative privilege.
func IsAdmin(r *http.Request) bool {
	_, admin, ok := UserCtx(r)
	return ok && admin
}

// CanManageChallenge reports whether the caller may mutate a challenge
// owned by ownerID. Admins always can; otherwise the caller must be the
// owner. A challenge with no owner is admin-managed only.
func CanManageChallenge(r *http.Request, ownerID *primitive.ObjectID) bool {
	userID, admin, ok := UserCtx(r)
	if !ok {
		return false
	}
	if admin {
		return true
	}
	return ownerID != nil && *ownerID == userID
}
