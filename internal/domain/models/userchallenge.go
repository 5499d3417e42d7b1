// internal/domain/models/userchallenge.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership status values. Only "joined" is assigned today; the
// enumeration exists because the original data model reserves room for
// progress tracking.
const MembershipJoined = "joined"

// UserChallenge is the authoritative join between users and challenges.
// Exactly one document per (user_id, challenge_id); created only by the
// membership store's Join.
type UserChallenge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	ChallengeID primitive.ObjectID `bson:"challenge_id" json:"challenge_id"`

	Status   string  `bson:"status" json:"status"`
	Progress float64 `bson:"progress" json:"progress"`

	JoinedAt  time.Time `bson:"joined_at" json:"joined_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	Meta map[string]any `bson:"meta,omitempty" json:"meta,omitempty"`
}
