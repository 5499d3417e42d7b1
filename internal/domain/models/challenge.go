// internal/domain/models/challenge.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Challenge is a time-bounded group activity users can join.
//
// NOTE:
//   - Participants is the authoritative denormalized count of
//     user_challenges rows for this challenge. Only the membership
//     store's join path may increment it.
//   - Slug is globally unique (enforced by a unique index, never
//     pre-checked).
//   - Optional attributes use pointer types so "absent" and "zero"
//     stay distinguishable in both BSON and JSON.
type Challenge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug        string             `bson:"slug" json:"slug"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Tags        []string           `bson:"tags" json:"tags"`

	StartDate time.Time  `bson:"start_date" json:"start_date"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`

	OwnerID *primitive.ObjectID `bson:"owner_id,omitempty" json:"owner_id,omitempty"`

	Participants    int  `bson:"participants" json:"participants"`
	MaxParticipants *int `bson:"max_participants,omitempty" json:"max_participants,omitempty"`

	IsPublished bool `bson:"is_published" json:"is_published"`

	Location string         `bson:"location,omitempty" json:"location,omitempty"`
	Image    string         `bson:"image,omitempty" json:"image,omitempty"`
	Metadata map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsFull reports whether the challenge has reached its capacity ceiling.
// A challenge without max_participants is never full.
func (c Challenge) IsFull() bool {
	return c.MaxParticipants != nil && c.Participants >= *c.MaxParticipants
}
