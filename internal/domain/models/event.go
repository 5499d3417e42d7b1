// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a read-only calendar item surfaced alongside challenges.
// Events are seeded out of band; this app only lists them.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Summary   string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	StartsAt  time.Time          `bson:"starts_at" json:"starts_at"`
	EndsAt    *time.Time         `bson:"ends_at,omitempty" json:"ends_at,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
