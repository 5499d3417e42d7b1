package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/challengehub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// UniqueSlug returns a slug that will not collide with any other
// fixture in the suite.
func UniqueSlug(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// CreateChallenge creates a published test challenge with a unique slug
// and no capacity ceiling.
func (f *Fixtures) CreateChallenge(ctx context.Context, title string) models.Challenge {
	f.t.Helper()
	return f.insertChallenge(ctx, models.Challenge{
		Title:       title,
		Description: "Test challenge description",
		Category:    "fitness",
		StartDate:   time.Now().UTC().Add(24 * time.Hour),
		IsPublished: true,
	})
}

// CreateChallengeWithCapacity creates a published test challenge with
// the given participant ceiling.
func (f *Fixtures) CreateChallengeWithCapacity(ctx context.Context, title string, maxParticipants int) models.Challenge {
	f.t.Helper()
	return f.insertChallenge(ctx, models.Challenge{
		Title:           title,
		Description:     "Test challenge description",
		Category:        "fitness",
		StartDate:       time.Now().UTC().Add(24 * time.Hour),
		MaxParticipants: &maxParticipants,
		IsPublished:     true,
	})
}

// CreateChallengeFrom inserts the given challenge, filling in an ID,
// slug, tags, and timestamps where absent.
func (f *Fixtures) CreateChallengeFrom(ctx context.Context, ch models.Challenge) models.Challenge {
	f.t.Helper()
	return f.insertChallenge(ctx, ch)
}

func (f *Fixtures) insertChallenge(ctx context.Context, ch models.Challenge) models.Challenge {
	f.t.Helper()

	now := time.Now().UTC()
	if ch.ID.IsZero() {
		ch.ID = primitive.NewObjectID()
	}
	if ch.Slug == "" {
		ch.Slug = UniqueSlug("test-challenge")
	}
	if ch.Tags == nil {
		ch.Tags = []string{}
	}
	if ch.CreatedAt.IsZero() {
		ch.CreatedAt = now
	}
	if ch.UpdatedAt.IsZero() {
		ch.UpdatedAt = now
	}

	if _, err := f.db.Collection("challenges").InsertOne(ctx, ch); err != nil {
		f.t.Fatalf("failed to create test challenge: %v", err)
	}
	return ch
}

// CreateMembership creates a membership row linking a user to a
// challenge. It does not touch the participants counter.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, challengeID primitive.ObjectID) models.UserChallenge {
	f.t.Helper()

	now := time.Now().UTC()
	uc := models.UserChallenge{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		ChallengeID: challengeID,
		Status:      models.MembershipJoined,
		JoinedAt:    now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("user_challenges").InsertOne(ctx, uc); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return uc
}

// CreateTip creates a test tip.
func (f *Fixtures) CreateTip(ctx context.Context, title, category string) models.Tip {
	f.t.Helper()

	tip := models.Tip{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Body:      "Test tip body",
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("tips").InsertOne(ctx, tip); err != nil {
		f.t.Fatalf("failed to create test tip: %v", err)
	}
	return tip
}

// CreateEvent creates a test event starting at the given time.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, startsAt time.Time) models.Event {
	f.t.Helper()

	event := models.Event{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Summary:   "Test event summary",
		StartsAt:  startsAt,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, event); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return event
}
