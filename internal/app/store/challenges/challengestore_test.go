package challengestore_test

import (
	"errors"
	"testing"
	"time"

	challengestore "github.com/dalemusser/challengehub/internal/app/store/challenges"
	"github.com/dalemusser/challengehub/internal/domain/models"
	"github.com/dalemusser/challengehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newTestStore(t *testing.T) (*challengestore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return challengestore.New(db), testutil.NewFixtures(t, db)
}

func TestCreate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch, err := store.Create(ctx, models.Challenge{
		Slug:        testutil.UniqueSlug("spring-5k"),
		Title:       "Spring 5K",
		Description: "Run a 5K",
		StartDate:   time.Now().UTC().Add(48 * time.Hour),
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if ch.ID.IsZero() {
		t.Error("Create() did not assign an ID")
	}
	if ch.Participants != 0 {
		t.Errorf("participants: got %d, want 0", ch.Participants)
	}
	if ch.Tags == nil {
		t.Error("tags should be an empty slice, not nil")
	}
	if ch.CreatedAt.IsZero() || ch.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestCreate_DuplicateSlug(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	slug := testutil.UniqueSlug("taken")
	base := models.Challenge{
		Slug:        slug,
		Title:       "First",
		StartDate:   time.Now().UTC(),
		IsPublished: true,
	}
	if _, err := store.Create(ctx, base); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	base.Title = "Second"
	_, err := store.Create(ctx, base)
	if !errors.Is(err, challengestore.ErrDuplicateSlug) {
		t.Errorf("Create() with duplicate slug error = %v, want ErrDuplicateSlug", err)
	}
}

func TestGetByID(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeded := fixtures.CreateChallenge(ctx, "Lookup Me")

	ch, err := store.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if ch.Title != "Lookup Me" {
		t.Errorf("title: got %q, want %q", ch.Title, "Lookup Me")
	}

	_, err = store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByID() missing id error = %v, want mongo.ErrNoDocuments", err)
	}
}

func TestUpdate(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeded := fixtures.CreateChallenge(ctx, "Before")

	ch, err := store.Update(ctx, seeded.ID, bson.M{"title": "After", "category": "wellness"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if ch.Title != "After" {
		t.Errorf("title: got %q, want %q", ch.Title, "After")
	}
	if ch.Category != "wellness" {
		t.Errorf("category: got %q, want %q", ch.Category, "wellness")
	}
	if !ch.UpdatedAt.After(seeded.UpdatedAt) {
		t.Error("updated_at not refreshed")
	}
	// Untouched fields survive a partial update.
	if ch.Slug != seeded.Slug {
		t.Errorf("slug changed by partial update: got %q, want %q", ch.Slug, seeded.Slug)
	}
}

func TestUpdate_ParticipantsProtected(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeded := fixtures.CreateChallenge(ctx, "Counter Guard")

	ch, err := store.Update(ctx, seeded.ID, bson.M{"participants": 99, "title": "Renamed"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if ch.Participants != 0 {
		t.Errorf("participants: got %d, want 0 (counter must not be writable here)", ch.Participants)
	}
	if ch.Title != "Renamed" {
		t.Errorf("title: got %q, want %q", ch.Title, "Renamed")
	}
}

func TestUpdate_DuplicateSlug(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateChallenge(ctx, "Challenge A")
	b := fixtures.CreateChallenge(ctx, "Challenge B")

	_, err := store.Update(ctx, b.ID, bson.M{"slug": a.Slug})
	if !errors.Is(err, challengestore.ErrDuplicateSlug) {
		t.Errorf("Update() to taken slug error = %v, want ErrDuplicateSlug", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Update(ctx, primitive.NewObjectID(), bson.M{"title": "Nope"})
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("Update() missing id error = %v, want mongo.ErrNoDocuments", err)
	}
}
