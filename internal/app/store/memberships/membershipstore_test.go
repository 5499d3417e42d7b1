package membershipstore_test

import (
	"errors"
	"sync"
	"testing"

	membershipstore "github.com/dalemusser/challengehub/internal/app/store/memberships"
	"github.com/dalemusser/challengehub/internal/domain/models"
	"github.com/dalemusser/challengehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newTestStore(t *testing.T) (*membershipstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return membershipstore.New(db.Client(), db), testutil.NewFixtures(t, db)
}

func participants(t *testing.T, f *testutil.Fixtures, id primitive.ObjectID) int {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var ch models.Challenge
	if err := f.DB().Collection("challenges").FindOne(ctx, bson.M{"_id": id}).Decode(&ch); err != nil {
		t.Fatalf("load challenge: %v", err)
	}
	return ch.Participants
}

func TestJoin_Success(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChallenge(ctx, "Morning Run")
	userID := primitive.NewObjectID()

	uc, err := store.Join(ctx, userID, ch.ID)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if uc.UserID != userID || uc.ChallengeID != ch.ID {
		t.Errorf("membership ids: got (%s, %s), want (%s, %s)", uc.UserID.Hex(), uc.ChallengeID.Hex(), userID.Hex(), ch.ID.Hex())
	}
	if uc.Status != models.MembershipJoined {
		t.Errorf("status: got %q, want %q", uc.Status, models.MembershipJoined)
	}

	if got := participants(t, fixtures, ch.ID); got != 1 {
		t.Errorf("participants: got %d, want 1", got)
	}
	rows, err := store.CountByChallenge(ctx, ch.ID)
	if err != nil {
		t.Fatalf("CountByChallenge() error = %v", err)
	}
	if rows != 1 {
		t.Errorf("membership rows: got %d, want 1", rows)
	}
}

func TestJoin_ChallengeNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Join(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("Join() error = %v, want mongo.ErrNoDocuments", err)
	}
}

func TestJoin_Duplicate(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChallenge(ctx, "Hydration Week")
	userID := primitive.NewObjectID()

	if _, err := store.Join(ctx, userID, ch.ID); err != nil {
		t.Fatalf("first Join() error = %v", err)
	}
	_, err := store.Join(ctx, userID, ch.ID)
	if !errors.Is(err, membershipstore.ErrDuplicateMembership) {
		t.Fatalf("second Join() error = %v, want ErrDuplicateMembership", err)
	}

	// The failed join must not move the counter.
	if got := participants(t, fixtures, ch.ID); got != 1 {
		t.Errorf("participants after duplicate: got %d, want 1", got)
	}
}

func TestJoin_CapacityBoundary(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChallengeWithCapacity(ctx, "Small Group", 2)

	for i := 0; i < 2; i++ {
		if _, err := store.Join(ctx, primitive.NewObjectID(), ch.ID); err != nil {
			t.Fatalf("Join() %d error = %v", i+1, err)
		}
	}

	_, err := store.Join(ctx, primitive.NewObjectID(), ch.ID)
	if !errors.Is(err, membershipstore.ErrChallengeFull) {
		t.Fatalf("Join() past capacity error = %v, want ErrChallengeFull", err)
	}

	if got := participants(t, fixtures, ch.ID); got != 2 {
		t.Errorf("participants: got %d, want 2", got)
	}
	rows, _ := store.CountByChallenge(ctx, ch.ID)
	if rows != 2 {
		t.Errorf("membership rows: got %d, want 2", rows)
	}
}

func TestJoin_ConcurrentNeverExceedsCapacity(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	const capacity = 5
	const attempts = 20

	ch := fixtures.CreateChallengeWithCapacity(ctx, "Contended", capacity)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Join(ctx, primitive.NewObjectID(), ch.ID)
		}(i)
	}
	wg.Wait()

	var joined, full int
	for _, err := range errs {
		switch {
		case err == nil:
			joined++
		case errors.Is(err, membershipstore.ErrChallengeFull):
			full++
		default:
			t.Errorf("unexpected join error: %v", err)
		}
	}
	if joined != capacity {
		t.Errorf("successful joins: got %d, want %d", joined, capacity)
	}
	if full != attempts-capacity {
		t.Errorf("full rejections: got %d, want %d", full, attempts-capacity)
	}

	if got := participants(t, fixtures, ch.ID); got != capacity {
		t.Errorf("participants: got %d, want %d", got, capacity)
	}
	rows, err := store.CountByChallenge(ctx, ch.ID)
	if err != nil {
		t.Fatalf("CountByChallenge() error = %v", err)
	}
	if rows != int64(capacity) {
		t.Errorf("membership rows: got %d, want %d", rows, capacity)
	}
}

func TestJoin_ConcurrentSameUserJoinsOnce(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChallenge(ctx, "Same User Race")
	userID := primitive.NewObjectID()

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Join(ctx, userID, ch.ID)
		}(i)
	}
	wg.Wait()

	var joined int
	for _, err := range errs {
		switch {
		case err == nil:
			joined++
		case errors.Is(err, membershipstore.ErrDuplicateMembership):
		default:
			t.Errorf("unexpected join error: %v", err)
		}
	}
	if joined != 1 {
		t.Errorf("successful joins: got %d, want 1", joined)
	}
	if got := participants(t, fixtures, ch.ID); got != 1 {
		t.Errorf("participants: got %d, want 1", got)
	}
}

func TestExists(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChallenge(ctx, "Exists Check")
	userID := primitive.NewObjectID()

	ok, err := store.Exists(ctx, userID, ch.ID)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Error("Exists() = true before join")
	}

	if _, err := store.Join(ctx, userID, ch.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	ok, err = store.Exists(ctx, userID, ch.ID)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !ok {
		t.Error("Exists() = false after join")
	}
}

func TestListByUser(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	ch1 := fixtures.CreateChallenge(ctx, "First")
	ch2 := fixtures.CreateChallenge(ctx, "Second")

	if _, err := store.Join(ctx, userID, ch1.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if _, err := store.Join(ctx, userID, ch2.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	// Membership of another user must not leak in.
	if _, err := store.Join(ctx, primitive.NewObjectID(), ch1.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	rows, err := store.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ListByUser() returned %d rows, want 2", len(rows))
	}
	for _, uc := range rows {
		if uc.UserID != userID {
			t.Errorf("row user: got %s, want %s", uc.UserID.Hex(), userID.Hex())
		}
	}
}

func TestDeleteChallenge_Cascades(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChallenge(ctx, "Doomed")
	other := fixtures.CreateChallenge(ctx, "Survivor")
	userID := primitive.NewObjectID()

	if _, err := store.Join(ctx, userID, ch.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if _, err := store.Join(ctx, userID, other.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	if err := store.DeleteChallenge(ctx, ch.ID); err != nil {
		t.Fatalf("DeleteChallenge() error = %v", err)
	}

	rows, err := store.CountByChallenge(ctx, ch.ID)
	if err != nil {
		t.Fatalf("CountByChallenge() error = %v", err)
	}
	if rows != 0 {
		t.Errorf("memberships after cascade: got %d, want 0", rows)
	}

	// Unrelated memberships stay.
	rows, _ = store.CountByChallenge(ctx, other.ID)
	if rows != 1 {
		t.Errorf("unrelated memberships: got %d, want 1", rows)
	}
}

func TestDeleteChallenge_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.DeleteChallenge(ctx, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("DeleteChallenge() error = %v, want mongo.ErrNoDocuments", err)
	}
}
