// internal/app/store/memberships/membershipstore.go
package membershipstore

// This store owns every operation that spans the challenges and
// user_challenges collections: joining a challenge (membership insert +
// counter increment) and cascade-deleting a challenge. No other
// component may touch the participants counter.

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dalemusser/challengehub/internal/app/system/timeouts"
	"github.com/dalemusser/challengehub/internal/app/system/txn"
	"github.com/dalemusser/challengehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrDuplicateMembership = errors.New("user has already joined this challenge")
	ErrChallengeFull       = errors.New("challenge is full")
)

type Store struct {
	client      *mongo.Client
	challenges  *mongo.Collection
	memberships *mongo.Collection

	// Deployments without multi-document transactions (standalone
	// servers) are detected once and remembered; joins then serialize
	// per challenge id instead.
	noTxn     atomic.Bool
	joinLocks sync.Map // challenge id hex -> *sync.Mutex
}

func New(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		client:      client,
		challenges:  db.Collection("challenges"),
		memberships: db.Collection("user_challenges"),
	}
}

// Join atomically creates the (user, challenge) membership and
// increments the challenge's participants counter. Either both effects
// persist or neither does.
//
// Failure modes, in checking order:
//   - mongo.ErrNoDocuments: the challenge does not exist
//   - ErrChallengeFull: the capacity ceiling is reached
//   - ErrDuplicateMembership: the pair already exists
//
// Join never retries on its own; a retry policy belongs to the caller.
func (s *Store) Join(ctx context.Context, userID, challengeID primitive.ObjectID) (models.UserChallenge, error) {
	if !s.noTxn.Load() {
		res, err := txn.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) (interface{}, error) {
			return s.joinTxn(sc, userID, challengeID)
		})
		if err == nil {
			return res.(models.UserChallenge), nil
		}
		if !txn.IsNotSupported(err) {
			return models.UserChallenge{}, err
		}
		s.noTxn.Store(true)
	}
	return s.joinSerialized(ctx, userID, challengeID)
}

// joinTxn is the transactional body. The capacity check and the
// increment observe the same snapshot; a concurrent join on the same
// challenge document raises a write conflict, the driver retries the
// whole body, and the re-read sees the new counter.
func (s *Store) joinTxn(sc mongo.SessionContext, userID, challengeID primitive.ObjectID) (models.UserChallenge, error) {
	var ch models.Challenge
	if err := s.challenges.FindOne(sc, bson.M{"_id": challengeID}).Decode(&ch); err != nil {
		return models.UserChallenge{}, err
	}
	if ch.IsFull() {
		return models.UserChallenge{}, ErrChallengeFull
	}

	uc := newMembership(userID, challengeID)
	if _, err := s.memberships.InsertOne(sc, uc); err != nil {
		if wafflemongo.IsDup(err) {
			return models.UserChallenge{}, ErrDuplicateMembership
		}
		return models.UserChallenge{}, err
	}

	_, err := s.challenges.UpdateOne(sc,
		bson.M{"_id": challengeID},
		bson.M{
			"$inc": bson.M{"participants": 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return models.UserChallenge{}, err
	}
	return uc, nil
}

// joinSerialized is the fallback for deployments without transactions.
// A per-challenge mutex serializes joins in this process; the increment
// additionally carries a capacity guard in its filter so that writers
// outside this process cannot push the counter past the ceiling. If the
// guard fails after the membership insert, the insert is compensated.
func (s *Store) joinSerialized(ctx context.Context, userID, challengeID primitive.ObjectID) (models.UserChallenge, error) {
	lock := s.lockFor(challengeID)
	lock.Lock()
	defer lock.Unlock()

	var ch models.Challenge
	if err := s.challenges.FindOne(ctx, bson.M{"_id": challengeID}).Decode(&ch); err != nil {
		return models.UserChallenge{}, err
	}
	if ch.IsFull() {
		return models.UserChallenge{}, ErrChallengeFull
	}

	uc := newMembership(userID, challengeID)
	if _, err := s.memberships.InsertOne(ctx, uc); err != nil {
		if wafflemongo.IsDup(err) {
			return models.UserChallenge{}, ErrDuplicateMembership
		}
		return models.UserChallenge{}, err
	}

	// Guarded increment: matches only while below capacity (or
	// uncapped; a nil match covers both missing and null).
	guard := bson.M{
		"_id": challengeID,
		"$or": []bson.M{
			{"max_participants": nil},
			{"$expr": bson.M{"$lt": bson.A{"$participants", "$max_participants"}}},
		},
	}
	res, err := s.challenges.UpdateOne(ctx, guard, bson.M{
		"$inc": bson.M{"participants": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err == nil && res.ModifiedCount == 0 {
		err = ErrChallengeFull
	}
	if err != nil {
		s.compensate(ctx, uc.ID)
		return models.UserChallenge{}, err
	}
	return uc, nil
}

// compensate removes a membership row whose counter increment did not
// land. Runs on a detached context: the caller's context may already be
// cancelled, and leaving the row behind would break the counter ==
// rows invariant.
func (s *Store) compensate(ctx context.Context, membershipID primitive.ObjectID) {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Short())
	defer cancel()
	_, _ = s.memberships.DeleteOne(dctx, bson.M{"_id": membershipID})
}

func (s *Store) lockFor(challengeID primitive.ObjectID) *sync.Mutex {
	v, _ := s.joinLocks.LoadOrStore(challengeID.Hex(), &sync.Mutex{})
	return v.(*sync.Mutex)
}

func newMembership(userID, challengeID primitive.ObjectID) models.UserChallenge {
	now := time.Now().UTC()
	return models.UserChallenge{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		ChallengeID: challengeID,
		Status:      models.MembershipJoined,
		Progress:    0,
		JoinedAt:    now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DeleteChallenge removes a challenge and cascades to its membership
// rows, transactionally where the deployment allows. Returns
// mongo.ErrNoDocuments when the challenge does not exist.
func (s *Store) DeleteChallenge(ctx context.Context, challengeID primitive.ObjectID) error {
	if !s.noTxn.Load() {
		_, err := txn.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) (interface{}, error) {
			return nil, s.deleteChallenge(sc, challengeID)
		})
		if err == nil || !txn.IsNotSupported(err) {
			return err
		}
		s.noTxn.Store(true)
	}
	return s.deleteChallenge(ctx, challengeID)
}

func (s *Store) deleteChallenge(ctx context.Context, challengeID primitive.ObjectID) error {
	res, err := s.challenges.DeleteOne(ctx, bson.M{"_id": challengeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	_, err = s.memberships.DeleteMany(ctx, bson.M{"challenge_id": challengeID})
	return err
}

// CountByChallenge returns the number of membership rows for a
// challenge. The participants counter on the challenge document must
// always equal this.
func (s *Store) CountByChallenge(ctx context.Context, challengeID primitive.ObjectID) (int64, error) {
	return s.memberships.CountDocuments(ctx, bson.M{"challenge_id": challengeID})
}

// Exists checks if a membership exists for the given user and challenge.
func (s *Store) Exists(ctx context.Context, userID, challengeID primitive.ObjectID) (bool, error) {
	err := s.memberships.FindOne(ctx, bson.M{"user_id": userID, "challenge_id": challengeID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns a user's memberships, most recent join first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserChallenge, error) {
	opts := options.Find().SetSort(bson.D{{Key: "joined_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.memberships.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.UserChallenge
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
