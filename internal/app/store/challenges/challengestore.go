// internal/app/store/challenges/challengestore.go
package challengestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/challengehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateSlug = errors.New("a challenge with this slug already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("challenges")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Challenge, error) {
	var ch models.Challenge
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ch); err != nil {
		return models.Challenge{}, err
	}
	return ch, nil
}

// Create inserts a new challenge. Slug uniqueness is enforced by the
// unique index, never pre-checked: a concurrent create with the same
// slug loses at insert time and surfaces ErrDuplicateSlug.
func (s *Store) Create(ctx context.Context, ch models.Challenge) (models.Challenge, error) {
	now := time.Now().UTC()
	ch.ID = primitive.NewObjectID()
	ch.Participants = 0
	if ch.Tags == nil {
		ch.Tags = []string{}
	}
	ch.CreatedAt = now
	ch.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, ch)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Challenge{}, ErrDuplicateSlug
		}
		return models.Challenge{}, err
	}
	return ch, nil
}

// Update applies a partial field merge and refreshes updated_at.
// The participants counter is deliberately not updatable here; only the
// membership store's join path may change it.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Challenge, error) {
	if set == nil {
		set = bson.M{}
	}
	delete(set, "participants")
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ch models.Challenge
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&ch)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Challenge{}, ErrDuplicateSlug
		}
		return models.Challenge{}, err
	}
	return ch, nil
}
