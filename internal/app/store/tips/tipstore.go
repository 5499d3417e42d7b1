// internal/app/store/tips/tipstore.go
package tipstore

import (
	"context"

	"github.com/dalemusser/challengehub/internal/app/system/paging"
	"github.com/dalemusser/challengehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tips")}
}

// List returns a page of tips, newest first, optionally filtered by
// category.
func (s *Store) List(ctx context.Context, category string, page paging.Page) ([]models.Tip, int64, error) {
	q := bson.M{}
	if category != "" {
		q["category"] = category
	}

	total, err := s.c.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(page.Limit64())

	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	tips := []models.Tip{}
	if err := cur.All(ctx, &tips); err != nil {
		return nil, 0, err
	}
	return tips, total, nil
}
