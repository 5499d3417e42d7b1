// internal/app/store/queries/challengequeries/list.go
package challengequeries

import (
	"context"

	"github.com/dalemusser/challengehub/internal/app/system/paging"
	"github.com/dalemusser/challengehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListResult contains one page of challenges and the total match count.
type ListResult struct {
	Items []models.Challenge
	Total int64
}

// List fetches a page of challenges matching the filter, sorted by
// start_date ascending (stable tiebreak on _id).
func List(ctx context.Context, db *mongo.Database, filter Filter, page paging.Page) (ListResult, error) {
	var result ListResult

	coll := db.Collection("challenges")
	q := filter.Build()

	total, err := coll.CountDocuments(ctx, q)
	if err != nil {
		return result, err
	}
	result.Total = total

	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(page.Limit64())

	cur, err := coll.Find(ctx, q, opts)
	if err != nil {
		return result, err
	}
	defer cur.Close(ctx)

	result.Items = []models.Challenge{}
	if err := cur.All(ctx, &result.Items); err != nil {
		return result, err
	}
	return result, nil
}
