// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The two unique indexes here are load-bearing: slug uniqueness backs the
no-pre-check create path, and the (user_id, challenge_id) uniqueness is
what turns a double join into a duplicate-key error inside the join
transaction.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureChallenges(ctx, db); err != nil {
		problems = append(problems, "challenges: "+err.Error())
	}
	if err := ensureUserChallenges(ctx, db); err != nil {
		problems = append(problems, "user_challenges: "+err.Error())
	}
	if err := ensureTips(ctx, db); err != nil {
		problems = append(problems, "tips: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	start := time.Now()
	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		zap.L().Warn("index ensure failed",
			zap.String("collection", coll.Name()),
			zap.Error(err))
		return err
	}
	zap.L().Info("indexes ensured",
		zap.String("collection", coll.Name()),
		zap.Strings("names", names),
		zap.String("took", time.Since(start).String()))
	return nil
}

func ensureChallenges(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("challenges")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Slug must be unique across all challenges.
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_challenges_slug"),
		},
		// Browse lists: published filter + start_date sort + stable tiebreak.
		{
			Keys: bson.D{
				{Key: "is_published", Value: 1},
				{Key: "start_date", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_challenges_published_start__id"),
		},
		// Category filter path.
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "start_date", Value: 1}},
			Options: options.Index().SetName("idx_challenges_category_start"),
		},
		// Owner lookups (manage screens, authz checks after list).
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("idx_challenges_owner"),
		},
	})
}

func ensureUserChallenges(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("user_challenges")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Uniqueness: exactly one membership per (user, challenge).
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "challenge_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_uc_user_challenge"),
		},
		// Fast: list a challenge's members.
		{
			Keys:    bson.D{{Key: "challenge_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_uc_challenge_user"),
		},
		// Fast: list a user's joined challenges, newest first.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "joined_at", Value: -1}},
			Options: options.Index().SetName("idx_uc_user_joined"),
		},
	})
}

func ensureTips(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("tips")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_tips_created"),
		},
	})
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("events")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "starts_at", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_events_starts__id"),
		},
	})
}
