// Package challengequeries provides the browse/search queries over the
// challenges collection, including the filter construction they share.
package challengequeries

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dalemusser/challengehub/internal/app/system/dates"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter holds the raw browse options exactly as they arrive from the
// query string. Build turns them into a Mongo filter; it is pure and
// never fails — absent or malformed criteria are dropped, because this
// is a best-effort filter for a browse UI.
type Filter struct {
	Category        string // comma-separated category labels
	StartDate       string // lower bound on challenge start_date
	EndDate         string // upper bound on challenge start_date
	ParticipantsMin string
	ParticipantsMax string
	Search          string // substring over title, description, tags
}

// Build translates the filter into a bson.M predicate.
//
// Baseline: only published challenges are eligible. is_published may be
// missing on old documents, so the test is "not explicitly false".
// All recognized criteria combine with AND; the search fields combine
// with OR.
func (f Filter) Build() bson.M {
	q := bson.M{
		"is_published": bson.M{"$ne": false},
	}

	if cats := splitCategories(f.Category); len(cats) > 0 {
		q["category"] = bson.M{"$in": cats}
	}

	startRange := bson.M{}
	if t := dates.ParseLenient(f.StartDate); t != nil {
		startRange["$gte"] = *t
	}
	if t := dates.ParseLenient(f.EndDate); t != nil {
		startRange["$lte"] = *t
	}
	if len(startRange) > 0 {
		q["start_date"] = startRange
	}

	partRange := bson.M{}
	if n, err := strconv.Atoi(strings.TrimSpace(f.ParticipantsMin)); err == nil {
		partRange["$gte"] = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(f.ParticipantsMax)); err == nil {
		partRange["$lte"] = n
	}
	if len(partRange) > 0 {
		q["participants"] = partRange
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		q["$or"] = []bson.M{
			{"title": re},
			{"description": re},
			{"tags": re},
		}
	}

	return q
}

func splitCategories(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var cats []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cats = append(cats, c)
		}
	}
	return cats
}
