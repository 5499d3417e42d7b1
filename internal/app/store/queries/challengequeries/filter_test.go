package challengequeries

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuild_Empty(t *testing.T) {
	q := Filter{}.Build()

	want := bson.M{"is_published": bson.M{"$ne": false}}
	if !reflect.DeepEqual(q, want) {
		t.Errorf("Build() = %v, want %v", q, want)
	}
}

func TestBuild_Category(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{"single", "fitness", []string{"fitness"}},
		{"multiple", "fitness,wellness", []string{"fitness", "wellness"}},
		{"trims and drops empties", " fitness , ,wellness ", []string{"fitness", "wellness"}},
		{"whitespace only", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Filter{Category: tt.category}.Build()
			clause, ok := q["category"]
			if tt.want == nil {
				if ok {
					t.Fatalf("category clause present for %q: %v", tt.category, clause)
				}
				return
			}
			want := bson.M{"$in": tt.want}
			if !reflect.DeepEqual(clause, want) {
				t.Errorf("category clause = %v, want %v", clause, want)
			}
		})
	}
}

func TestBuild_DateRange(t *testing.T) {
	q := Filter{StartDate: "2026-03-01", EndDate: "2026-04-01"}.Build()

	clause, ok := q["start_date"].(bson.M)
	if !ok {
		t.Fatalf("start_date clause missing: %v", q)
	}
	gte, ok := clause["$gte"].(time.Time)
	if !ok || !gte.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("$gte = %v, want 2026-03-01", clause["$gte"])
	}
	lte, ok := clause["$lte"].(time.Time)
	if !ok || !lte.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("$lte = %v, want 2026-04-01", clause["$lte"])
	}
}

func TestBuild_MalformedCriteriaDropped(t *testing.T) {
	q := Filter{
		StartDate:       "not-a-date",
		EndDate:         "also bad",
		ParticipantsMin: "many",
		ParticipantsMax: "",
	}.Build()

	if _, ok := q["start_date"]; ok {
		t.Errorf("unparseable dates must be dropped, got %v", q["start_date"])
	}
	if _, ok := q["participants"]; ok {
		t.Errorf("non-numeric participant bounds must be dropped, got %v", q["participants"])
	}
}

func TestBuild_ParticipantsRange(t *testing.T) {
	q := Filter{ParticipantsMin: "5", ParticipantsMax: "50"}.Build()

	want := bson.M{"$gte": 5, "$lte": 50}
	if !reflect.DeepEqual(q["participants"], want) {
		t.Errorf("participants clause = %v, want %v", q["participants"], want)
	}
}

func TestBuild_Search(t *testing.T) {
	q := Filter{Search: "  run (fast)  "}.Build()

	or, ok := q["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("$or clause = %v, want three fields", q["$or"])
	}
	re, ok := or[0]["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("title clause = %v, want regex", or[0]["title"])
	}
	// Regex metacharacters in user input are matched literally.
	if re.Pattern != `run \(fast\)` {
		t.Errorf("pattern = %q, want escaped literal", re.Pattern)
	}
	if re.Options != "i" {
		t.Errorf("options = %q, want case-insensitive", re.Options)
	}
}

func TestBuild_CombinesWithAnd(t *testing.T) {
	q := Filter{Category: "fitness", Search: "run", ParticipantsMin: "1"}.Build()

	for _, key := range []string{"is_published", "category", "participants", "$or"} {
		if _, ok := q[key]; !ok {
			t.Errorf("missing %q clause in combined filter: %v", key, q)
		}
	}
}
