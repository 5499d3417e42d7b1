// internal/app/features/challenges/types.go
package challenges

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/challengehub/internal/app/system/apperr"
	"github.com/dalemusser/challengehub/internal/app/system/dates"
	"github.com/dalemusser/challengehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// tagList accepts either a JSON array of strings or a single string, so
// clients that send "tags": "running" get a one-element list.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*t = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*t = tagList{one}
		return nil
	}
	return fmt.Errorf("tags must be a string or an array of strings")
}

// createRequest is the POST /challenges payload.
type createRequest struct {
	Slug            string         `json:"slug"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        string         `json:"category"`
	Tags            tagList        `json:"tags"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	MaxParticipants *int           `json:"max_participants"`
	IsPublished     *bool          `json:"is_published"`
	Location        string         `json:"location"`
	Image           string         `json:"image"`
	Metadata        map[string]any `json:"metadata"`
}

// validate checks required fields and parses the dates. It returns the
// parsed dates so the handler does not parse twice.
func (req createRequest) validate() (start time.Time, end time.Time, err error) {
	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Slug) == "" {
		missing = append(missing, "slug")
	}
	if strings.TrimSpace(req.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(req.StartDate) == "" {
		missing = append(missing, "start_date")
	}
	if strings.TrimSpace(req.EndDate) == "" {
		missing = append(missing, "end_date")
	}
	if len(missing) > 0 {
		return start, end, apperr.New(apperr.Validation,
			"missing required fields: "+strings.Join(missing, ", "))
	}

	start, ok := dates.Parse(req.StartDate)
	if !ok {
		return start, end, apperr.New(apperr.Validation, "start_date is not a recognized date")
	}
	end, ok = dates.Parse(req.EndDate)
	if !ok {
		return start, end, apperr.New(apperr.Validation, "end_date is not a recognized date")
	}
	// No ordering constraint between the two dates: an end before the
	// start is stored as given.
	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		return start, end, apperr.New(apperr.Validation, "max_participants must be positive")
	}
	return start, end, nil
}

// parseUpdate turns a PATCH body into a field-merge document. Raw JSON
// is inspected key by key so that absent, null, and present-but-invalid
// fields are told apart: absent means untouched, null clears nullable
// fields, and a provided but unparseable value is a validation error —
// it is never silently dropped.
func parseUpdate(body []byte) (bson.M, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperr.New(apperr.Validation, "request body is not valid JSON")
	}
	if len(raw) == 0 {
		return nil, apperr.New(apperr.Validation, "no fields to update")
	}

	set := bson.M{}
	for key, val := range raw {
		switch key {
		case "slug", "title", "description", "category", "location", "image":
			s, err := stringField(key, val)
			if err != nil {
				return nil, err
			}
			if key != "category" && key != "location" && key != "image" && strings.TrimSpace(s) == "" {
				return nil, apperr.New(apperr.Validation, key+" cannot be empty")
			}
			set[key] = s
		case "tags":
			var tags tagList
			if err := json.Unmarshal(val, &tags); err != nil {
				return nil, apperr.New(apperr.Validation, "tags must be a string or an array of strings")
			}
			if tags == nil {
				tags = tagList{}
			}
			set[key] = []string(tags)
		case "start_date":
			t, err := dateField(key, val, false)
			if err != nil {
				return nil, err
			}
			set[key] = *t
		case "end_date":
			t, err := dateField(key, val, true)
			if err != nil {
				return nil, err
			}
			if t == nil {
				set[key] = nil
			} else {
				set[key] = *t
			}
		case "max_participants":
			if string(val) == "null" {
				set[key] = nil
				continue
			}
			var n int
			if err := json.Unmarshal(val, &n); err != nil || n < 1 {
				return nil, apperr.New(apperr.Validation, "max_participants must be a positive integer")
			}
			set[key] = n
		case "is_published":
			var b bool
			if err := json.Unmarshal(val, &b); err != nil {
				return nil, apperr.New(apperr.Validation, "is_published must be a boolean")
			}
			set[key] = b
		case "metadata":
			var m map[string]any
			if err := json.Unmarshal(val, &m); err != nil {
				return nil, apperr.New(apperr.Validation, "metadata must be an object")
			}
			set[key] = m
		default:
			// Unknown and read-only fields (participants, owner_id,
			// timestamps) are ignored rather than rejected.
		}
	}
	if len(set) == 0 {
		return nil, apperr.New(apperr.Validation, "no updatable fields provided")
	}
	return set, nil
}

func stringField(key string, val json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(val, &s); err != nil {
		return "", apperr.New(apperr.Validation, key+" must be a string")
	}
	return s, nil
}

// dateField parses a date value. nullable fields accept JSON null to
// clear; a non-null value that does not parse is a validation error.
func dateField(key string, val json.RawMessage, nullable bool) (*time.Time, error) {
	if string(val) == "null" {
		if nullable {
			return nil, nil
		}
		return nil, apperr.New(apperr.Validation, key+" cannot be null")
	}
	var s string
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, apperr.New(apperr.Validation, key+" must be a date string")
	}
	t, ok := dates.Parse(s)
	if !ok {
		return nil, apperr.New(apperr.Validation, key+" is not a recognized date")
	}
	return &t, nil
}

// listResponse is the GET /challenges envelope.
type listResponse struct {
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Total      int64              `json:"total"`
	Challenges []models.Challenge `json:"challenges"`
}
