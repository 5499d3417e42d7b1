// internal/app/system/dates/dates.go

// Package dates provides the lenient date parsing used by challenge
// filters and payloads. Browse filters drop unparseable values instead
// of failing the request; create/update paths call ParseStrict and
// reject bad input.
package dates

import (
	"strings"
	"time"
)

// layouts tried in order. RFC3339 covers API clients; the date-only
// forms cover query strings typed by hand.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// Parse attempts each known layout and reports whether any matched.
// Times without an explicit zone are taken as UTC.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseLenient returns the parsed time or nil when the value is absent
// or unparseable. Filter construction uses this: bad input simply drops
// the constraint.
func ParseLenient(s string) *time.Time {
	if t, ok := Parse(s); ok {
		return &t
	}
	return nil
}
