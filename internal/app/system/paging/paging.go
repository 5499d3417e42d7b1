// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the caller does not ask for one.
const DefaultLimit = 20

// MaxLimit caps the page size a caller can request.
const MaxLimit = 100

// Page holds sanitized pagination parameters for offset-based lists.
type Page struct {
	Page  int
	Limit int
}

// Parse extracts "page" and "limit" from the request. Page floors at 1;
// limit is clamped to [1, MaxLimit] and defaults to DefaultLimit.
// Invalid values fall back to the defaults rather than failing the
// request.
func Parse(r *http.Request) Page {
	p := Page{Page: 1, Limit: DefaultLimit}

	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			p.Limit = Clamp(n)
		}
	}
	return p
}

// Clamp restricts a requested limit to [1, MaxLimit].
func Clamp(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Skip returns the number of documents to skip for this page.
func (p Page) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Limit64 returns the limit as int64 for Mongo Find options.
func (p Page) Limit64() int64 { return int64(p.Limit) }
