package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/challenges", 1, DefaultLimit},
		{"explicit", "/challenges?page=3&limit=50", 3, 50},
		{"limit above cap", "/challenges?limit=500", 1, MaxLimit},
		{"limit below floor", "/challenges?limit=0", 1, 1},
		{"negative limit", "/challenges?limit=-5", 1, 1},
		{"page zero", "/challenges?page=0", 1, DefaultLimit},
		{"page negative", "/challenges?page=-2", 1, DefaultLimit},
		{"non-numeric", "/challenges?page=abc&limit=xyz", 1, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := Parse(r)
			if p.Page != tt.wantPage {
				t.Errorf("Page: got %d, want %d", p.Page, tt.wantPage)
			}
			if p.Limit != tt.wantLimit {
				t.Errorf("Limit: got %d, want %d", p.Limit, tt.wantLimit)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	p := Page{Page: 3, Limit: 25}
	if got := p.Skip(); got != 50 {
		t.Errorf("Skip: got %d, want 50", got)
	}
	p = Page{Page: 1, Limit: 100}
	if got := p.Skip(); got != 0 {
		t.Errorf("Skip on first page: got %d, want 0", got)
	}
}
