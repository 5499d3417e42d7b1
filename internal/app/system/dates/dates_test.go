package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  time.Time
		wantOK bool
	}{
		{
			name:   "RFC3339",
			in:     "2026-03-01T09:30:00Z",
			want:   time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "date only",
			in:     "2026-03-01",
			want:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "slash separated",
			in:     "2026/03/01",
			want:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "surrounding whitespace",
			in:     "  2026-03-01  ",
			want:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "empty",
			in:     "",
			wantOK: false,
		},
		{
			name:   "garbage",
			in:     "next tuesday",
			wantOK: false,
		},
		{
			name:   "typo'd month",
			in:     "2026-13-01",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLenient(t *testing.T) {
	if got := ParseLenient("not a date"); got != nil {
		t.Errorf("expected nil for unparseable input, got %v", got)
	}
	got := ParseLenient("2026-01-15")
	if got == nil {
		t.Fatal("expected non-nil for valid input")
	}
	want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
