package session

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 1, hour, min, 0, 0, time.UTC)
}

func TestOverlapsHalfOpenIntervals(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"contains", at(10, 30), at(11, 0), at(10, 0), at(12, 0), true},
		{"overlap right", at(10, 30), at(11, 30), at(10, 0), at(11, 0), true},
		{"overlap left", at(9, 30), at(10, 30), at(10, 0), at(11, 0), true},
		{"abutting after", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"abutting before", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"disjoint", at(13, 0), at(14, 0), at(10, 0), at(11, 0), false},
	}
	for _, c := range cases {
		if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
			t.Fatalf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFindConflictSkipsCancelledAndExcluded(t *testing.T) {
	existing := []Session{
		{ID: "a", Start: at(10, 0), End: at(11, 0), Canceled: true},
		{ID: "b", Start: at(10, 0), End: at(11, 0)},
	}

	if c := FindConflict(existing, at(10, 30), at(11, 30), ""); c == nil || c.ID != "b" {
		t.Fatalf("expected conflict with b, got %+v", c)
	}
	if c := FindConflict(existing, at(10, 30), at(11, 30), "b"); c != nil {
		t.Fatalf("expected no conflict when b excluded, got %+v", c)
	}
}

func TestFindConflictReturnsFirstMatch(t *testing.T) {
	existing := []Session{
		{ID: "x", Start: at(10, 0), End: at(11, 0)},
		{ID: "y", Start: at(10, 15), End: at(11, 15)},
	}
	if c := FindConflict(existing, at(10, 30), at(12, 0), ""); c == nil || c.ID != "x" {
		t.Fatalf("expected first match x, got %+v", c)
	}
}
