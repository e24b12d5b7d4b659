package review

import "testing"

func TestAverageRating(t *testing.T) {
	if got := AverageRating(nil); got != 0 {
		t.Fatalf("expected 0 for no reviews, got %v", got)
	}

	reviews := []Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}
	want := 13.0 / 3.0
	if got := AverageRating(reviews); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAverageRatingLabel(t *testing.T) {
	if got := AverageRatingLabel(nil); got != "0.0" {
		t.Fatalf("expected literal 0.0 for no reviews, got %q", got)
	}

	reviews := []Review{{Rating: 5}, {Rating: 4}}
	if got := AverageRatingLabel(reviews); got != "4.5" {
		t.Fatalf("expected 4.5, got %q", got)
	}

	// Rounded, not truncated.
	reviews = []Review{{Rating: 5}, {Rating: 5}, {Rating: 4}}
	if got := AverageRatingLabel(reviews); got != "4.7" {
		t.Fatalf("expected 4.7, got %q", got)
	}
}
