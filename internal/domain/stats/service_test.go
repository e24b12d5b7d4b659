package stats

import (
	"testing"

	"fitsync-pro/backend/internal/domain/order"
	"fitsync-pro/backend/internal/domain/review"
)

func rev(trainer string, rating int) review.Review {
	return review.Review{Trainer: trainer, TrainerNameLower: trainer, Rating: rating}
}

func TestTopTrainersFromRanksByAverage(t *testing.T) {
	reviews := []review.Review{
		rev("alice", 5), rev("alice", 5),
		rev("bob", 5), rev("bob", 3),
		rev("carol", 4),
	}

	got := TopTrainersFrom(reviews, 5)
	if len(got) != 3 {
		t.Fatalf("expected 3 trainers, got %d", len(got))
	}
	if got[0].Trainer != "alice" || got[0].AverageRating != 5 || got[0].ReviewCount != 2 {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[1].Trainer != "bob" || got[1].AverageRating != 4 {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
	if got[2].Trainer != "carol" {
		t.Fatalf("unexpected third row: %+v", got[2])
	}
}

func TestTopTrainersFromBreaksTies(t *testing.T) {
	// Same average: more reviews wins, then name order.
	reviews := []review.Review{
		rev("zoe", 4),
		rev("amy", 4), rev("amy", 4),
		rev("ben", 4),
	}

	got := TopTrainersFrom(reviews, 5)
	if got[0].Trainer != "amy" {
		t.Fatalf("expected amy first by review count, got %s", got[0].Trainer)
	}
	if got[1].Trainer != "ben" || got[2].Trainer != "zoe" {
		t.Fatalf("expected name-order tiebreak, got %s then %s", got[1].Trainer, got[2].Trainer)
	}
}

func TestTopTrainersFromAppliesLimit(t *testing.T) {
	reviews := []review.Review{rev("a", 5), rev("b", 4), rev("c", 3)}

	got := TopTrainersFrom(reviews, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}

	if got := TopTrainersFrom(nil, 5); len(got) != 0 {
		t.Fatalf("expected empty board, got %+v", got)
	}
}

func TestTopTrainersFromSkipsUnkeyedReviews(t *testing.T) {
	reviews := []review.Review{
		{Trainer: "Legacy Import", Rating: 5}, // no normalized key
		rev("alice", 4),
	}

	got := TopTrainersFrom(reviews, 5)
	if len(got) != 1 || got[0].Trainer != "alice" {
		t.Fatalf("expected only alice, got %+v", got)
	}
}

func TestOrderTotalsFrom(t *testing.T) {
	orders := []order.Order{
		{Status: order.StatusPending, TotalAmount: 100},
		{Status: order.StatusPaid, TotalAmount: 25.50},
		{Status: order.StatusShipped, TotalAmount: 10},
		{Status: order.StatusCompleted, TotalAmount: 4.50},
		{Status: order.StatusCancelled, TotalAmount: 999},
	}

	total, paid, revenue := OrderTotalsFrom(orders)
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if paid != 3 {
		t.Errorf("paid = %d, want 3", paid)
	}
	if revenue != 40 {
		t.Errorf("revenue = %v, want 40", revenue)
	}
}
