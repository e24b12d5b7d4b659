package review

import (
	"context"
	"strconv"
	"testing"
)

type stubStore struct {
	byID    map[string]*Review
	nextID  int
	deleted []string
}

func newStubStore() *stubStore {
	return &stubStore{byID: make(map[string]*Review)}
}

func (s *stubStore) Create(_ context.Context, rev Review) (*Review, error) {
	s.nextID++
	rev.ID = "r" + strconv.Itoa(s.nextID)
	cp := rev
	s.byID[cp.ID] = &cp
	return &rev, nil
}

func (s *stubStore) Get(_ context.Context, id string) (*Review, error) {
	rev, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rev
	return &cp, nil
}

func (s *stubStore) Delete(_ context.Context, id string) error {
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubStore) ListByTrainer(_ context.Context, trainerNameLower string) ([]Review, error) {
	var out []Review
	for _, rev := range s.byID {
		if rev.TrainerNameLower == trainerNameLower {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (s *stubStore) ListAll(_ context.Context) ([]Review, error) {
	var out []Review
	for _, rev := range s.byID {
		out = append(out, *rev)
	}
	return out, nil
}

func TestCreateValidatesRating(t *testing.T) {
	svc := NewService(newStubStore())

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Create(context.Background(), "mia@example.com", CreateInput{Trainer: "Jane Doe", Rating: rating})
		if !IsErrBadRequest(err) {
			t.Errorf("rating %d: expected bad request, got %v", rating, err)
		}
	}

	rev, err := svc.Create(context.Background(), "mia@example.com", CreateInput{Trainer: "Jane Doe", Rating: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rev.TrainerNameLower != "jane doe" {
		t.Fatalf("expected normalized trainer key, got %q", rev.TrainerNameLower)
	}
}

func TestListByTrainerNormalizesLookup(t *testing.T) {
	svc := NewService(newStubStore())

	if _, err := svc.Create(context.Background(), "mia@example.com", CreateInput{Trainer: "Jane   Doe", Rating: 4}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.ListByTrainer(context.Background(), "  jane DOE ")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one review, got %d", len(got))
	}
}

func TestDeleteAuthorization(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)

	rev, _ := svc.Create(context.Background(), "mia@example.com", CreateInput{Trainer: "Jane Doe", Rating: 4})

	// A stranger can neither.
	err := svc.Delete(context.Background(), rev.ID, "other@example.com", "Alex Kim")
	if !IsErrForbidden(err) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}

	// The reviewed trainer can, matched by normalized name.
	if err := svc.Delete(context.Background(), rev.ID, "jane@example.com", "JANE doe"); err != nil {
		t.Fatalf("trainer delete: %v", err)
	}

	// The author can, matched case-insensitively on email.
	rev2, _ := svc.Create(context.Background(), "mia@example.com", CreateInput{Trainer: "Jane Doe", Rating: 3})
	if err := svc.Delete(context.Background(), rev2.ID, "MIA@example.com", ""); err != nil {
		t.Fatalf("author delete: %v", err)
	}

	if err := svc.Delete(context.Background(), "missing", "mia@example.com", ""); !IsErrNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	svc := NewService(newStubStore())

	for _, r := range []int{5, 4} {
		if _, err := svc.Create(context.Background(), "mia@example.com", CreateInput{Trainer: "Jane Doe", Rating: r}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	sum, err := svc.Summarize(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.ReviewCount != 2 || sum.AverageRating != 4.5 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}
