package product

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubStore struct {
	created *Product
	updated map[string]interface{}
	got     *Product
}

func (s *stubStore) Create(ctx context.Context, p Product) (*Product, error) {
	p.ID = "p1"
	s.created = &p
	return &p, nil
}

func (s *stubStore) Get(ctx context.Context, id string) (*Product, error) {
	if s.got == nil {
		return nil, ErrNotFound
	}
	return s.got, nil
}

func (s *stubStore) GetMany(ctx context.Context, ids []string) (map[string]Product, error) {
	out := make(map[string]Product)
	if s.got != nil {
		for _, id := range ids {
			if id == s.got.ID {
				out[id] = *s.got
			}
		}
	}
	return out, nil
}

func (s *stubStore) Update(ctx context.Context, id string, updates map[string]interface{}) (*Product, error) {
	s.updated = updates
	p := Product{ID: id}
	return &p, nil
}

func (s *stubStore) Delete(ctx context.Context, id string) error { return nil }

func (s *stubStore) List(ctx context.Context, in ListInput) ([]Product, error) {
	return nil, nil
}

func newTestService(store *stubStore) *Service {
	svc := NewService(store)
	svc.SetClock(func() time.Time {
		return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	})
	return svc
}

func TestCreateDefaultsActiveAndTrims(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store)

	p, err := svc.Create(context.Background(), CreateInput{
		Title: "  Resistance Band  ",
		Price: 12.5,
		Stock: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Title != "Resistance Band" {
		t.Errorf("title = %q, want trimmed", p.Title)
	}
	if !p.Active {
		t.Error("new products should be active")
	}
	if p.CreatedAt.IsZero() || !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Errorf("timestamps not stamped: %v / %v", p.CreatedAt, p.UpdatedAt)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(&stubStore{})
	tests := []struct {
		name string
		in   CreateInput
	}{
		{"empty title", CreateInput{Price: 10}},
		{"zero price", CreateInput{Title: "Mat", Price: 0}},
		{"negative price", CreateInput{Title: "Mat", Price: -5}},
		{"negative stock", CreateInput{Title: "Mat", Price: 10, Stock: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.in); !errors.Is(err, ErrBadRequest) {
				t.Errorf("err = %v, want ErrBadRequest", err)
			}
		})
	}
}

func TestUpdateValidatesChangedFields(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store)

	badPrice := -1.0
	if _, err := svc.Update(context.Background(), "p1", UpdateInput{Price: &badPrice}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("negative price: err = %v, want ErrBadRequest", err)
	}

	price := 19.99
	active := false
	if _, err := svc.Update(context.Background(), "p1", UpdateInput{Price: &price, Active: &active}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if store.updated["price"] != 19.99 {
		t.Errorf("price update = %v", store.updated["price"])
	}
	if store.updated["active"] != false {
		t.Errorf("active update = %v", store.updated["active"])
	}
	if _, ok := store.updated["updatedAt"]; !ok {
		t.Error("updatedAt not stamped")
	}
	if _, ok := store.updated["title"]; ok {
		t.Error("unchanged title should not appear in updates")
	}
}

func TestUpdateNoFieldsReturnsCurrent(t *testing.T) {
	store := &stubStore{got: &Product{ID: "p1", Title: "Mat"}}
	svc := newTestService(store)

	p, err := svc.Update(context.Background(), "p1", UpdateInput{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Title != "Mat" {
		t.Errorf("got %q, want stored product back", p.Title)
	}
	if store.updated != nil {
		t.Error("no write should happen for an empty update")
	}
}

func TestGetManyEmptyInput(t *testing.T) {
	svc := newTestService(&stubStore{})
	got, err := svc.GetMany(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d products, want none", len(got))
	}
}
