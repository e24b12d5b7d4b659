package order

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"fitsync-pro/backend/internal/domain/product"
)

type stubStore struct {
	byID   map[string]*Order
	nextID int
}

func newStubStore() *stubStore {
	return &stubStore{byID: make(map[string]*Order)}
}

func (s *stubStore) Create(_ context.Context, o Order) (*Order, error) {
	s.nextID++
	o.ID = "o" + strconv.Itoa(s.nextID)
	cp := o
	s.byID[cp.ID] = &cp
	return &o, nil
}

func (s *stubStore) Get(_ context.Context, id string) (*Order, error) {
	o, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubStore) Update(_ context.Context, id string, updates map[string]interface{}) (*Order, error) {
	o, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if v, ok := updates["status"]; ok {
		o.Status = v.(string)
	}
	if v, ok := updates["stripeSessionId"]; ok {
		o.StripeSessionID = v.(string)
	}
	cp := *o
	return &cp, nil
}

func (s *stubStore) ListByUser(_ context.Context, userID string) ([]Order, error) {
	var out []Order
	for _, o := range s.byID {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubStore) ListAll(_ context.Context) ([]Order, error) {
	var out []Order
	for _, o := range s.byID {
		out = append(out, *o)
	}
	return out, nil
}

type stubProducts struct {
	byID map[string]product.Product
}

func (s *stubProducts) GetMany(_ context.Context, ids []string) (map[string]product.Product, error) {
	out := make(map[string]product.Product)
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func fixture() (*Service, *stubStore) {
	store := newStubStore()
	products := &stubProducts{byID: map[string]product.Product{
		"gloves": {ID: "gloves", Title: "Lifting Gloves", Price: 19.99, Category: "gear"},
		"shaker": {ID: "shaker", Title: "Shaker Bottle", Price: 9.5, Category: "accessories"},
	}}
	return NewService(store, products), store
}

func TestCreateRecomputesTotalFromCatalog(t *testing.T) {
	svc, _ := fixture()

	o, err := svc.Create(context.Background(), "u1", CreateInput{
		Items: []ItemInput{
			{ProductID: "gloves", Quantity: 2},
			{ProductID: "shaker", Quantity: 1},
		},
		// Client total is a lie and must be ignored.
		TotalAmount: 1.00,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.TotalAmount != 49.48 {
		t.Fatalf("expected server-side total 49.48, got %v", o.TotalAmount)
	}
	if o.Status != StatusPending {
		t.Fatalf("expected pending, got %s", o.Status)
	}
	if !strings.HasPrefix(o.OrderNumber, "ORD-") || len(o.OrderNumber) != 16 {
		t.Fatalf("unexpected order number %q", o.OrderNumber)
	}
	if o.Items[0].Price != 19.99 || o.Items[0].Title != "Lifting Gloves" {
		t.Fatalf("expected catalog snapshot on items, got %+v", o.Items[0])
	}
}

func TestCreateRejectsUnknownProductAndBadQuantities(t *testing.T) {
	svc, _ := fixture()

	_, err := svc.Create(context.Background(), "u1", CreateInput{Items: []ItemInput{{ProductID: "ghost", Quantity: 1}}})
	if !IsErrBadRequest(err) {
		t.Fatalf("expected bad request for unknown product, got %v", err)
	}

	_, err = svc.Create(context.Background(), "u1", CreateInput{Items: []ItemInput{{ProductID: "gloves", Quantity: 0}}})
	if !IsErrBadRequest(err) {
		t.Fatalf("expected bad request for zero quantity, got %v", err)
	}

	_, err = svc.Create(context.Background(), "u1", CreateInput{})
	if !IsErrBadRequest(err) {
		t.Fatalf("expected bad request for empty order, got %v", err)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, _ := fixture()

	o, _ := svc.Create(context.Background(), "u1", CreateInput{Items: []ItemInput{{ProductID: "gloves", Quantity: 1}}})

	if _, err := svc.Get(context.Background(), o.ID, "u2", false); !IsErrForbidden(err) {
		t.Fatalf("expected forbidden for other user, got %v", err)
	}
	if _, err := svc.Get(context.Background(), o.ID, "u2", true); err != nil {
		t.Fatalf("admin read: %v", err)
	}
	if _, err := svc.Get(context.Background(), o.ID, "u1", false); err != nil {
		t.Fatalf("owner read: %v", err)
	}
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	svc, _ := fixture()

	o, _ := svc.Create(context.Background(), "u1", CreateInput{Items: []ItemInput{{ProductID: "gloves", Quantity: 1}}})

	if _, err := svc.UpdateStatus(context.Background(), o.ID, StatusInput{Status: "shipped"}); !IsErrConflict(err) {
		t.Fatalf("expected conflict for pending -> shipped, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), o.ID, StatusInput{Status: "refunded"}); !IsErrBadRequest(err) {
		t.Fatalf("expected bad request for unknown status, got %v", err)
	}

	for _, status := range []string{"paid", "shipped", "completed"} {
		out, err := svc.UpdateStatus(context.Background(), o.ID, StatusInput{Status: status})
		if err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
		if out.Status != status {
			t.Fatalf("expected %s, got %s", status, out.Status)
		}
	}
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	svc, store := fixture()

	o, _ := svc.Create(context.Background(), "u1", CreateInput{Items: []ItemInput{{ProductID: "gloves", Quantity: 1}}})

	if err := svc.markPaid(context.Background(), o.ID, "cs_123"); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if store.byID[o.ID].Status != StatusPaid {
		t.Fatalf("expected paid, got %s", store.byID[o.ID].Status)
	}

	// Replayed webhook event is a no-op, not an error.
	if err := svc.markPaid(context.Background(), o.ID, "cs_123"); err != nil {
		t.Fatalf("replay: %v", err)
	}

	// A shipped order cannot be re-marked paid.
	if _, err := svc.UpdateStatus(context.Background(), o.ID, StatusInput{Status: "shipped"}); err != nil {
		t.Fatalf("ship: %v", err)
	}
	if err := svc.markPaid(context.Background(), o.ID, "cs_456"); err == nil {
		t.Fatalf("expected conflict marking shipped order paid")
	}
}

func TestToCents(t *testing.T) {
	if got := toCents(19.99); got != 1999 {
		t.Fatalf("expected 1999, got %d", got)
	}
	if got := toCents(9.5); got != 950 {
		t.Fatalf("expected 950, got %d", got)
	}
}
