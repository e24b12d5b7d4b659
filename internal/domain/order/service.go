package order

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitsync-pro/backend/internal/domain/product"
)

type Store interface {
	Create(ctx context.Context, o Order) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

// Products resolves catalog items for server-side pricing.
type Products interface {
	GetMany(ctx context.Context, ids []string) (map[string]product.Product, error)
}

type Service struct {
	store    Store
	products Products
	stripe   *StripeConfig
	now      func() time.Time
	newID    func() string
}

func NewService(store Store, products Products) *Service {
	return &Service{
		store:    store,
		products: products,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// SetStripeConfig enables checkout and webhook handling.
func (s *Service) SetStripeConfig(cfg *StripeConfig) {
	s.stripe = cfg
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Create places an order. Every line is priced from the catalog; the
// client-supplied totalAmount is ignored.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrBadRequest)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrBadRequest)
	}

	ids := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: productId is required on every item", ErrBadRequest)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrBadRequest)
		}
		ids = append(ids, item.ProductID)
	}

	catalog, err := s.products.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	items := make([]OrderItem, 0, len(in.Items))
	total := 0.0
	for _, item := range in.Items {
		p, ok := catalog[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s not found", ErrBadRequest, item.ProductID)
		}
		items = append(items, OrderItem{
			ProductID: p.ID,
			Title:     p.Title,
			Image:     p.Image,
			Category:  p.Category,
			Price:     p.Price,
			Quantity:  item.Quantity,
		})
		total += p.Price * float64(item.Quantity)
	}
	total = math.Round(total*100) / 100

	now := s.now().UTC()
	o := Order{
		UserID:      userID,
		Items:       items,
		TotalAmount: total,
		OrderNumber: newOrderNumber(s.newID()),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.store.Create(ctx, o)
}

// Get returns an order. Non-admin callers may only read their own.
func (s *Service) Get(ctx context.Context, id, requesterUID string, isAdmin bool) (*Order, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}

	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != requesterUID {
		return nil, fmt.Errorf("%w: not your order", ErrForbidden)
	}
	return o, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrBadRequest)
	}
	return s.store.ListByUser(ctx, userID)
}

// UpdateStatus applies a lifecycle transition, rejecting moves the state
// machine does not allow.
func (s *Service) UpdateStatus(ctx context.Context, id string, in StatusInput) (*Order, error) {
	in.Trim()
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	if !ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadRequest, in.Status)
	}

	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, in.Status) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrConflict, o.Status, in.Status)
	}

	now := s.now().UTC()
	updates := map[string]interface{}{
		"status":    in.Status,
		"updatedAt": now,
	}
	switch in.Status {
	case StatusPaid:
		updates["paidAt"] = now
	case StatusCancelled:
		updates["cancelledAt"] = now
	}

	return s.store.Update(ctx, id, updates)
}

// markPaid is the webhook path to the paid transition. Already-paid orders
// are left alone so replayed events stay idempotent.
func (s *Service) markPaid(ctx context.Context, id, stripeSessionID string) error {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if o.Status == StatusPaid {
		return nil
	}
	if !CanTransition(o.Status, StatusPaid) {
		return fmt.Errorf("%w: cannot mark %s order paid", ErrConflict, o.Status)
	}

	now := s.now().UTC()
	_, err = s.store.Update(ctx, id, map[string]interface{}{
		"status":          StatusPaid,
		"paidAt":          now,
		"updatedAt":       now,
		"stripeSessionId": stripeSessionID,
	})
	return err
}

// newOrderNumber derives a short human-facing order number from a uuid.
func newOrderNumber(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 12 {
		compact = compact[:12]
	}
	return "ORD-" + strings.ToUpper(compact)
}
