package product

import (
	"context"
	"fmt"
	"time"
)

type Store interface {
	Create(ctx context.Context, p Product) (*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	GetMany(ctx context.Context, ids []string) (map[string]Product, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, in ListInput) ([]Product, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	in.Trim()
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrBadRequest)
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrBadRequest)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrBadRequest)
	}

	now := s.now().UTC()
	p := Product{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Image:       in.Image,
		Price:       in.Price,
		Stock:       in.Stock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.store.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}

	updates := make(map[string]interface{})
	if in.Title != nil {
		if *in.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrBadRequest)
		}
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Image != nil {
		updates["image"] = *in.Image
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrBadRequest)
		}
		updates["price"] = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, fmt.Errorf("%w: stock cannot be negative", ErrBadRequest)
		}
		updates["stock"] = *in.Stock
	}
	if in.Active != nil {
		updates["active"] = *in.Active
	}

	if len(updates) == 0 {
		return s.store.Get(ctx, id)
	}
	updates["updatedAt"] = s.now().UTC()

	return s.store.Update(ctx, id, updates)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, in ListInput) ([]Product, error) {
	return s.store.List(ctx, in)
}

// GetMany resolves the given product ids, silently dropping missing ones.
// Order creation uses this to price items server-side.
func (s *Service) GetMany(ctx context.Context, ids []string) (map[string]Product, error) {
	if len(ids) == 0 {
		return map[string]Product{}, nil
	}
	return s.store.GetMany(ctx, ids)
}
