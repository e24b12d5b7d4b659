package order

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const collection = "orders"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(collection)
}

func (r *Repo) Create(ctx context.Context, o Order) (*Order, error) {
	ref := r.col().NewDoc()
	o.ID = ref.ID

	if _, err := ref.Set(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &o, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Order, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: order not found", ErrNotFound)
	}

	var o Order
	if err := doc.DataTo(&o); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}
	o.ID = doc.Ref.ID
	return &o, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]interface{}) (*Order, error) {
	ref := r.col().Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return nil, fmt.Errorf("%w: order not found", ErrNotFound)
	}

	if _, err := ref.Set(ctx, updates, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return r.Get(ctx, id)
}

// ListByUser returns a user's orders, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	iter := r.col().
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collect(iter)
}

// ListAll returns every order, for the admin dashboard revenue tally.
func (r *Repo) ListAll(ctx context.Context) ([]Order, error) {
	iter := r.col().Documents(ctx)
	defer iter.Stop()

	return collect(iter)
}

func collect(iter *firestore.DocumentIterator) ([]Order, error) {
	var out []Order
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list orders: %w", err)
		}
		var o Order
		if err := doc.DataTo(&o); err != nil {
			continue
		}
		o.ID = doc.Ref.ID
		out = append(out, o)
	}
	return out, nil
}
