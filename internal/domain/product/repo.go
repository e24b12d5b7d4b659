package product

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const collection = "products"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(collection)
}

func (r *Repo) Create(ctx context.Context, p Product) (*Product, error) {
	ref := r.col().NewDoc()
	p.ID = ref.ID

	if _, err := ref.Set(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Product, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: product not found", ErrNotFound)
	}

	var p Product
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

// GetMany resolves product ids, skipping ids that no longer exist.
func (r *Repo) GetMany(ctx context.Context, ids []string) (map[string]Product, error) {
	out := make(map[string]Product, len(ids))
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if err != nil {
			if IsErrNotFound(err) {
				continue
			}
			return nil, err
		}
		out[id] = *p
	}
	return out, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]interface{}) (*Product, error) {
	ref := r.col().Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return nil, fmt.Errorf("%w: product not found", ErrNotFound)
	}

	if _, err := ref.Set(ctx, updates, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ref := r.col().Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return fmt.Errorf("%w: product not found", ErrNotFound)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, in ListInput) ([]Product, error) {
	q := r.col().Query
	if in.Category != "" {
		q = q.Where("category", "==", in.Category)
	}
	if !in.IncludeHidden {
		q = q.Where("active", "==", true)
	}
	q = q.OrderBy("title", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []Product
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		var p Product
		if err := doc.DataTo(&p); err != nil {
			continue
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}
	return out, nil
}
