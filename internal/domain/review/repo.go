package review

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const collection = "reviews"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(collection)
}

func (r *Repo) Create(ctx context.Context, rev Review) (*Review, error) {
	ref := r.col().NewDoc()
	rev.ID = ref.ID

	if _, err := ref.Set(ctx, rev); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &rev, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Review, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: review not found", ErrNotFound)
	}

	var rev Review
	if err := doc.DataTo(&rev); err != nil {
		return nil, fmt.Errorf("failed to parse review: %w", err)
	}
	rev.ID = doc.Ref.ID
	return &rev, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// ListByTrainer returns reviews for a normalized trainer name, newest first.
func (r *Repo) ListByTrainer(ctx context.Context, trainerNameLower string) ([]Review, error) {
	iter := r.col().
		Where("trainerNameLower", "==", trainerNameLower).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collect(iter)
}

// ListAll returns every review. Used by trainer discovery and admin stats.
func (r *Repo) ListAll(ctx context.Context) ([]Review, error) {
	iter := r.col().Documents(ctx)
	defer iter.Stop()

	return collect(iter)
}

func collect(iter *firestore.DocumentIterator) ([]Review, error) {
	var out []Review
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list reviews: %w", err)
		}
		var rev Review
		if err := doc.DataTo(&rev); err != nil {
			continue
		}
		rev.ID = doc.Ref.ID
		out = append(out, rev)
	}
	return out, nil
}
