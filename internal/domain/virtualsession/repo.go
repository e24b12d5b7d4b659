package virtualsession

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const collection = "virtualSessions"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(collection)
}

func (r *Repo) Create(ctx context.Context, v VirtualSession) (*VirtualSession, error) {
	ref := r.col().NewDoc()
	v.ID = ref.ID

	if _, err := ref.Set(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create virtual session: %w", err)
	}
	return &v, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*VirtualSession, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: virtual session not found", ErrNotFound)
	}

	var v VirtualSession
	if err := doc.DataTo(&v); err != nil {
		return nil, fmt.Errorf("failed to parse virtual session: %w", err)
	}
	v.ID = doc.Ref.ID
	return &v, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]interface{}) (*VirtualSession, error) {
	ref := r.col().Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return nil, fmt.Errorf("%w: virtual session not found", ErrNotFound)
	}

	if _, err := ref.Set(ctx, updates, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update virtual session: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ref := r.col().Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return fmt.Errorf("%w: virtual session not found", ErrNotFound)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete virtual session: %w", err)
	}
	return nil
}

// List returns virtual sessions ordered by date then start time, optionally
// filtered to a single trainer key.
func (r *Repo) List(ctx context.Context, trainerKey string) ([]VirtualSession, error) {
	q := r.col().Query
	if trainerKey != "" {
		q = q.Where("trainerKey", "==", trainerKey)
	}
	q = q.OrderBy("date", firestore.Asc).OrderBy("startTime", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []VirtualSession
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list virtual sessions: %w", err)
		}
		var v VirtualSession
		if err := doc.DataTo(&v); err != nil {
			continue
		}
		v.ID = doc.Ref.ID
		out = append(out, v)
	}
	return out, nil
}
