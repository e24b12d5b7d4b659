package session

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) sessions() *firestore.CollectionRef {
	return r.fs.Collection("sessions")
}

// Create creates a new session
func (r *Repo) Create(ctx context.Context, s Session) (*Session, error) {
	ref := r.sessions().NewDoc()
	s.ID = ref.ID

	_, err := ref.Set(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &s, nil
}

// Get retrieves a session by ID
func (r *Repo) Get(ctx context.Context, sessionID string) (*Session, error) {
	doc, err := r.sessions().Doc(sessionID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: session not found", ErrNotFound)
	}

	var s Session
	if err := doc.DataTo(&s); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	s.ID = doc.Ref.ID

	return &s, nil
}

// Update applies a partial update and returns the fresh document.
func (r *Repo) Update(ctx context.Context, sessionID string, updates map[string]interface{}) (*Session, error) {
	ref := r.sessions().Doc(sessionID)

	_, err := ref.Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return r.Get(ctx, sessionID)
}

// Delete hard-deletes a session
func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	_, err := r.sessions().Doc(sessionID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ListByTrainer lists all sessions for a trainer identity, cancelled ones
// included; the conflict checker filters those itself.
func (r *Repo) ListByTrainer(ctx context.Context, trainerKey string) ([]Session, error) {
	q := r.sessions().Query.Where("trainerKey", "==", trainerKey)
	return r.collect(ctx, q)
}

// List lists sessions with optional filters
func (r *Repo) List(ctx context.Context, input ListSessionsInput) ([]Session, error) {
	q := r.sessions().Query

	if input.TrainerID != "" {
		q = q.Where("trainerKey", "==", input.TrainerID)
	}
	if !input.IncludeCanceled {
		q = q.Where("canceled", "==", false)
	}

	limit := input.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	q = q.OrderBy("start", firestore.Asc).Limit(int(limit))

	return r.collect(ctx, q)
}

// GetMany fetches sessions by id, skipping ones that no longer exist.
func (r *Repo) GetMany(ctx context.Context, sessionIDs []string) ([]Session, error) {
	var sessions []Session
	for _, id := range sessionIDs {
		s, err := r.Get(ctx, id)
		if err != nil {
			if IsErrNotFound(err) {
				continue
			}
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	if sessions == nil {
		sessions = []Session{}
	}
	return sessions, nil
}

func (r *Repo) collect(ctx context.Context, q firestore.Query) ([]Session, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var sessions []Session
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate sessions: %w", err)
		}

		var s Session
		if err := doc.DataTo(&s); err != nil {
			continue
		}
		s.ID = doc.Ref.ID
		sessions = append(sessions, s)
	}

	if sessions == nil {
		sessions = []Session{}
	}

	return sessions, nil
}
