package booking

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) participants() *firestore.CollectionRef {
	return r.fs.Collection("sessionParticipants")
}

// CreatePending creates a pending participant record. The duplicate check
// runs in the same transaction as the write, so two concurrent joins for the
// same (session, user) pair cannot both commit.
func (r *Repo) CreatePending(ctx context.Context, sessionID string, p Participant) (*Participant, error) {
	ref := r.participants().NewDoc()
	p.ID = ref.ID
	p.SessionID = sessionID
	p.Status = StatusPending

	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existingDocs, err := tx.Documents(r.participants().
			Where("sessionId", "==", sessionID).
			Where("userId", "==", p.UserID)).GetAll()
		if err != nil {
			return fmt.Errorf("failed to check existing participant: %w", err)
		}
		var existing *Participant
		for _, doc := range existingDocs {
			var e Participant
			if err := doc.DataTo(&e); err != nil {
				continue
			}
			if e.Status != StatusCancelled {
				e.ID = doc.Ref.ID
				existing = &e
				break
			}
		}

		if err := DecideJoin(existing); err != nil {
			return err
		}

		return tx.Create(ref, p)
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Approve transitions a pending participant to approved. The status check and
// the capacity re-count happen inside the transaction: the conditional update
// closes the check-then-set window between concurrent approvals.
func (r *Repo) Approve(ctx context.Context, sessionID, participantID string, maxParticipants int) (*Participant, error) {
	ref := r.participants().Doc(participantID)
	var out Participant

	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return fmt.Errorf("%w: participant not found", ErrNotFound)
		}
		var p Participant
		if err := doc.DataTo(&p); err != nil {
			return fmt.Errorf("failed to parse participant: %w", err)
		}
		p.ID = doc.Ref.ID
		if p.SessionID != sessionID {
			return fmt.Errorf("%w: participant not found for this session", ErrNotFound)
		}

		approved, err := r.approvedCountTx(tx, sessionID)
		if err != nil {
			return err
		}

		if err := DecideApproval(&p, approved, maxParticipants); err != nil {
			return err
		}

		now := time.Now().UTC()
		p.Status = StatusApproved
		p.ApprovedAt = &now
		out = p

		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: StatusApproved},
			{Path: "approvedAt", Value: now},
		})
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// Reject transitions a pending participant to rejected.
func (r *Repo) Reject(ctx context.Context, sessionID, participantID, reason string) (*Participant, error) {
	p, err := r.Get(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if p.SessionID != sessionID {
		return nil, fmt.Errorf("%w: participant not found for this session", ErrNotFound)
	}
	if err := DecideRejection(p); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = r.participants().Doc(participantID).Update(ctx, []firestore.Update{
		{Path: "status", Value: StatusRejected},
		{Path: "rejectedAt", Value: now},
		{Path: "rejectionReason", Value: reason},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reject participant: %w", err)
	}

	p.Status = StatusRejected
	p.RejectedAt = &now
	p.RejectionReason = reason
	return p, nil
}

// Get retrieves a participant by ID
func (r *Repo) Get(ctx context.Context, participantID string) (*Participant, error) {
	doc, err := r.participants().Doc(participantID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: participant not found", ErrNotFound)
	}

	var p Participant
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to parse participant: %w", err)
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

// ListBySession lists all participants of a session
func (r *Repo) ListBySession(ctx context.Context, sessionID string) ([]Participant, error) {
	iter := r.participants().Where("sessionId", "==", sessionID).Documents(ctx)
	defer iter.Stop()

	var out []Participant
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate participants: %w", err)
		}

		var p Participant
		if err := doc.DataTo(&p); err != nil {
			continue
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}

	if out == nil {
		out = []Participant{}
	}
	return out, nil
}

// ListByUser lists a user's non-cancelled participant records
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Participant, error) {
	iter := r.participants().Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()

	var out []Participant
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate participants: %w", err)
		}

		var p Participant
		if err := doc.DataTo(&p); err != nil {
			continue
		}
		if p.Status == StatusCancelled {
			continue
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}

	if out == nil {
		out = []Participant{}
	}
	return out, nil
}

// CancelBySession transitions every participant of a session to cancelled and
// returns the records as they were before the transition.
func (r *Repo) CancelBySession(ctx context.Context, sessionID, reason string) ([]Participant, error) {
	before, err := r.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	batch := r.fs.Batch()
	dirty := false
	for _, p := range before {
		if p.Status == StatusCancelled {
			continue
		}
		batch.Update(r.participants().Doc(p.ID), []firestore.Update{
			{Path: "status", Value: StatusCancelled},
			{Path: "cancelledAt", Value: now},
			{Path: "cancelReason", Value: reason},
		})
		dirty = true
	}
	if dirty {
		if _, err := batch.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to cancel participants: %w", err)
		}
	}

	return before, nil
}

func (r *Repo) approvedCountTx(tx *firestore.Transaction, sessionID string) (int, error) {
	docs, err := tx.Documents(r.participants().
		Where("sessionId", "==", sessionID).
		Where("status", "==", StatusApproved)).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count approved participants: %w", err)
	}
	return len(docs), nil
}
