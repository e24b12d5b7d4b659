package booking

import "fmt"

// The decision functions below are the participation state machine. The
// Firestore repo calls them inside a transaction so that the capacity
// check-then-set is a single conditional update; concurrent approvals against
// a nearly-full session cannot both commit.

// DecideJoin validates a join request given the user's existing record (nil
// if none). A cancelled prior record does not block re-joining. Capacity is
// not checked here: a join against a full session still parks as pending, and
// the cap is enforced when the trainer approves.
func DecideJoin(existing *Participant) error {
	if existing != nil && existing.Status != StatusCancelled {
		return fmt.Errorf("%w: you have already requested to join this session", ErrConflict)
	}
	return nil
}

// DecideApproval validates an approve transition. Only pending participants
// can be approved, and capacity is re-checked at approval time.
func DecideApproval(p *Participant, approvedCount, maxParticipants int) error {
	if p.Status != StatusPending {
		return fmt.Errorf("%w: booking is already %s", ErrConflict, p.Status)
	}
	if approvedCount >= maxParticipants {
		return fmt.Errorf("%w: session is full", ErrConflict)
	}
	return nil
}

// DecideRejection validates a reject transition. Only pending participants
// can be rejected.
func DecideRejection(p *Participant) error {
	if p.Status != StatusPending {
		return fmt.Errorf("%w: booking is already %s", ErrConflict, p.Status)
	}
	return nil
}
