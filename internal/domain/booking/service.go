package booking

import (
	"context"
	"fmt"
	"time"

	"fitsync-pro/backend/internal/domain/session"
)

// Store is the persistence surface the service needs. *Repo implements it
// with transactional duplicate/capacity guards; tests substitute stubs.
type Store interface {
	CreatePending(ctx context.Context, sessionID string, p Participant) (*Participant, error)
	Approve(ctx context.Context, sessionID, participantID string, maxParticipants int) (*Participant, error)
	Reject(ctx context.Context, sessionID, participantID, reason string) (*Participant, error)
	Get(ctx context.Context, participantID string) (*Participant, error)
	ListBySession(ctx context.Context, sessionID string) ([]Participant, error)
	ListByUser(ctx context.Context, userID string) ([]Participant, error)
	CancelBySession(ctx context.Context, sessionID, reason string) ([]Participant, error)
}

// SessionSource resolves the parent session of a booking.
type SessionSource interface {
	Get(ctx context.Context, sessionID string) (*session.Session, error)
}

// Notifier receives booking state transitions. Implementations must not fail
// the transition; delivery errors are theirs to log and swallow.
type Notifier interface {
	BookingRequested(ctx context.Context, sess *session.Session, p *Participant)
	BookingApproved(ctx context.Context, sess *session.Session, p *Participant)
	BookingRejected(ctx context.Context, sess *session.Session, p *Participant)
}

type Service struct {
	store    Store
	sessions SessionSource
	notifier Notifier
	now      func() time.Time
}

func NewService(store Store, sessions SessionSource) *Service {
	return &Service{store: store, sessions: sessions, now: time.Now}
}

// SetNotifier sets the notification dispatcher for booking transitions.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// SetClock overrides the clock, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Join creates a pending participant record for a member. Rejected when the
// session is missing or cancelled, or when the user already has a
// non-cancelled record. A full session still accepts joins as pending; the
// cap is enforced at approval.
func (s *Service) Join(ctx context.Context, sessionID string, in JoinInput) (*Participant, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrBadRequest)
	}
	if in.UserID == "" || in.UserName == "" {
		return nil, fmt.Errorf("%w: userId and userName are required", ErrBadRequest)
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: session not found", ErrNotFound)
	}
	if sess.Canceled {
		return nil, fmt.Errorf("%w: session has been cancelled", ErrConflict)
	}

	p := Participant{
		UserID:    in.UserID,
		UserName:  in.UserName,
		UserEmail: in.UserEmail,
		JoinedAt:  s.now().UTC(),
	}

	out, err := s.store.CreatePending(ctx, sessionID, p)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BookingRequested(ctx, sess, out)
	}
	return out, nil
}

// Approve transitions a pending booking to approved, re-checking capacity at
// approval time.
func (s *Service) Approve(ctx context.Context, sessionID string, in DecisionInput) (*Participant, error) {
	if sessionID == "" || in.ParticipantID == "" {
		return nil, fmt.Errorf("%w: sessionId and participantId are required", ErrBadRequest)
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: session not found", ErrNotFound)
	}

	out, err := s.store.Approve(ctx, sessionID, in.ParticipantID, sess.MaxParticipants)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BookingApproved(ctx, sess, out)
	}
	return out, nil
}

// Reject transitions a pending booking to rejected.
func (s *Service) Reject(ctx context.Context, sessionID string, in DecisionInput) (*Participant, error) {
	if sessionID == "" || in.ParticipantID == "" {
		return nil, fmt.Errorf("%w: sessionId and participantId are required", ErrBadRequest)
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: session not found", ErrNotFound)
	}

	out, err := s.store.Reject(ctx, sessionID, in.ParticipantID, in.RejectionReason)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BookingRejected(ctx, sess, out)
	}
	return out, nil
}

// ListParticipants returns a session's participants grouped by status.
func (s *Service) ListParticipants(ctx context.Context, sessionID string) (*GroupedParticipants, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrBadRequest)
	}
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("%w: session not found", ErrNotFound)
	}

	participants, err := s.store.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	g := GroupByStatus(participants)
	return &g, nil
}

// CancelBySession bulk-cancels every participant of a session and returns the
// attendees who were approved beforehand. Implements session.Participants.
func (s *Service) CancelBySession(ctx context.Context, sessionID, reason string) ([]session.Attendee, error) {
	before, err := s.store.CancelBySession(ctx, sessionID, reason)
	if err != nil {
		return nil, err
	}

	var approved []session.Attendee
	for _, p := range before {
		if p.Status == StatusApproved {
			approved = append(approved, session.Attendee{
				UserID:    p.UserID,
				UserName:  p.UserName,
				UserEmail: p.UserEmail,
			})
		}
	}
	return approved, nil
}

// ListApproved returns the approved attendees of a session. Implements
// session.Participants.
func (s *Service) ListApproved(ctx context.Context, sessionID string) ([]session.Attendee, error) {
	participants, err := s.store.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var approved []session.Attendee
	for _, p := range participants {
		if p.Status == StatusApproved {
			approved = append(approved, session.Attendee{
				UserID:    p.UserID,
				UserName:  p.UserName,
				UserEmail: p.UserEmail,
			})
		}
	}
	return approved, nil
}

// SessionIDsForUser returns the session ids the user has a non-cancelled
// booking for. Implements session.Participants.
func (s *Service) SessionIDsForUser(ctx context.Context, userID string) ([]string, error) {
	participants, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var ids []string
	for _, p := range participants {
		if !seen[p.SessionID] {
			seen[p.SessionID] = true
			ids = append(ids, p.SessionID)
		}
	}
	return ids, nil
}
