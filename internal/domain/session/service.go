package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitsync-pro/backend/internal/cache"
)

// Store is the persistence surface the service needs. *Repo implements it;
// tests substitute stubs.
type Store interface {
	Create(ctx context.Context, s Session) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, sessionID string, updates map[string]interface{}) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	ListByTrainer(ctx context.Context, trainerKey string) ([]Session, error)
	List(ctx context.Context, input ListSessionsInput) ([]Session, error)
	GetMany(ctx context.Context, sessionIDs []string) ([]Session, error)
}

// Participants is implemented by the booking service. It is declared here so
// session cancellation can bulk-cancel participants without an import cycle.
type Participants interface {
	// CancelBySession transitions every participant of the session to
	// cancelled and returns the attendees who were approved beforehand.
	CancelBySession(ctx context.Context, sessionID, reason string) ([]Attendee, error)
	ListApproved(ctx context.Context, sessionID string) ([]Attendee, error)
	SessionIDsForUser(ctx context.Context, userID string) ([]string, error)
}

// Notifier receives session lifecycle events. Implementations must not fail
// the primary transition; delivery errors are theirs to log and swallow.
type Notifier interface {
	SessionCancelled(ctx context.Context, s *Session, attendees []Attendee, reason string)
	SessionRescheduled(ctx context.Context, s *Session, attendees []Attendee)
}

type Service struct {
	store        Store
	participants Participants
	notifier     Notifier
	cache        cache.Cache
	cacheTTL     time.Duration
	now          func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// SetParticipants sets the participation workflow used for bulk cancellation
// and joined-session lookups.
func (s *Service) SetParticipants(p Participants) {
	s.participants = p
}

// SetNotifier sets the notification dispatcher for lifecycle events.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// SetCache enables the public-listing cache.
func (s *Service) SetCache(c cache.Cache, ttl time.Duration) {
	s.cache = c
	s.cacheTTL = ttl
}

// SetClock overrides the clock, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Create creates a new session after validating the interval and checking the
// trainer's calendar for overlaps.
func (s *Service) Create(ctx context.Context, creatorUID string, in CreateSessionInput) (*Session, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	key := TrainerKeyFor(in.TrainerID, in.TrainerName)
	if err := s.checkConflict(ctx, key, in.Start, in.End, ""); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sess := Session{
		Title:           in.Title,
		Description:     in.Description,
		TrainerID:       in.TrainerID,
		TrainerName:     in.TrainerName,
		TrainerKey:      key,
		Start:           in.Start.UTC(),
		End:             in.End.UTC(),
		Location:        in.Location,
		MaxParticipants: in.MaxParticipants,
		CreatedBy:       creatorUID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	out, err := s.store.Create(ctx, sess)
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return out, nil
}

// Get retrieves a session by ID
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrBadRequest)
	}
	return s.store.Get(ctx, sessionID)
}

// Update updates a session with the same validations as Create, excluding the
// session itself from the conflict check.
func (s *Service) Update(ctx context.Context, sessionID string, in UpdateSessionInput) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrBadRequest)
	}

	existing, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updatedAt": s.now().UTC(),
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrBadRequest)
		}
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Location != nil {
		if *in.Location == "" {
			return nil, fmt.Errorf("%w: location cannot be empty", ErrBadRequest)
		}
		updates["location"] = *in.Location
	}
	if in.MaxParticipants != nil {
		if *in.MaxParticipants <= 0 {
			return nil, fmt.Errorf("%w: maxParticipants must be positive", ErrBadRequest)
		}
		updates["maxParticipants"] = *in.MaxParticipants
	}

	if in.Start != nil || in.End != nil {
		start, end := existing.Start, existing.End
		if in.Start != nil {
			start = in.Start.UTC()
		}
		if in.End != nil {
			end = in.End.UTC()
		}
		if !end.After(start) {
			return nil, fmt.Errorf("%w: end must be after start", ErrBadRequest)
		}
		if err := s.checkConflict(ctx, existing.TrainerKey, start, end, existing.ID); err != nil {
			return nil, err
		}
		updates["start"] = start
		updates["end"] = end
	}

	out, err := s.store.Update(ctx, sessionID, updates)
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return out, nil
}

// Delete hard-deletes a session
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionId is required", ErrBadRequest)
	}

	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

// Cancel cancels a future session, bulk-cancels its participants and notifies
// everyone who was approved.
func (s *Service) Cancel(ctx context.Context, sessionID string, in CancelSessionInput) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrBadRequest)
	}
	if in.Reason == "" || in.CancelledBy == "" {
		return nil, fmt.Errorf("%w: reason and cancelledBy are required", ErrBadRequest)
	}

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Canceled {
		return nil, fmt.Errorf("%w: session is already cancelled", ErrConflict)
	}
	now := s.now().UTC()
	if !sess.Start.After(now) {
		return nil, fmt.Errorf("%w: cannot cancel a session that has already started", ErrBadRequest)
	}

	out, err := s.store.Update(ctx, sessionID, map[string]interface{}{
		"canceled":     true,
		"cancelReason": in.Reason,
		"canceledBy":   in.CancelledBy,
		"canceledAt":   now,
		"updatedAt":    now,
	})
	if err != nil {
		return nil, err
	}

	var approved []Attendee
	if s.participants != nil {
		approved, err = s.participants.CancelBySession(ctx, sessionID, in.Reason)
		if err != nil {
			return nil, err
		}
	}

	if s.notifier != nil {
		s.notifier.SessionCancelled(ctx, out, approved, in.Reason)
	}

	s.invalidateListing(ctx)
	return out, nil
}

// Reschedule moves a future session to a new interval, re-running the
// conflict check against the trainer's other sessions.
func (s *Service) Reschedule(ctx context.Context, sessionID string, in RescheduleSessionInput) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrBadRequest)
	}
	if in.RescheduledBy == "" {
		return nil, fmt.Errorf("%w: rescheduledBy is required", ErrBadRequest)
	}
	if in.NewStart.IsZero() || in.NewEnd.IsZero() {
		return nil, fmt.Errorf("%w: newStart and newEnd are required", ErrBadRequest)
	}
	if !in.NewEnd.After(in.NewStart) {
		return nil, fmt.Errorf("%w: newEnd must be after newStart", ErrBadRequest)
	}

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Canceled {
		return nil, fmt.Errorf("%w: cannot reschedule a cancelled session", ErrConflict)
	}
	now := s.now().UTC()
	if !sess.Start.After(now) {
		return nil, fmt.Errorf("%w: cannot reschedule a session that has already started", ErrBadRequest)
	}

	if err := s.checkConflict(ctx, sess.TrainerKey, in.NewStart, in.NewEnd, sess.ID); err != nil {
		return nil, err
	}

	prevStart, prevEnd := sess.Start, sess.End
	out, err := s.store.Update(ctx, sessionID, map[string]interface{}{
		"start":            in.NewStart.UTC(),
		"end":              in.NewEnd.UTC(),
		"previousStart":    prevStart,
		"previousEnd":      prevEnd,
		"rescheduledBy":    in.RescheduledBy,
		"rescheduleReason": in.Reason,
		"updatedAt":        now,
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && s.participants != nil {
		approved, err := s.participants.ListApproved(ctx, sessionID)
		if err == nil {
			s.notifier.SessionRescheduled(ctx, out, approved)
		}
	}

	s.invalidateListing(ctx)
	return out, nil
}

// List lists sessions. The public unfiltered listing is served through the
// TTL cache when one is configured.
func (s *Service) List(ctx context.Context, in ListSessionsInput) ([]Session, error) {
	if in.JoinedUserID != "" {
		if s.participants == nil {
			return []Session{}, nil
		}
		ids, err := s.participants.SessionIDsForUser(ctx, in.JoinedUserID)
		if err != nil {
			return nil, err
		}
		sessions, err := s.store.GetMany(ctx, ids)
		if err != nil {
			return nil, err
		}
		if !in.IncludeCanceled {
			kept := sessions[:0]
			for _, sess := range sessions {
				if !sess.Canceled {
					kept = append(kept, sess)
				}
			}
			sessions = kept
		}
		return sessions, nil
	}

	cacheable := s.cache != nil && in.Public && in.TrainerID == "" && !in.IncludeCanceled
	if cacheable {
		if data, ok := s.cache.Get(ctx, cache.SessionListKey); ok {
			var sessions []Session
			if err := json.Unmarshal(data, &sessions); err == nil {
				return sessions, nil
			}
		}
	}

	sessions, err := s.store.List(ctx, in)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if data, err := json.Marshal(sessions); err == nil {
			s.cache.Set(ctx, cache.SessionListKey, data, s.cacheTTL)
		}
	}

	return sessions, nil
}

func (s *Service) checkConflict(ctx context.Context, trainerKey string, start, end time.Time, excludeID string) error {
	existing, err := s.store.ListByTrainer(ctx, trainerKey)
	if err != nil {
		return fmt.Errorf("failed to check trainer calendar: %w", err)
	}
	if c := FindConflict(existing, start, end, excludeID); c != nil {
		return fmt.Errorf("%w: trainer already has a session in this time slot", ErrConflict)
	}
	return nil
}

func (s *Service) invalidateListing(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.SessionListKey)
	}
}

func validateCreateInput(in CreateSessionInput) error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrBadRequest)
	}
	if in.TrainerName == "" {
		return fmt.Errorf("%w: trainerName is required", ErrBadRequest)
	}
	if in.Location == "" {
		return fmt.Errorf("%w: location is required", ErrBadRequest)
	}
	if in.MaxParticipants <= 0 {
		return fmt.Errorf("%w: maxParticipants must be positive", ErrBadRequest)
	}
	if in.Start.IsZero() || in.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrBadRequest)
	}
	if !in.End.After(in.Start) {
		return fmt.Errorf("%w: end must be after start", ErrBadRequest)
	}
	return nil
}
