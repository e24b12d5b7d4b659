package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"fitsync-pro/backend/internal/domain/booking"
	"fitsync-pro/backend/internal/domain/session"
)

type Store interface {
	Create(ctx context.Context, uid string, n Notification) (*Notification, error)
	List(ctx context.Context, uid string, unreadOnly bool, limit int) (*ListResult, error)
	MarkRead(ctx context.Context, uid string, in MarkReadInput) (int, error)
	Delete(ctx context.Context, uid, notificationID string) error
}

// Service owns the in-app feed and fans booking/session events out to the
// feed and to email. Delivery failures are logged and swallowed; an event
// hook must never fail the state transition that raised it.
type Service struct {
	store      Store
	dispatcher Dispatcher
	now        func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// SetDispatcher enables outbound email. Without one, events only hit the
// in-app feed.
func (s *Service) SetDispatcher(d Dispatcher) {
	s.dispatcher = d
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// List returns a user's notification feed.
func (s *Service) List(ctx context.Context, uid string, unreadOnly bool, limit int) (*ListResult, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	return s.store.List(ctx, uid, unreadOnly, limit)
}

func (s *Service) MarkRead(ctx context.Context, uid string, in MarkReadInput) (int, error) {
	in.Trim()
	if uid == "" {
		return 0, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	if !in.MarkAll && in.NotificationID == "" {
		return 0, fmt.Errorf("%w: notificationId or markAll is required", ErrBadRequest)
	}
	return s.store.MarkRead(ctx, uid, in)
}

func (s *Service) Delete(ctx context.Context, uid, notificationID string) error {
	if uid == "" || notificationID == "" {
		return fmt.Errorf("%w: uid and notificationId are required", ErrBadRequest)
	}
	return s.store.Delete(ctx, uid, notificationID)
}

// ---- booking event hooks ----

func (s *Service) BookingRequested(ctx context.Context, sess *session.Session, p *booking.Participant) {
	s.push(ctx, sess.CreatedBy, Notification{
		Title: "New booking request",
		Body:  fmt.Sprintf("%s requested to join %s", p.UserName, sess.Title),
		Type:  TypeBookingRequested,
		Data:  map[string]interface{}{"sessionId": sess.ID, "participantId": p.ID},
	})
	s.email(ctx, Email{
		To:      p.UserEmail,
		Subject: fmt.Sprintf("Booking request received: %s", sess.Title),
		Body: fmt.Sprintf("Hi %s,\n\nYour request to join %s on %s is pending trainer approval.\n",
			p.UserName, sess.Title, sess.Start.Format("Mon, 02 Jan 2006 15:04")),
	})
}

func (s *Service) BookingApproved(ctx context.Context, sess *session.Session, p *booking.Participant) {
	s.push(ctx, p.UserID, Notification{
		Title: "Booking approved",
		Body:  fmt.Sprintf("You're in: %s", sess.Title),
		Type:  TypeBookingApproved,
		Data:  map[string]interface{}{"sessionId": sess.ID},
	})
	s.email(ctx, Email{
		To:      p.UserEmail,
		Subject: fmt.Sprintf("Booking approved: %s", sess.Title),
		Body: fmt.Sprintf("Hi %s,\n\nYour spot in %s on %s is confirmed.\n",
			p.UserName, sess.Title, sess.Start.Format("Mon, 02 Jan 2006 15:04")),
	})
}

func (s *Service) BookingRejected(ctx context.Context, sess *session.Session, p *booking.Participant) {
	body := fmt.Sprintf("Your request to join %s was declined.", sess.Title)
	if p.RejectionReason != "" {
		body += " Reason: " + p.RejectionReason
	}
	s.push(ctx, p.UserID, Notification{
		Title: "Booking declined",
		Body:  body,
		Type:  TypeBookingRejected,
		Data:  map[string]interface{}{"sessionId": sess.ID},
	})
	s.email(ctx, Email{
		To:      p.UserEmail,
		Subject: fmt.Sprintf("Booking declined: %s", sess.Title),
		Body:    fmt.Sprintf("Hi %s,\n\n%s\n", p.UserName, body),
	})
}

// ---- session event hooks ----

func (s *Service) SessionCancelled(ctx context.Context, sess *session.Session, attendees []session.Attendee, reason string) {
	body := fmt.Sprintf("%s on %s has been cancelled.", sess.Title, sess.Start.Format("Mon, 02 Jan 2006 15:04"))
	if reason != "" {
		body += " Reason: " + reason
	}
	for _, a := range attendees {
		s.push(ctx, a.UserID, Notification{
			Title: "Session cancelled",
			Body:  body,
			Type:  TypeSessionCancelled,
			Data:  map[string]interface{}{"sessionId": sess.ID},
		})
		s.email(ctx, Email{
			To:      a.UserEmail,
			Subject: fmt.Sprintf("Session cancelled: %s", sess.Title),
			Body:    fmt.Sprintf("Hi %s,\n\n%s\n", a.UserName, body),
		})
	}
}

func (s *Service) SessionRescheduled(ctx context.Context, sess *session.Session, attendees []session.Attendee) {
	body := fmt.Sprintf("%s has moved to %s.", sess.Title, sess.Start.Format("Mon, 02 Jan 2006 15:04"))
	for _, a := range attendees {
		s.push(ctx, a.UserID, Notification{
			Title: "Session rescheduled",
			Body:  body,
			Type:  TypeSessionRescheduled,
			Data:  map[string]interface{}{"sessionId": sess.ID},
		})
		s.email(ctx, Email{
			To:      a.UserEmail,
			Subject: fmt.Sprintf("Session rescheduled: %s", sess.Title),
			Body:    fmt.Sprintf("Hi %s,\n\n%s\n", a.UserName, body),
		})
	}
}

func (s *Service) push(ctx context.Context, uid string, n Notification) {
	if uid == "" {
		return
	}
	n.CreatedAt = s.now().UTC()
	if _, err := s.store.Create(ctx, uid, n); err != nil {
		log.Printf("notify: failed to write notification for %s: %v", uid, err)
	}
}

func (s *Service) email(ctx context.Context, e Email) {
	if s.dispatcher == nil || e.To == "" {
		return
	}
	if err := s.dispatcher.Send(ctx, e); err != nil {
		log.Printf("notify: failed to send email to %s: %v", e.To, err)
	}
}
