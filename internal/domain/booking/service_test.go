package booking

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"fitsync-pro/backend/internal/domain/session"
)

// memStore reproduces the repo's transactional semantics in memory: every
// mutation consults the same decision functions the Firestore transactions do.
type memStore struct {
	participants map[string]*Participant
	nextID       int
}

func newMemStore() *memStore {
	return &memStore{participants: make(map[string]*Participant)}
}

func (m *memStore) approvedCount(sessionID string) int {
	n := 0
	for _, p := range m.participants {
		if p.SessionID == sessionID && p.Status == StatusApproved {
			n++
		}
	}
	return n
}

func (m *memStore) CreatePending(_ context.Context, sessionID string, p Participant) (*Participant, error) {
	var existing *Participant
	for _, e := range m.participants {
		if e.SessionID == sessionID && e.UserID == p.UserID && e.Status != StatusCancelled {
			existing = e
			break
		}
	}
	if err := DecideJoin(existing); err != nil {
		return nil, err
	}

	m.nextID++
	p.ID = "p" + strconv.Itoa(m.nextID)
	p.SessionID = sessionID
	p.Status = StatusPending
	cp := p
	m.participants[cp.ID] = &cp
	return &p, nil
}

func (m *memStore) Approve(_ context.Context, sessionID, participantID string, maxParticipants int) (*Participant, error) {
	p, ok := m.participants[participantID]
	if !ok || p.SessionID != sessionID {
		return nil, ErrNotFound
	}
	if err := DecideApproval(p, m.approvedCount(sessionID), maxParticipants); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p.Status = StatusApproved
	p.ApprovedAt = &now
	cp := *p
	return &cp, nil
}

func (m *memStore) Reject(_ context.Context, sessionID, participantID, reason string) (*Participant, error) {
	p, ok := m.participants[participantID]
	if !ok || p.SessionID != sessionID {
		return nil, ErrNotFound
	}
	if err := DecideRejection(p); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p.Status = StatusRejected
	p.RejectedAt = &now
	p.RejectionReason = reason
	cp := *p
	return &cp, nil
}

func (m *memStore) Get(_ context.Context, participantID string) (*Participant, error) {
	p, ok := m.participants[participantID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) ListBySession(_ context.Context, sessionID string) ([]Participant, error) {
	var out []Participant
	for _, p := range m.participants {
		if p.SessionID == sessionID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memStore) ListByUser(_ context.Context, userID string) ([]Participant, error) {
	var out []Participant
	for _, p := range m.participants {
		if p.UserID == userID && p.Status != StatusCancelled {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memStore) CancelBySession(_ context.Context, sessionID, reason string) ([]Participant, error) {
	var before []Participant
	now := time.Now().UTC()
	for _, p := range m.participants {
		if p.SessionID != sessionID {
			continue
		}
		before = append(before, *p)
		if p.Status != StatusCancelled {
			p.Status = StatusCancelled
			p.CancelledAt = &now
			p.CancelReason = reason
		}
	}
	return before, nil
}

type stubSessions struct {
	sessions map[string]*session.Session
}

func (s *stubSessions) Get(_ context.Context, id string) (*session.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

type recordingNotifier struct {
	requested []string
	approved  []string
	rejected  []string
}

func (n *recordingNotifier) BookingRequested(_ context.Context, _ *session.Session, p *Participant) {
	n.requested = append(n.requested, p.UserID)
}

func (n *recordingNotifier) BookingApproved(_ context.Context, _ *session.Session, p *Participant) {
	n.approved = append(n.approved, p.UserID)
}

func (n *recordingNotifier) BookingRejected(_ context.Context, _ *session.Session, p *Participant) {
	n.rejected = append(n.rejected, p.UserID)
}

func fixture(maxParticipants int) (*Service, *memStore, *recordingNotifier) {
	store := newMemStore()
	sessions := &stubSessions{sessions: map[string]*session.Session{
		"s1": {ID: "s1", Title: "Spin", TrainerName: "Jane Doe", MaxParticipants: maxParticipants},
	}}
	notifier := &recordingNotifier{}
	svc := NewService(store, sessions)
	svc.SetNotifier(notifier)
	return svc, store, notifier
}

func TestJoinCreatesPendingAndNotifies(t *testing.T) {
	svc, store, notifier := fixture(5)

	p, err := svc.Join(context.Background(), "s1", JoinInput{UserID: "m1", UserName: "Mia", UserEmail: "mia@example.com"})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if p.Status != StatusPending {
		t.Fatalf("expected pending, got %s", p.Status)
	}
	if len(store.participants) != 1 {
		t.Fatalf("expected one record, got %d", len(store.participants))
	}
	if len(notifier.requested) != 1 || notifier.requested[0] != "m1" {
		t.Fatalf("expected join notification for m1, got %v", notifier.requested)
	}
}

func TestJoinRejectsUnknownAndCancelledSessions(t *testing.T) {
	svc, _, _ := fixture(5)

	_, err := svc.Join(context.Background(), "nope", JoinInput{UserID: "m1", UserName: "Mia"})
	if !IsErrNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	svcC, _, _ := fixture(5)
	src := svcC.sessions.(*stubSessions)
	src.sessions["s1"].Canceled = true
	_, err = svcC.Join(context.Background(), "s1", JoinInput{UserID: "m1", UserName: "Mia"})
	if !IsErrConflict(err) {
		t.Fatalf("expected conflict for cancelled session, got %v", err)
	}
}

func TestJoinDuplicateYieldsSingleRecord(t *testing.T) {
	svc, store, _ := fixture(5)

	if _, err := svc.Join(context.Background(), "s1", JoinInput{UserID: "m1", UserName: "Mia"}); err != nil {
		t.Fatalf("first join: %v", err)
	}
	_, err := svc.Join(context.Background(), "s1", JoinInput{UserID: "m1", UserName: "Mia"})
	if !IsErrConflict(err) {
		t.Fatalf("expected duplicate join conflict, got %v", err)
	}

	nonCancelled := 0
	for _, p := range store.participants {
		if p.Status != StatusCancelled {
			nonCancelled++
		}
	}
	if nonCancelled != 1 {
		t.Fatalf("expected exactly one non-cancelled record, got %d", nonCancelled)
	}
}

func TestApproveHappyPath(t *testing.T) {
	svc, _, notifier := fixture(5)

	p, _ := svc.Join(context.Background(), "s1", JoinInput{UserID: "m1", UserName: "Mia"})
	out, err := svc.Approve(context.Background(), "s1", DecisionInput{ParticipantID: p.ID})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if out.Status != StatusApproved || out.ApprovedAt == nil {
		t.Fatalf("expected approved with timestamp, got %+v", out)
	}
	if len(notifier.approved) != 1 {
		t.Fatalf("expected approval notification, got %v", notifier.approved)
	}
}

func TestApproveAtCapacityReturnsFullAndLeavesPending(t *testing.T) {
	svc, store, _ := fixture(1)

	a, _ := svc.Join(context.Background(), "s1", JoinInput{UserID: "a", UserName: "A"})
	if _, err := svc.Approve(context.Background(), "s1", DecisionInput{ParticipantID: a.ID}); err != nil {
		t.Fatalf("approve a: %v", err)
	}

	// The single slot is taken, but joining still parks b as pending: the
	// cap only gates approval.
	b, err := svc.Join(context.Background(), "s1", JoinInput{UserID: "b", UserName: "B"})
	if err != nil {
		t.Fatalf("join against a full session should still create a pending record, got %v", err)
	}
	if b.Status != StatusPending {
		t.Fatalf("expected b pending, got %s", b.Status)
	}

	_, err = svc.Approve(context.Background(), "s1", DecisionInput{ParticipantID: b.ID})
	if !IsErrConflict(err) || !strings.Contains(err.Error(), "full") {
		t.Fatalf("expected 'session is full' conflict, got %v", err)
	}
	if store.participants[b.ID].Status != StatusPending {
		t.Fatalf("expected b to remain pending, got %s", store.participants[b.ID].Status)
	}
	if store.approvedCount("s1") != 1 {
		t.Fatalf("expected approved count unchanged at 1, got %d", store.approvedCount("s1"))
	}
}

func TestApproveAlreadyDecidedCarriesStatus(t *testing.T) {
	svc, _, _ := fixture(5)

	p, _ := svc.Join(context.Background(), "s1", JoinInput{UserID: "m1", UserName: "Mia"})
	if _, err := svc.Reject(context.Background(), "s1", DecisionInput{ParticipantID: p.ID, RejectionReason: "no-show history"}); err != nil {
		t.Fatalf("reject: %v", err)
	}

	_, err := svc.Approve(context.Background(), "s1", DecisionInput{ParticipantID: p.ID})
	if !IsErrConflict(err) || !strings.Contains(err.Error(), StatusRejected) {
		t.Fatalf("expected conflict carrying 'rejected', got %v", err)
	}
}

func TestRejectStampsReason(t *testing.T) {
	svc, _, notifier := fixture(5)

	p, _ := svc.Join(context.Background(), "s1", JoinInput{UserID: "m1", UserName: "Mia"})
	out, err := svc.Reject(context.Background(), "s1", DecisionInput{ParticipantID: p.ID, RejectionReason: "class level mismatch"})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if out.Status != StatusRejected || out.RejectedAt == nil || out.RejectionReason != "class level mismatch" {
		t.Fatalf("unexpected rejection record: %+v", out)
	}
	if len(notifier.rejected) != 1 {
		t.Fatalf("expected rejection notification, got %v", notifier.rejected)
	}
}

func TestCancelBySessionTransitionsEveryoneAndReturnsApproved(t *testing.T) {
	svc, store, _ := fixture(5)

	a, _ := svc.Join(context.Background(), "s1", JoinInput{UserID: "a", UserName: "A", UserEmail: "a@example.com"})
	b, _ := svc.Join(context.Background(), "s1", JoinInput{UserID: "b", UserName: "B", UserEmail: "b@example.com"})
	if _, err := svc.Approve(context.Background(), "s1", DecisionInput{ParticipantID: a.ID}); err != nil {
		t.Fatalf("approve a: %v", err)
	}
	_ = b

	approved, err := svc.CancelBySession(context.Background(), "s1", "trainer unavailable")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if len(approved) != 1 || approved[0].UserEmail != "a@example.com" {
		t.Fatalf("expected only a as previously approved, got %+v", approved)
	}
	for id, p := range store.participants {
		if p.Status != StatusCancelled {
			t.Fatalf("expected %s cancelled, got %s", id, p.Status)
		}
	}
}

func TestListParticipantsGroups(t *testing.T) {
	svc, _, _ := fixture(5)

	a, _ := svc.Join(context.Background(), "s1", JoinInput{UserID: "a", UserName: "A"})
	if _, err := svc.Join(context.Background(), "s1", JoinInput{UserID: "b", UserName: "B"}); err != nil {
		t.Fatalf("join b: %v", err)
	}
	if _, err := svc.Approve(context.Background(), "s1", DecisionInput{ParticipantID: a.ID}); err != nil {
		t.Fatalf("approve a: %v", err)
	}

	g, err := svc.ListParticipants(context.Background(), "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(g.Approved) != 1 || len(g.Pending) != 1 {
		t.Fatalf("unexpected grouping: %+v", g.Counts)
	}
}

func TestSessionIDsForUserDeduplicates(t *testing.T) {
	svc, store, _ := fixture(5)

	if _, err := svc.Join(context.Background(), "s1", JoinInput{UserID: "m1", UserName: "Mia"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	store.participants["extra"] = &Participant{ID: "extra", SessionID: "s9", UserID: "m1", Status: StatusCancelled}

	ids, err := svc.SessionIDsForUser(context.Background(), "m1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 || ids[0] != "s1" {
		t.Fatalf("expected only s1 (cancelled records excluded), got %v", ids)
	}
}
