package booking

import (
	"strings"
	"time"
)

// Participant statuses. pending -> approved | rejected; pending and approved
// both go to cancelled when the parent session is cancelled.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Participant is a member's booking request against a session. The sessionId
// is a weak reference, not ownership: deleting a session does not cascade.
type Participant struct {
	ID        string `firestore:"id" json:"id"`
	SessionID string `firestore:"sessionId" json:"sessionId"`
	UserID    string `firestore:"userId" json:"userId"`
	UserName  string `firestore:"userName" json:"userName"`
	UserEmail string `firestore:"userEmail,omitempty" json:"userEmail,omitempty"`
	Status    string `firestore:"status" json:"status"`

	JoinedAt    time.Time  `firestore:"joinedAt" json:"joinedAt"`
	ApprovedAt  *time.Time `firestore:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	RejectedAt  *time.Time `firestore:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	CancelledAt *time.Time `firestore:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`

	RejectionReason string `firestore:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CancelReason    string `firestore:"cancelReason,omitempty" json:"cancelReason,omitempty"`
}

// JoinInput represents a member's request to join a session
type JoinInput struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail,omitempty"`
}

func (in *JoinInput) Trim() {
	in.UserID = strings.TrimSpace(in.UserID)
	in.UserName = strings.TrimSpace(in.UserName)
	in.UserEmail = strings.TrimSpace(in.UserEmail)
}

// DecisionInput represents a trainer's approve/reject decision
type DecisionInput struct {
	ParticipantID   string `json:"participantId"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

func (in *DecisionInput) Trim() {
	in.ParticipantID = strings.TrimSpace(in.ParticipantID)
	in.RejectionReason = strings.TrimSpace(in.RejectionReason)
}

// GroupedParticipants is the participants listing grouped by status.
type GroupedParticipants struct {
	Pending   []Participant  `json:"pending"`
	Approved  []Participant  `json:"approved"`
	Rejected  []Participant  `json:"rejected"`
	Cancelled []Participant  `json:"cancelled"`
	Counts    map[string]int `json:"counts"`
}

// GroupByStatus buckets participants by status and tallies counts.
func GroupByStatus(participants []Participant) GroupedParticipants {
	g := GroupedParticipants{
		Pending:   []Participant{},
		Approved:  []Participant{},
		Rejected:  []Participant{},
		Cancelled: []Participant{},
		Counts:    map[string]int{},
	}
	for _, p := range participants {
		switch p.Status {
		case StatusPending:
			g.Pending = append(g.Pending, p)
		case StatusApproved:
			g.Approved = append(g.Approved, p)
		case StatusRejected:
			g.Rejected = append(g.Rejected, p)
		case StatusCancelled:
			g.Cancelled = append(g.Cancelled, p)
		}
		g.Counts[p.Status]++
	}
	return g
}
