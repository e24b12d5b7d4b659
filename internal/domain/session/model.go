package session

import (
	"strings"
	"time"

	"fitsync-pro/backend/internal/utils"
)

// Session statuses derived from the canceled flag and the end timestamp.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Session represents an in-person training session.
type Session struct {
	ID          string `firestore:"id" json:"id"`
	Title       string `firestore:"title" json:"title"`
	Description string `firestore:"description,omitempty" json:"description,omitempty"`

	TrainerID   string `firestore:"trainerId,omitempty" json:"trainerId,omitempty"`
	TrainerName string `firestore:"trainerName" json:"trainerName"`
	// TrainerKey is the identity used for conflict checks: the trainer uid
	// when known, otherwise the normalized trainer name.
	TrainerKey string `firestore:"trainerKey" json:"-"`

	Start           time.Time `firestore:"start" json:"start"`
	End             time.Time `firestore:"end" json:"end"`
	Location        string    `firestore:"location" json:"location"`
	MaxParticipants int       `firestore:"maxParticipants" json:"maxParticipants"`

	Canceled     bool       `firestore:"canceled" json:"canceled"`
	CancelReason string     `firestore:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CanceledBy   string     `firestore:"canceledBy,omitempty" json:"canceledBy,omitempty"`
	CanceledAt   *time.Time `firestore:"canceledAt,omitempty" json:"canceledAt,omitempty"`

	PreviousStart    *time.Time `firestore:"previousStart,omitempty" json:"previousStart,omitempty"`
	PreviousEnd      *time.Time `firestore:"previousEnd,omitempty" json:"previousEnd,omitempty"`
	RescheduledBy    string     `firestore:"rescheduledBy,omitempty" json:"rescheduledBy,omitempty"`
	RescheduleReason string     `firestore:"rescheduleReason,omitempty" json:"rescheduleReason,omitempty"`

	CreatedBy string    `firestore:"createdBy" json:"createdBy"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// StatusAt derives the session status at the given instant.
func (s *Session) StatusAt(now time.Time) string {
	if s.Canceled {
		return StatusCancelled
	}
	if !s.End.After(now) {
		return StatusCompleted
	}
	return StatusActive
}

// TrainerKeyFor computes the conflict-check identity for a trainer.
func TrainerKeyFor(trainerID, trainerName string) string {
	if trainerID != "" {
		return trainerID
	}
	return utils.NormalizeNameLower(trainerName)
}

// CreateSessionInput represents input for creating a session
type CreateSessionInput struct {
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	TrainerID       string    `json:"trainerId,omitempty"`
	TrainerName     string    `json:"trainerName"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Location        string    `json:"location"`
	MaxParticipants int       `json:"maxParticipants"`
}

func (in *CreateSessionInput) Trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.TrainerID = strings.TrimSpace(in.TrainerID)
	in.TrainerName = strings.TrimSpace(in.TrainerName)
	in.Location = strings.TrimSpace(in.Location)
}

// UpdateSessionInput represents input for updating a session
type UpdateSessionInput struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Start           *time.Time `json:"start,omitempty"`
	End             *time.Time `json:"end,omitempty"`
	Location        *string    `json:"location,omitempty"`
	MaxParticipants *int       `json:"maxParticipants,omitempty"`
}

func (in *UpdateSessionInput) Trim() {
	if in.Title != nil {
		*in.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		*in.Description = strings.TrimSpace(*in.Description)
	}
	if in.Location != nil {
		*in.Location = strings.TrimSpace(*in.Location)
	}
}

// CancelSessionInput represents input for cancelling a session
type CancelSessionInput struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelledBy"`
}

func (in *CancelSessionInput) Trim() {
	in.Reason = strings.TrimSpace(in.Reason)
	in.CancelledBy = strings.TrimSpace(in.CancelledBy)
}

// RescheduleSessionInput represents input for rescheduling a session
type RescheduleSessionInput struct {
	NewStart      time.Time `json:"newStart"`
	NewEnd        time.Time `json:"newEnd"`
	Reason        string    `json:"reason,omitempty"`
	RescheduledBy string    `json:"rescheduledBy"`
}

func (in *RescheduleSessionInput) Trim() {
	in.Reason = strings.TrimSpace(in.Reason)
	in.RescheduledBy = strings.TrimSpace(in.RescheduledBy)
}

// ListSessionsInput represents input for listing sessions
type ListSessionsInput struct {
	TrainerID       string `json:"trainerId,omitempty"`
	JoinedUserID    string `json:"joinedUserId,omitempty"`
	Public          bool   `json:"public,omitempty"`
	IncludeCanceled bool   `json:"includeCanceled,omitempty"`
	Limit           int64  `json:"limit,omitempty"`
}

// Attendee is the slice of a participant record that session-level
// notifications need. Defined here so the booking package can satisfy the
// Participants interface without an import cycle.
type Attendee struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}
