package notify

import (
	"strings"
	"time"
)

// Notification is one in-app feed entry, stored per user.
type Notification struct {
	ID        string                 `firestore:"id" json:"id"`
	Title     string                 `firestore:"title" json:"title"`
	Body      string                 `firestore:"body,omitempty" json:"body,omitempty"`
	Type      string                 `firestore:"type" json:"type"`
	Data      map[string]interface{} `firestore:"data,omitempty" json:"data,omitempty"`
	Read      bool                   `firestore:"read" json:"read"`
	ReadAt    *time.Time             `firestore:"readAt,omitempty" json:"readAt,omitempty"`
	CreatedAt time.Time              `firestore:"createdAt" json:"createdAt"`
}

// Notification types written by the event hooks.
const (
	TypeBookingRequested   = "booking_requested"
	TypeBookingApproved    = "booking_approved"
	TypeBookingRejected    = "booking_rejected"
	TypeSessionCancelled   = "session_cancelled"
	TypeSessionRescheduled = "session_rescheduled"
)

// MarkReadInput marks a single notification or the whole feed as read.
type MarkReadInput struct {
	NotificationID string `json:"notificationId,omitempty"`
	MarkAll        bool   `json:"markAll,omitempty"`
}

func (in *MarkReadInput) Trim() {
	in.NotificationID = strings.TrimSpace(in.NotificationID)
}

// ListResult is the feed response.
type ListResult struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}

// Email is an outbound message handed to a Dispatcher.
type Email struct {
	To      string
	Subject string
	Body    string
}
