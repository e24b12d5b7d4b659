package review

import (
	"strings"
	"time"
)

// Review is a member's rating of a trainer. The trainer is referenced by
// display name only, with a normalized copy stored for lookups. A trainer
// rename orphans their historical reviews; that gap is intentional, see
// utils.NormalizeNameLower.
type Review struct {
	ID               string    `firestore:"id" json:"id"`
	MemberEmail      string    `firestore:"memberEmail" json:"memberEmail"`
	Trainer          string    `firestore:"trainer" json:"trainer"`
	TrainerNameLower string    `firestore:"trainerNameLower" json:"-"`
	SessionType      string    `firestore:"sessionType,omitempty" json:"sessionType,omitempty"`
	Date             string    `firestore:"date,omitempty" json:"date,omitempty"`
	Comments         string    `firestore:"comments,omitempty" json:"comments,omitempty"`
	Rating           int       `firestore:"rating" json:"rating"`
	CreatedAt        time.Time `firestore:"createdAt" json:"createdAt"`
}

// CreateInput is the payload for posting a review.
type CreateInput struct {
	Trainer     string `json:"trainer"`
	SessionType string `json:"sessionType,omitempty"`
	Date        string `json:"date,omitempty"`
	Comments    string `json:"comments,omitempty"`
	Rating      int    `json:"rating"`
}

func (in *CreateInput) Trim() {
	in.Trainer = strings.TrimSpace(in.Trainer)
	in.SessionType = strings.TrimSpace(in.SessionType)
	in.Date = strings.TrimSpace(in.Date)
	in.Comments = strings.TrimSpace(in.Comments)
}
