package virtualsession

import (
	"strings"
	"time"
)

// VirtualSession is an online class. Unlike a physical session it carries a
// calendar date plus "HH:MM" time-of-day strings and a meeting link instead
// of a location. The trainer is referenced by display name only; see
// utils.NormalizeNameLower for the weak-reference caveat.
type VirtualSession struct {
	ID          string `firestore:"id" json:"id"`
	Title       string `firestore:"title" json:"title"`
	Description string `firestore:"description,omitempty" json:"description,omitempty"`
	TrainerName string `firestore:"trainerName" json:"trainerName"`
	TrainerKey  string `firestore:"trainerKey" json:"-"`
	Date        string `firestore:"date" json:"date"`           // "2006-01-02"
	StartTime   string `firestore:"startTime" json:"startTime"` // "HH:MM"
	EndTime     string `firestore:"endTime" json:"endTime"`     // "HH:MM"
	MeetingLink string `firestore:"meetingLink" json:"meetingLink"`

	CreatedBy string    `firestore:"createdBy" json:"createdBy"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// StartsAt resolves the date + startTime pair into a timestamp in loc.
// Returns the zero time when either field is malformed.
func (v *VirtualSession) StartsAt(loc *time.Location) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", v.Date+" "+padHHMM(v.StartTime), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CreateInput is the payload for creating a virtual session.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TrainerName string `json:"trainerName"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MeetingLink string `json:"meetingLink"`
}

func (in *CreateInput) Trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.TrainerName = strings.TrimSpace(in.TrainerName)
	in.Date = strings.TrimSpace(in.Date)
	in.StartTime = strings.TrimSpace(in.StartTime)
	in.EndTime = strings.TrimSpace(in.EndTime)
	in.MeetingLink = strings.TrimSpace(in.MeetingLink)
}

// UpdateInput carries optional fields for a partial update.
type UpdateInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	TrainerName *string `json:"trainerName,omitempty"`
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	MeetingLink *string `json:"meetingLink,omitempty"`
}

// padHHMM left-pads a single-digit hour so "9:00" parses as "09:00".
func padHHMM(hhmm string) string {
	if len(hhmm) == 4 {
		return "0" + hhmm
	}
	return hhmm
}
