package profile

import (
	"strings"
	"time"
)

// UserProfile is the users collection document for one member.
type UserProfile struct {
	UID              string                 `firestore:"uid" json:"uid"`
	Email            string                 `firestore:"email" json:"email"`
	DisplayName      string                 `firestore:"displayName" json:"displayName"`
	PhotoURL         string                 `firestore:"photoURL,omitempty" json:"photoURL,omitempty"`
	Phone            string                 `firestore:"phone,omitempty" json:"phone,omitempty"`
	Role             string                 `firestore:"role,omitempty" json:"role,omitempty"`
	Roles            []string               `firestore:"roles,omitempty" json:"roles,omitempty"`
	FitnessGoals     []string               `firestore:"fitnessGoals,omitempty" json:"fitnessGoals,omitempty"`
	IsActive         bool                   `firestore:"isActive" json:"isActive"`
	EmergencyContact map[string]interface{} `firestore:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	CreatedAt        time.Time              `firestore:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time              `firestore:"updatedAt" json:"updatedAt"`
}

// UpdateProfileInput carries the member-editable fields.
type UpdateProfileInput struct {
	DisplayName      *string                `json:"displayName,omitempty"`
	PhotoURL         *string                `json:"photoURL,omitempty"`
	Phone            *string                `json:"phone,omitempty"`
	FitnessGoals     []string               `json:"fitnessGoals,omitempty"`
	EmergencyContact map[string]interface{} `json:"emergencyContact,omitempty"`
}

func (in *UpdateProfileInput) Trim() {
	if in.DisplayName != nil {
		*in.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.PhotoURL != nil {
		*in.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.Phone != nil {
		*in.Phone = strings.TrimSpace(*in.Phone)
	}
	for i := range in.FitnessGoals {
		in.FitnessGoals[i] = strings.TrimSpace(in.FitnessGoals[i])
	}
}

// ProtectedFields cannot be changed through profile updates.
var ProtectedFields = []string{"uid", "email", "role", "roles", "admin", "createdAt"}
