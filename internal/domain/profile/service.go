package profile

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
)

type Service struct {
	client     *firestore.Client
	authClient *auth.Client
}

func NewService(client *firestore.Client, authClient *auth.Client) *Service {
	return &Service{client: client, authClient: authClient}
}

func (s *Service) GetProfile(ctx context.Context, uid string) (*UserProfile, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}

	doc, err := s.client.Collection("users").Doc(uid).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	var p UserProfile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	p.UID = uid

	return &p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) error {
	if uid == "" {
		return fmt.Errorf("%w: uid is required", ErrBadRequest)
	}

	input.Trim()

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"updatedAt": now,
	}

	// Emergency contact edits are throttled to once every 30 days.
	if input.EmergencyContact != nil {
		doc, err := s.client.Collection("users").Doc(uid).Get(ctx)
		if err == nil && doc.Exists() {
			if lastUpdate, ok := doc.Data()["emergencyContactUpdatedAt"].(time.Time); ok {
				if now.Sub(lastUpdate).Hours()/24 < 30 {
					return fmt.Errorf("%w: emergency contact can only be updated once every 30 days", ErrTooManyUpdates)
				}
			}
		}
		updates["emergencyContact"] = input.EmergencyContact
		updates["emergencyContactUpdatedAt"] = now
	}

	if input.DisplayName != nil {
		updates["displayName"] = *input.DisplayName
	}
	if input.PhotoURL != nil {
		updates["photoURL"] = *input.PhotoURL
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.FitnessGoals != nil {
		updates["fitnessGoals"] = input.FitnessGoals
	}

	if _, err := s.client.Collection("users").Doc(uid).Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	// Mirror display fields into Firebase Auth.
	if input.DisplayName != nil || input.PhotoURL != nil {
		authUpdate := &auth.UserToUpdate{}
		if input.DisplayName != nil {
			authUpdate.DisplayName(*input.DisplayName)
		}
		if input.PhotoURL != nil {
			authUpdate.PhotoURL(*input.PhotoURL)
		}
		if _, err := s.authClient.UpdateUser(ctx, uid, authUpdate); err != nil {
			log.Printf("profile: failed to update auth user %s: %v", uid, err)
		}
	}

	return nil
}

// DeactivateUser disables a member's account. Admin only; deactivating
// yourself is refused.
func (s *Service) DeactivateUser(ctx context.Context, callerUID, targetUID string) error {
	if targetUID == "" {
		return fmt.Errorf("%w: userId is required", ErrBadRequest)
	}
	if callerUID == targetUID {
		return ErrCannotDeactivateSelf
	}

	authUpdate := &auth.UserToUpdate{}
	authUpdate.Disabled(true)
	if _, err := s.authClient.UpdateUser(ctx, targetUID, authUpdate); err != nil {
		return fmt.Errorf("failed to disable user: %w", err)
	}

	now := time.Now().UTC()
	_, err := s.client.Collection("users").Doc(targetUID).Set(ctx, map[string]interface{}{
		"isActive":      false,
		"deactivatedAt": now,
		"deactivatedBy": callerUID,
		"updatedAt":     now,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// ReactivateUser re-enables a previously deactivated account.
func (s *Service) ReactivateUser(ctx context.Context, targetUID string) error {
	if targetUID == "" {
		return fmt.Errorf("%w: userId is required", ErrBadRequest)
	}

	authUpdate := &auth.UserToUpdate{}
	authUpdate.Disabled(false)
	if _, err := s.authClient.UpdateUser(ctx, targetUID, authUpdate); err != nil {
		return fmt.Errorf("failed to enable user: %w", err)
	}

	now := time.Now().UTC()
	_, err := s.client.Collection("users").Doc(targetUID).Set(ctx, map[string]interface{}{
		"isActive":      true,
		"reactivatedAt": now,
		"updatedAt":     now,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}
