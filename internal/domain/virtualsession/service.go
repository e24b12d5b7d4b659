package virtualsession

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"fitsync-pro/backend/internal/utils"
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, v VirtualSession) (*VirtualSession, error)
	Get(ctx context.Context, id string) (*VirtualSession, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*VirtualSession, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, trainerKey string) ([]VirtualSession, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Create validates and stores a new virtual session.
func (s *Service) Create(ctx context.Context, createdBy string, in CreateInput) (*VirtualSession, error) {
	in.Trim()
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	v := VirtualSession{
		Title:       in.Title,
		Description: in.Description,
		TrainerName: in.TrainerName,
		TrainerKey:  utils.NormalizeNameLower(in.TrainerName),
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		MeetingLink: in.MeetingLink,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.store.Create(ctx, v)
}

func (s *Service) Get(ctx context.Context, id string) (*VirtualSession, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.store.Get(ctx, id)
}

// Update applies a partial update. Date and time fields are re-validated
// individually; when both times change the pair must stay ordered.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*VirtualSession, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Title != nil {
		if *in.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrBadRequest)
		}
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.TrainerName != nil {
		if *in.TrainerName == "" {
			return nil, fmt.Errorf("%w: trainerName cannot be empty", ErrBadRequest)
		}
		updates["trainerName"] = *in.TrainerName
		updates["trainerKey"] = utils.NormalizeNameLower(*in.TrainerName)
	}
	if in.Date != nil {
		if !isValidDate(*in.Date) {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD format", ErrBadRequest)
		}
		updates["date"] = *in.Date
	}

	startTime := existing.StartTime
	endTime := existing.EndTime
	if in.StartTime != nil {
		if !isValidTimeFormat(*in.StartTime) {
			return nil, fmt.Errorf("%w: startTime must be HH:MM format", ErrBadRequest)
		}
		startTime = *in.StartTime
		updates["startTime"] = *in.StartTime
	}
	if in.EndTime != nil {
		if !isValidTimeFormat(*in.EndTime) {
			return nil, fmt.Errorf("%w: endTime must be HH:MM format", ErrBadRequest)
		}
		endTime = *in.EndTime
		updates["endTime"] = *in.EndTime
	}
	if hhmmToMinutes(endTime) <= hhmmToMinutes(startTime) {
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrBadRequest)
	}

	if in.MeetingLink != nil {
		if *in.MeetingLink == "" {
			return nil, fmt.Errorf("%w: meetingLink cannot be empty", ErrBadRequest)
		}
		updates["meetingLink"] = *in.MeetingLink
	}

	if len(updates) == 0 {
		return existing, nil
	}
	updates["updatedAt"] = s.now().UTC()

	return s.store.Update(ctx, id, updates)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.store.Delete(ctx, id)
}

// List returns virtual sessions, optionally filtered by trainer name. The
// name is normalized the same way it was at write time.
func (s *Service) List(ctx context.Context, trainerName string) ([]VirtualSession, error) {
	key := ""
	if trainerName != "" {
		key = utils.NormalizeNameLower(trainerName)
	}
	return s.store.List(ctx, key)
}

func validateCreateInput(in CreateInput) error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrBadRequest)
	}
	if in.TrainerName == "" {
		return fmt.Errorf("%w: trainerName is required", ErrBadRequest)
	}
	if !isValidDate(in.Date) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD format", ErrBadRequest)
	}
	if !isValidTimeFormat(in.StartTime) {
		return fmt.Errorf("%w: startTime must be HH:MM format", ErrBadRequest)
	}
	if !isValidTimeFormat(in.EndTime) {
		return fmt.Errorf("%w: endTime must be HH:MM format", ErrBadRequest)
	}
	if hhmmToMinutes(in.EndTime) <= hhmmToMinutes(in.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrBadRequest)
	}
	if in.MeetingLink == "" {
		return fmt.Errorf("%w: meetingLink is required", ErrBadRequest)
	}
	return nil
}

var timeFormatRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

func isValidTimeFormat(t string) bool {
	return timeFormatRegex.MatchString(t)
}

func isValidDate(d string) bool {
	_, err := time.Parse("2006-01-02", d)
	return err == nil
}

// hhmmToMinutes converts "HH:MM" to minutes from midnight.
func hhmmToMinutes(hhmm string) int {
	if len(hhmm) < 4 {
		return 0
	}
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0
	}
	return h*60 + m
}
