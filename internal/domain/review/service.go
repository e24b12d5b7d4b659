package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitsync-pro/backend/internal/utils"
)

type Store interface {
	Create(ctx context.Context, rev Review) (*Review, error)
	Get(ctx context.Context, id string) (*Review, error)
	Delete(ctx context.Context, id string) error
	ListByTrainer(ctx context.Context, trainerNameLower string) ([]Review, error)
	ListAll(ctx context.Context) ([]Review, error)
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

// Create stores a member's review of a trainer.
func (s *Service) Create(ctx context.Context, memberEmail string, in CreateInput) (*Review, error) {
	in.Trim()
	if memberEmail == "" {
		return nil, fmt.Errorf("%w: member email is required", ErrBadRequest)
	}
	if in.Trainer == "" {
		return nil, fmt.Errorf("%w: trainer is required", ErrBadRequest)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrBadRequest)
	}

	rev := Review{
		MemberEmail:      memberEmail,
		Trainer:          in.Trainer,
		TrainerNameLower: utils.NormalizeNameLower(in.Trainer),
		SessionType:      in.SessionType,
		Date:             in.Date,
		Comments:         in.Comments,
		Rating:           in.Rating,
		CreatedAt:        s.now().UTC(),
	}

	return s.store.Create(ctx, rev)
}

// ListByTrainer returns a trainer's reviews, looked up by normalized name.
func (s *Service) ListByTrainer(ctx context.Context, trainerName string) ([]Review, error) {
	if strings.TrimSpace(trainerName) == "" {
		return nil, fmt.Errorf("%w: trainer is required", ErrBadRequest)
	}
	return s.store.ListByTrainer(ctx, utils.NormalizeNameLower(trainerName))
}

// Delete removes a review. Only the review's author (matched by email) or
// the reviewed trainer (matched by normalized name) may delete it.
func (s *Service) Delete(ctx context.Context, id, requesterEmail, requesterName string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrBadRequest)
	}

	rev, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	isAuthor := requesterEmail != "" && strings.EqualFold(requesterEmail, rev.MemberEmail)
	isReviewedTrainer := requesterName != "" &&
		utils.NormalizeNameLower(requesterName) == rev.TrainerNameLower
	if !isAuthor && !isReviewedTrainer {
		return fmt.Errorf("%w: only the author or the reviewed trainer can delete a review", ErrForbidden)
	}

	return s.store.Delete(ctx, id)
}

// Summary aggregates a trainer's reviews for detail responses.
type Summary struct {
	Trainer       string   `json:"trainer"`
	ReviewCount   int      `json:"reviewCount"`
	AverageRating float64  `json:"averageRating"`
	Reviews       []Review `json:"reviews"`
}

// Summarize returns a trainer's reviews with their mean rating.
func (s *Service) Summarize(ctx context.Context, trainerName string) (*Summary, error) {
	reviews, err := s.ListByTrainer(ctx, trainerName)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Trainer:       strings.TrimSpace(trainerName),
		ReviewCount:   len(reviews),
		AverageRating: AverageRating(reviews),
		Reviews:       reviews,
	}, nil
}
