// Package trainer derives a trainer directory from sessions and reviews.
// There is no trainer collection: identities are the weak name references
// carried on those records, so a trainer "exists" as soon as a session or
// review names them.
package trainer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fitsync-pro/backend/internal/domain/review"
	"fitsync-pro/backend/internal/domain/session"
	"fitsync-pro/backend/internal/utils"
)

// Summary is one directory row. Rating keeps the listing's historical "0.0"
// formatting via review.AverageRatingLabel. Slug is the url-safe form of the
// name for detail links.
type Summary struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Rating       string `json:"rating"`
	ReviewCount  int    `json:"reviewCount"`
	SessionCount int    `json:"sessionCount"`
}

// Detail is the single-trainer response, using the numeric average from
// review.AverageRating.
type Detail struct {
	Name          string            `json:"name"`
	AverageRating float64           `json:"averageRating"`
	ReviewCount   int               `json:"reviewCount"`
	Reviews       []review.Review   `json:"reviews"`
	Sessions      []session.Session `json:"sessions"`
}

type Sessions interface {
	List(ctx context.Context, in session.ListSessionsInput) ([]session.Session, error)
}

type Reviews interface {
	ListAll(ctx context.Context) ([]review.Review, error)
	ListByTrainer(ctx context.Context, trainerNameLower string) ([]review.Review, error)
}

type Service struct {
	sessions Sessions
	reviews  Reviews
}

func NewService(sessions Sessions, reviews Reviews) *Service {
	return &Service{sessions: sessions, reviews: reviews}
}

// List builds the trainer directory. A trainer appears once per normalized
// name; the display name comes from whichever record was seen first, sessions
// taking precedence over reviews.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	sessions, err := s.sessions.List(ctx, session.ListSessionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	reviews, err := s.reviews.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	type entry struct {
		name         string
		sessionCount int
		reviews      []review.Review
	}
	byKey := make(map[string]*entry)

	for _, sess := range sessions {
		if sess.TrainerName == "" {
			continue
		}
		key := utils.NormalizeNameLower(sess.TrainerName)
		e, ok := byKey[key]
		if !ok {
			e = &entry{name: sess.TrainerName}
			byKey[key] = e
		}
		e.sessionCount++
	}
	for _, rev := range reviews {
		key := rev.TrainerNameLower
		if key == "" {
			key = utils.NormalizeNameLower(rev.Trainer)
		}
		e, ok := byKey[key]
		if !ok {
			e = &entry{name: rev.Trainer}
			byKey[key] = e
		}
		e.reviews = append(e.reviews, rev)
	}

	out := make([]Summary, 0, len(byKey))
	for _, e := range byKey {
		out = append(out, Summary{
			Name:         e.name,
			Slug:         utils.Slugify(e.name),
			Rating:       review.AverageRatingLabel(e.reviews),
			ReviewCount:  len(e.reviews),
			SessionCount: e.sessionCount,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get resolves a single trainer by name, with their reviews and sessions.
func (s *Service) Get(ctx context.Context, name string) (*Detail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: trainer name is required", ErrBadRequest)
	}
	key := utils.NormalizeNameLower(name)

	reviews, err := s.reviews.ListByTrainer(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	sessions, err := s.sessions.List(ctx, session.ListSessionsInput{TrainerID: key})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(reviews) == 0 && len(sessions) == 0 {
		// The caller may have followed a slug from the directory listing
		// rather than the exact name.
		resolved, err := s.resolveSlug(ctx, name)
		if err != nil || resolved == name {
			return nil, fmt.Errorf("%w: trainer not found", ErrNotFound)
		}
		return s.Get(ctx, resolved)
	}

	return &Detail{
		Name:          name,
		AverageRating: review.AverageRating(reviews),
		ReviewCount:   len(reviews),
		Reviews:       reviews,
		Sessions:      sessions,
	}, nil
}

// resolveSlug maps a directory slug back to the trainer's display name.
func (s *Service) resolveSlug(ctx context.Context, slug string) (string, error) {
	summaries, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	for _, sum := range summaries {
		if sum.Slug == slug {
			return sum.Name, nil
		}
	}
	return "", fmt.Errorf("%w: trainer not found", ErrNotFound)
}
