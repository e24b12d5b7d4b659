package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"fitsync-pro/backend/internal/domain/booking"
	"fitsync-pro/backend/internal/domain/order"
	"fitsync-pro/backend/internal/domain/review"
	"fitsync-pro/backend/internal/domain/session"
)

// Orders supplies the full order list for the revenue tally. *order.Repo
// implements it.
type Orders interface {
	ListAll(ctx context.Context) ([]order.Order, error)
}

type Service struct {
	client *firestore.Client
	orders Orders
	now    func() time.Time
}

func NewService(client *firestore.Client, orders Orders) *Service {
	return &Service{client: client, orders: orders, now: time.Now}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// GetDashboardStats aggregates the admin dashboard in one pass per
// collection. Scans are acceptable at this fleet size; revisit with
// aggregation queries if collections grow past tens of thousands of docs.
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := s.now().UTC()
	out := &DashboardStats{GeneratedAt: now.Format(time.RFC3339)}

	// Sessions by derived status.
	sessIter := s.client.Collection("sessions").Documents(ctx)
	for {
		doc, err := sessIter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan sessions: %w", err)
		}
		var sess session.Session
		if err := doc.DataTo(&sess); err != nil {
			continue
		}
		out.Sessions.Total++
		switch sess.StatusAt(now) {
		case session.StatusActive:
			out.Sessions.Active++
		case session.StatusCancelled:
			out.Sessions.Cancelled++
		case session.StatusCompleted:
			out.Sessions.Completed++
		}
	}

	virtualIter := s.client.Collection("virtualSessions").Documents(ctx)
	for {
		_, err := virtualIter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			break
		}
		out.Sessions.Virtual++
	}

	// Bookings by status.
	bookIter := s.client.Collection("sessionParticipants").Documents(ctx)
	for {
		doc, err := bookIter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookings: %w", err)
		}
		out.Bookings.Total++
		status, _ := doc.Data()["status"].(string)
		switch status {
		case booking.StatusPending:
			out.Bookings.Pending++
		case booking.StatusApproved:
			out.Bookings.Approved++
		case booking.StatusRejected:
			out.Bookings.Rejected++
		}
	}

	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}
	out.Orders.Total, out.Orders.Paid, out.Orders.TotalRevenue = OrderTotalsFrom(orders)

	// Members.
	userIter := s.client.Collection("users").Documents(ctx)
	for {
		doc, err := userIter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			break
		}
		out.Members.Total++
		// Documents predating the isActive field count as active.
		if active, ok := doc.Data()["isActive"].(bool); !ok || active {
			out.Members.Active++
		}
	}

	// Top trainers by rating.
	var reviews []review.Review
	revIter := s.client.Collection("reviews").Documents(ctx)
	for {
		doc, err := revIter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan reviews: %w", err)
		}
		var rev review.Review
		if err := doc.DataTo(&rev); err != nil {
			continue
		}
		reviews = append(reviews, rev)
	}
	out.TopTrainers = TopTrainersFrom(reviews, 5)

	return out, nil
}

// TopTrainersFrom ranks trainers by mean rating, breaking ties by review
// count then name. Trainers below two reviews still rank; a single loud
// 5-star can top the board, which is what the dashboard has always shown.
func TopTrainersFrom(reviews []review.Review, limit int) []TrainerRating {
	type agg struct {
		name  string
		sum   int
		count int
	}
	byKey := make(map[string]*agg)
	for _, rev := range reviews {
		key := rev.TrainerNameLower
		if key == "" {
			continue
		}
		a, ok := byKey[key]
		if !ok {
			a = &agg{name: rev.Trainer}
			byKey[key] = a
		}
		a.sum += rev.Rating
		a.count++
	}

	out := make([]TrainerRating, 0, len(byKey))
	for _, a := range byKey {
		out = append(out, TrainerRating{
			Trainer:       a.name,
			AverageRating: float64(a.sum) / float64(a.count),
			ReviewCount:   a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		if out[i].ReviewCount != out[j].ReviewCount {
			return out[i].ReviewCount > out[j].ReviewCount
		}
		return out[i].Trainer < out[j].Trainer
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// OrderTotalsFrom tallies order counts and revenue. Revenue counts everything
// that has been paid for, whatever its fulfilment state.
func OrderTotalsFrom(orders []order.Order) (total, paid int, revenue float64) {
	for _, o := range orders {
		total++
		switch o.Status {
		case order.StatusPaid, order.StatusShipped, order.StatusCompleted:
			paid++
			revenue += o.TotalAmount
		}
	}
	return total, paid, revenue
}
