package order

import (
	"strings"
	"time"
)

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// OrderItem is a priced line on an order. Title, image, price and category
// are denormalized from the product catalog at creation time so the order
// survives later catalog edits.
type OrderItem struct {
	ProductID string  `firestore:"productId" json:"productId"`
	Title     string  `firestore:"title" json:"title"`
	Image     string  `firestore:"image,omitempty" json:"image,omitempty"`
	Category  string  `firestore:"category,omitempty" json:"category,omitempty"`
	Price     float64 `firestore:"price" json:"price"`
	Quantity  int     `firestore:"quantity" json:"quantity"`
}

type Order struct {
	ID          string      `firestore:"id" json:"id"`
	UserID      string      `firestore:"userId" json:"userId"`
	Items       []OrderItem `firestore:"items" json:"items"`
	TotalAmount float64     `firestore:"totalAmount" json:"totalAmount"`
	OrderNumber string      `firestore:"orderNumber" json:"orderNumber"`
	Status      string      `firestore:"status" json:"status"`

	StripeSessionID string     `firestore:"stripeSessionId,omitempty" json:"-"`
	PaidAt          *time.Time `firestore:"paidAt,omitempty" json:"paidAt,omitempty"`
	CancelledAt     *time.Time `firestore:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// ItemInput references a product by id; pricing comes from the catalog, not
// the client.
type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateInput is the payload for placing an order. TotalAmount is accepted
// for backward compatibility but ignored; the total is always recomputed
// server-side from catalog prices.
type CreateInput struct {
	Items       []ItemInput `json:"items"`
	TotalAmount float64     `json:"totalAmount,omitempty"`
}

// StatusInput is the payload for a status transition.
type StatusInput struct {
	Status string `json:"status"`
}

func (in *StatusInput) Trim() {
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
}

// CheckoutInput carries the redirect targets for a Stripe Checkout session.
type CheckoutInput struct {
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

func (in *CheckoutInput) Trim() {
	in.SuccessURL = strings.TrimSpace(in.SuccessURL)
	in.CancelURL = strings.TrimSpace(in.CancelURL)
}
