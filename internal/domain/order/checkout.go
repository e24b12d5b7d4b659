package order

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"

	"github.com/stripe/stripe-go/v78"
	checkoutsession "github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/webhook"
)

// StripeConfig holds the keys for checkout and webhook verification.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// CreateCheckout builds a Stripe Checkout session for a pending order and
// returns its redirect URL. The order id travels in session metadata so the
// webhook can find it.
func (s *Service) CreateCheckout(ctx context.Context, orderID, requesterUID string, in CheckoutInput) (string, error) {
	if s.stripe == nil || s.stripe.SecretKey == "" {
		return "", fmt.Errorf("%w: payments are not configured", ErrBadRequest)
	}
	in.Trim()
	if in.SuccessURL == "" || in.CancelURL == "" {
		return "", fmt.Errorf("%w: successUrl and cancelUrl are required", ErrBadRequest)
	}

	o, err := s.Get(ctx, orderID, requesterUID, false)
	if err != nil {
		return "", err
	}
	if o.Status != StatusPending {
		return "", fmt.Errorf("%w: only pending orders can be checked out", ErrConflict)
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(o.Items))
	for _, item := range o.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(toCents(item.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Title),
				},
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		Metadata: map[string]string{
			"orderId":     o.ID,
			"orderNumber": o.OrderNumber,
		},
	}
	params.Context = ctx

	session, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	if _, err := s.store.Update(ctx, o.ID, map[string]interface{}{
		"stripeSessionId": session.ID,
		"updatedAt":       s.now().UTC(),
	}); err != nil {
		return "", err
	}

	return session.URL, nil
}

// HandleWebhook verifies and processes Stripe events. Only
// checkout.session.completed is acted on; everything else is acknowledged.
func (s *Service) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const MaxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("webhook: error reading request body: %v", err)
		http.Error(w, "Error reading request body", http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, s.stripe.WebhookSecret)
	if err != nil {
		log.Printf("webhook: signature verification failed: %v", err)
		http.Error(w, fmt.Sprintf("Webhook signature verification failed: %v", err), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	log.Printf("webhook: received event type=%s id=%s", event.Type, event.ID)

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			log.Printf("webhook: error parsing checkout session: %v", err)
			http.Error(w, fmt.Sprintf("Error parsing webhook JSON: %v", err), http.StatusBadRequest)
			return
		}
		if err := s.handleCheckoutCompleted(ctx, &session); err != nil {
			log.Printf("webhook: error handling checkout completed: %v", err)
			// Acknowledge anyway to prevent retries.
		}

	default:
		log.Printf("webhook: ignoring event type=%s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	orderID := session.Metadata["orderId"]
	if orderID == "" {
		return fmt.Errorf("checkout session %s has no orderId metadata", session.ID)
	}
	return s.markPaid(ctx, orderID, session.ID)
}

// toCents converts a catalog price to Stripe's integer minor units.
func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
