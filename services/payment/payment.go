package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"

	"slotwise/models"
)

// Event is the verified payment signal the scheduling core reacts to.
type Event struct {
	BookingID string
	Paid      bool
	Refunded  bool
}

// Gateway is the payment collaborator. The core only creates intents for
// online bookings and reacts to verified webhook events; capture mechanics
// stay on the gateway side.
type Gateway interface {
	CreateIntent(ctx context.Context, b *models.Booking, amount float64, currency string) (string, error)
	VerifyWebhook(payload []byte, signatureHeader string) (Event, error)
}

// StripeGateway implements Gateway on Stripe payment intents and webhooks.
type StripeGateway struct {
	WebhookSecret string
}

func (g *StripeGateway) CreateIntent(ctx context.Context, b *models.Booking, amount float64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("booking_id", b.ID)
	params.AddMetadata("business_id", b.BusinessID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}

func (g *StripeGateway) VerifyWebhook(payload []byte, signatureHeader string) (Event, error) {
	evt, err := webhook.ConstructEvent(payload, signatureHeader, g.WebhookSecret)
	if err != nil {
		return Event{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch evt.Type {
	case "payment_intent.succeeded", "charge.refunded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(evt.Data.Raw, &intent); err != nil {
			return Event{}, fmt.Errorf("failed to parse webhook payload: %w", err)
		}
		return Event{
			BookingID: intent.Metadata["booking_id"],
			Paid:      evt.Type == "payment_intent.succeeded",
			Refunded:  evt.Type == "charge.refunded",
		}, nil
	default:
		return Event{}, nil
	}
}
