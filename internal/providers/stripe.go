package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"assinazap/pkg/utils"
)

type stripeSource struct{}

func NewStripeSource() WebhookSource {
	return &stripeSource{}
}

func (s *stripeSource) Name() string { return "stripe" }

type stripeWebhookPayload struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID              string `json:"id"`
			Customer        string `json:"customer"`
			CustomerEmail   string `json:"customer_email"`
			CustomerName    string `json:"customer_name"`
			CustomerDetails *struct {
				Email string `json:"email"`
				Name  string `json:"name"`
				Phone string `json:"phone"`
			} `json:"customer_details"`
			Subscription       string `json:"subscription"`
			AmountPaid         int64  `json:"amount_paid"`
			AmountTotal        int64  `json:"amount_total"`
			Created            int64  `json:"created"`
			DueDate            int64  `json:"due_date"`
			NextPaymentAttempt int64  `json:"next_payment_attempt"`
			Lines              struct {
				Data []struct {
					Price struct {
						Nickname string `json:"nickname"`
					} `json:"price"`
				} `json:"data"`
			} `json:"lines"`
		} `json:"object"`
	} `json:"data"`
}

// Normalize maps Stripe invoice/checkout events onto canonical kinds. The
// Stripe payload is self-contained; no secondary fetch is needed.
func (s *stripeSource) Normalize(_ context.Context, payload []byte) (*CanonicalEvent, error) {
	var body stripeWebhookPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: stripe: %v", utils.ErrInvalidPayload, err)
	}

	event := &CanonicalEvent{
		Provider:  s.Name(),
		EventType: body.Type,
	}

	switch body.Type {
	case "invoice.payment_succeeded", "checkout.session.completed":
		event.Kind = EventConfirmed
	case "invoice.payment_failed":
		event.Kind = EventOverdue
	default:
		event.Kind = EventIgnored
		return event, nil
	}

	object := body.Data.Object
	if object.Customer == "" {
		return nil, fmt.Errorf("%w: stripe event %s without customer", utils.ErrInvalidPayload, body.Type)
	}

	event.CustomerID = object.Customer
	event.SubscriptionID = object.Subscription
	event.CustomerEmail = object.CustomerEmail
	event.CustomerName = object.CustomerName
	if details := object.CustomerDetails; details != nil {
		if event.CustomerEmail == "" {
			event.CustomerEmail = details.Email
		}
		if event.CustomerName == "" {
			event.CustomerName = details.Name
		}
		event.CustomerPhone = details.Phone
	}

	// Stripe amounts come in minor units.
	amount := object.AmountPaid
	if amount == 0 {
		amount = object.AmountTotal
	}
	event.Amount = float64(amount) / 100

	if len(object.Lines.Data) > 0 {
		event.PlanType = object.Lines.Data[0].Price.Nickname
	}

	event.EventDate = time.Now()
	if object.Created > 0 {
		event.EventDate = time.Unix(object.Created, 0)
	}
	switch {
	case object.DueDate > 0:
		event.DueDate = time.Unix(object.DueDate, 0)
	case object.NextPaymentAttempt > 0:
		event.DueDate = time.Unix(object.NextPaymentAttempt, 0)
	default:
		event.DueDate = event.EventDate
	}

	return event, nil
}
