package providers

import (
	"context"
	"time"
)

type EventKind string

const (
	EventConfirmed EventKind = "confirmed"
	EventOverdue   EventKind = "overdue"
	// EventIgnored marks event kinds this system does not care about. The
	// webhook still answers 200 so the provider stops redelivering them.
	EventIgnored EventKind = "ignored"
)

// CanonicalEvent is the provider-independent view of a payment webhook.
type CanonicalEvent struct {
	Provider  string
	EventType string
	Kind      EventKind

	CustomerID     string
	SubscriptionID string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	CPF            string

	Amount   float64
	PlanType string

	EventDate time.Time
	DueDate   time.Time
}

// WebhookSource turns one provider's raw payload into a CanonicalEvent.
// New providers are new implementations; shared code never branches on
// payload shape.
type WebhookSource interface {
	Name() string
	Normalize(ctx context.Context, payload []byte) (*CanonicalEvent, error)
}
