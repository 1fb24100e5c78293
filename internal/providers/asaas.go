package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"assinazap/pkg/utils"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type AsaasConfig struct {
	BaseURL string // e.g. https://api.asaas.com
	APIKey  string // access_token header value
	Timeout time.Duration
}

type asaasSource struct {
	client *resty.Client
	logger *zap.Logger
}

func NewAsaasSource(cfg AsaasConfig, logger *zap.Logger) WebhookSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("access_token", cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &asaasSource{client: client, logger: logger}
}

func (s *asaasSource) Name() string { return "asaas" }

type asaasWebhookPayload struct {
	Event   string `json:"event"`
	Payment struct {
		ID           string  `json:"id"`
		Customer     string  `json:"customer"`
		Subscription string  `json:"subscription"`
		Value        float64 `json:"value"`
		Description  string  `json:"description"`
		DueDate      string  `json:"dueDate"`
		PaymentDate  string  `json:"paymentDate"`
	} `json:"payment"`
}

type asaasCustomerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CpfCnpj     string `json:"cpfCnpj"`
	Phone       string `json:"phone"`
	MobilePhone string `json:"mobilePhone"`
}

// Normalize maps Asaas payment events onto canonical kinds. The webhook
// body does not carry the customer's cpf/name/email, so a secondary fetch
// to the customer API completes the identity; when that fetch fails the
// event is an upstream failure and no subscriber state may change.
func (s *asaasSource) Normalize(ctx context.Context, payload []byte) (*CanonicalEvent, error) {
	var body asaasWebhookPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: asaas: %v", utils.ErrInvalidPayload, err)
	}

	event := &CanonicalEvent{
		Provider:  s.Name(),
		EventType: body.Event,
	}

	switch body.Event {
	case "PAYMENT_CONFIRMED", "PAYMENT_RECEIVED":
		event.Kind = EventConfirmed
	case "PAYMENT_OVERDUE":
		event.Kind = EventOverdue
	default:
		event.Kind = EventIgnored
		return event, nil
	}

	if body.Payment.Customer == "" {
		return nil, fmt.Errorf("%w: asaas event %s without payment.customer", utils.ErrInvalidPayload, body.Event)
	}

	event.CustomerID = body.Payment.Customer
	event.SubscriptionID = body.Payment.Subscription
	event.Amount = body.Payment.Value
	event.PlanType = body.Payment.Description

	if body.Payment.DueDate != "" {
		if due, err := utils.ParseProviderDate(body.Payment.DueDate); err == nil {
			event.DueDate = due
		}
	}
	event.EventDate = time.Now()
	if body.Payment.PaymentDate != "" {
		if paid, err := utils.ParseProviderDate(body.Payment.PaymentDate); err == nil {
			event.EventDate = paid
		}
	}

	customer, err := s.fetchCustomer(ctx, body.Payment.Customer)
	if err != nil {
		return nil, err
	}
	event.CustomerName = customer.Name
	event.CustomerEmail = customer.Email
	event.CPF = customer.CpfCnpj
	event.CustomerPhone = customer.MobilePhone
	if event.CustomerPhone == "" {
		event.CustomerPhone = customer.Phone
	}

	return event, nil
}

func (s *asaasSource) fetchCustomer(ctx context.Context, customerID string) (*asaasCustomerResponse, error) {
	var customer asaasCustomerResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&customer).
		Get("/v3/customers/" + customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: asaas customer %s: %v", utils.ErrUpstreamFailure, customerID, err)
	}
	if resp.IsError() {
		s.logger.Warn("asaas customer lookup failed",
			zap.String("customer_id", customerID),
			zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("%w: asaas customer %s: status %d", utils.ErrUpstreamFailure, customerID, resp.StatusCode())
	}
	return &customer, nil
}
