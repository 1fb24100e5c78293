package services

import (
	"context"
	"fmt"
	"time"

	"assinazap/internal/models/db_models"
	"assinazap/internal/providers"
	"assinazap/internal/repositories"
	"assinazap/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// renewalWindowDays is the fixed window added to a confirmed payment's
// date to compute the next due date.
const renewalWindowDays = 30

const defaultPlanType = "padrao"

type ISubscriberService interface {
	ProcessWebhook(ctx context.Context, source providers.WebhookSource, payload []byte) error
	LookupByCard(ctx context.Context, cardID string) (*db_models.Subscriber, error)
	RemoveCorporate(ctx context.Context, id uuid.UUID) error
}

type SubscriberService struct {
	subscribers repositories.ISubscriberRepository
	webhookLogs repositories.IWebhookLogRepository
	config      repositories.IWhatsAppConfigRepository
	enqueuer    CadenceEnqueuer
	logger      *zap.Logger
}

func NewSubscriberService(
	subscribers repositories.ISubscriberRepository,
	webhookLogs repositories.IWebhookLogRepository,
	config repositories.IWhatsAppConfigRepository,
	enqueuer CadenceEnqueuer,
	logger *zap.Logger,
) ISubscriberService {
	return &SubscriberService{
		subscribers: subscribers,
		webhookLogs: webhookLogs,
		config:      config,
		enqueuer:    enqueuer,
		logger:      logger,
	}
}

// ProcessWebhook is the state machine entry point: normalize the provider
// payload, apply the canonical event, and append one audit row whatever
// the outcome. The audit row is written before the caller gets its
// response; it is the only place failures are surfaced.
func (s *SubscriberService) ProcessWebhook(ctx context.Context, source providers.WebhookSource, payload []byte) error {
	event, err := source.Normalize(ctx, payload)
	if err != nil {
		s.audit(ctx, source.Name(), "", payload, db_models.WebhookFailed, err)
		return err
	}

	if event.Kind == providers.EventIgnored {
		s.audit(ctx, source.Name(), event.EventType, payload, db_models.WebhookIgnored, nil)
		return nil
	}

	if err := s.apply(ctx, event); err != nil {
		s.audit(ctx, source.Name(), event.EventType, payload, db_models.WebhookFailed, err)
		return err
	}

	s.audit(ctx, source.Name(), event.EventType, payload, db_models.WebhookProcessed, nil)
	return nil
}

func (s *SubscriberService) apply(ctx context.Context, event *providers.CanonicalEvent) error {
	subscriber, err := s.match(ctx, event)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	switch event.Kind {
	case providers.EventConfirmed:
		if subscriber == nil {
			return s.create(ctx, event)
		}
		return s.renew(ctx, subscriber, event)
	case providers.EventOverdue:
		if subscriber == nil {
			return utils.ErrSubscriberNotFound
		}
		return s.markOverdue(ctx, subscriber, event)
	default:
		return nil
	}
}

// match resolves the canonical customer identity: cpf is the natural key,
// email/provider customer id is the fallback for provider-only records.
func (s *SubscriberService) match(ctx context.Context, event *providers.CanonicalEvent) (*db_models.Subscriber, error) {
	if event.CPF != "" {
		subscriber, err := s.subscribers.FindByCPF(ctx, event.CPF)
		if err != nil {
			return nil, err
		}
		if subscriber != nil {
			return subscriber, nil
		}
	}
	return s.subscribers.FindByProviderIdentity(ctx, event.Provider, event.CustomerEmail, event.CustomerID)
}

func (s *SubscriberService) create(ctx context.Context, event *providers.CanonicalEvent) error {
	planType := event.PlanType
	if planType == "" {
		planType = defaultPlanType
	}

	subscriber := db_models.Subscriber{
		Name:                   event.CustomerName,
		Email:                  event.CustomerEmail,
		Phone:                  event.CustomerPhone,
		Status:                 db_models.SubscriberAtivo,
		PlanType:               planType,
		Value:                  event.Amount,
		StartDate:              event.EventDate,
		NextDueDate:            event.EventDate.AddDate(0, 0, renewalWindowDays),
		CardID:                 uuid.NewString(),
		SubscriberType:         db_models.SubscriberIndividual,
		Provider:               event.Provider,
		ProviderCustomerID:     event.CustomerID,
		ProviderSubscriptionID: event.SubscriptionID,
	}
	if event.CPF != "" {
		cpf := event.CPF
		subscriber.CPF = &cpf
	}

	if err := s.subscribers.Create(ctx, &subscriber); err != nil {
		return fmt.Errorf("%w: create subscriber: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info("subscriber created",
		zap.String("subscriber_id", subscriber.ID.String()),
		zap.String("provider", event.Provider),
		zap.String("card_id", subscriber.CardID))

	s.maybeEnqueueCadence(ctx, &subscriber)
	return nil
}

// renew replaces the mutable fields from the event. Keyed by subscriber
// id and always a full replace, never an accumulation, so replaying the
// same event lands on the same state.
func (s *SubscriberService) renew(ctx context.Context, subscriber *db_models.Subscriber, event *providers.CanonicalEvent) error {
	if event.CustomerName != "" {
		subscriber.Name = event.CustomerName
	}
	if event.CustomerEmail != "" {
		subscriber.Email = event.CustomerEmail
	}
	if event.CustomerPhone != "" {
		subscriber.Phone = event.CustomerPhone
	}
	if subscriber.CPF == nil && event.CPF != "" {
		cpf := event.CPF
		subscriber.CPF = &cpf
	}

	subscriber.Status = db_models.SubscriberAtivo
	subscriber.Value = event.Amount
	subscriber.NextDueDate = event.EventDate.AddDate(0, 0, renewalWindowDays)
	subscriber.Provider = event.Provider
	subscriber.ProviderCustomerID = event.CustomerID
	if event.SubscriptionID != "" {
		subscriber.ProviderSubscriptionID = event.SubscriptionID
	}

	if err := s.subscribers.Update(ctx, subscriber); err != nil {
		return fmt.Errorf("%w: renew subscriber: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (s *SubscriberService) markOverdue(ctx context.Context, subscriber *db_models.Subscriber, event *providers.CanonicalEvent) error {
	subscriber.Status = db_models.SubscriberVencido
	if !event.DueDate.IsZero() {
		subscriber.NextDueDate = event.DueDate
	}

	if err := s.subscribers.Update(ctx, subscriber); err != nil {
		return fmt.Errorf("%w: mark overdue: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

// maybeEnqueueCadence hands a freshly created subscriber to the dispatch
// queue. Fire and forget relative to the webhook: any problem here is
// logged and never bubbles up to the provider's HTTP response.
func (s *SubscriberService) maybeEnqueueCadence(ctx context.Context, subscriber *db_models.Subscriber) {
	config, err := s.config.Get(ctx)
	if err != nil {
		s.logger.Error("cadence config load failed", zap.Error(err))
		return
	}
	if !config.CadenceEnabled || subscriber.Phone == "" {
		return
	}

	jid, err := utils.NormalizeWhatsAppPhone(subscriber.Phone)
	if err != nil {
		s.logger.Warn("cadence skipped: phone not normalizable",
			zap.String("subscriber_id", subscriber.ID.String()),
			zap.Error(err))
		return
	}

	job := DispatchJob{
		SubscriberID:     subscriber.ID,
		Name:             subscriber.Name,
		Phone:            subscriber.Phone,
		JID:              jid,
		SubscriptionDate: subscriber.StartDate,
	}
	if err := s.enqueuer.Enqueue(job); err != nil {
		s.logger.Error("cadence enqueue failed",
			zap.String("subscriber_id", subscriber.ID.String()),
			zap.Error(err))
	}
}

func (s *SubscriberService) LookupByCard(ctx context.Context, cardID string) (*db_models.Subscriber, error) {
	subscriber, err := s.subscribers.FindByCardID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if subscriber == nil {
		return nil, utils.ErrSubscriberNotFound
	}
	return subscriber, nil
}

// RemoveCorporate soft-deletes a corporate subscriber: status flips to
// inativo and removed_at is stamped, the row stays queryable forever.
func (s *SubscriberService) RemoveCorporate(ctx context.Context, id uuid.UUID) error {
	subscriber, err := s.subscribers.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if subscriber == nil {
		return utils.ErrSubscriberNotFound
	}
	if subscriber.RemovedAt != nil {
		return nil
	}

	now := time.Now()
	subscriber.Status = db_models.SubscriberInativo
	subscriber.RemovedAt = &now
	if err := s.subscribers.Update(ctx, subscriber); err != nil {
		return fmt.Errorf("%w: remove subscriber: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (s *SubscriberService) audit(ctx context.Context, provider, eventType string, payload []byte, status db_models.WebhookLogStatus, cause error) {
	logRow := db_models.WebhookLog{
		Provider:  provider,
		EventType: eventType,
		Payload:   rawToJSON(payload),
		Status:    status,
	}
	if cause != nil {
		message := cause.Error()
		logRow.ErrorMessage = &message
	}
	if err := s.webhookLogs.Create(ctx, &logRow); err != nil {
		s.logger.Error("webhook audit insert failed",
			zap.String("provider", provider),
			zap.Error(err))
	}
}
