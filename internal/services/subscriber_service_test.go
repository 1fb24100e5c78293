package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"assinazap/internal/infra"
	"assinazap/internal/models/db_models"
	"assinazap/internal/providers"
	"assinazap/internal/repositories"
	"assinazap/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubSource struct {
	name  string
	event *providers.CanonicalEvent
	err   error
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Normalize(context.Context, []byte) (*providers.CanonicalEvent, error) {
	return s.event, s.err
}

type fakeEnqueuer struct {
	jobs []DispatchJob
	err  error
}

func (f *fakeEnqueuer) Enqueue(job DispatchJob) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type subscriberFixture struct {
	db       *gorm.DB
	service  ISubscriberService
	enqueuer *fakeEnqueuer
	config   repositories.IWhatsAppConfigRepository
}

func newSubscriberFixture(t *testing.T, cadenceEnabled bool) *subscriberFixture {
	t.Helper()

	db, err := infra.NewTestDB()
	require.NoError(t, err)

	configRepo := repositories.NewWhatsAppConfigRepository(db)
	if cadenceEnabled {
		config, err := configRepo.Get(context.Background())
		require.NoError(t, err)
		config.CadenceEnabled = true
		require.NoError(t, configRepo.Update(context.Background(), config))
	}

	enqueuer := &fakeEnqueuer{}
	service := NewSubscriberService(
		repositories.NewSubscriberRepository(db),
		repositories.NewWebhookLogRepository(db),
		configRepo,
		enqueuer,
		zap.NewNop(),
	)

	return &subscriberFixture{db: db, service: service, enqueuer: enqueuer, config: configRepo}
}

func confirmedEvent(cpf string) *providers.CanonicalEvent {
	eventDate := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	return &providers.CanonicalEvent{
		Provider:       "asaas",
		EventType:      "PAYMENT_CONFIRMED",
		Kind:           providers.EventConfirmed,
		CustomerID:     "cus_000001",
		SubscriptionID: "sub_000001",
		CustomerName:   "Carlos Pereira",
		CustomerEmail:  "carlos@example.com",
		CustomerPhone:  "11988887777",
		CPF:            cpf,
		Amount:         49.9,
		PlanType:       "Plano Mensal",
		EventDate:      eventDate,
		DueDate:        eventDate,
	}
}

func (f *subscriberFixture) subscribers(t *testing.T) []db_models.Subscriber {
	t.Helper()
	var subscribers []db_models.Subscriber
	require.NoError(t, f.db.Find(&subscribers).Error)
	return subscribers
}

func (f *subscriberFixture) webhookLogs(t *testing.T) []db_models.WebhookLog {
	t.Helper()
	var logs []db_models.WebhookLog
	require.NoError(t, f.db.Find(&logs).Error)
	return logs
}

func TestProcessWebhookCreatesSubscriber(t *testing.T) {
	fixture := newSubscriberFixture(t, true)
	source := stubSource{name: "asaas", event: confirmedEvent("12345678901")}

	err := fixture.service.ProcessWebhook(context.Background(), source, []byte(`{}`))
	require.NoError(t, err)

	subscribers := fixture.subscribers(t)
	require.Len(t, subscribers, 1)

	subscriber := subscribers[0]
	assert.Equal(t, db_models.SubscriberAtivo, subscriber.Status)
	assert.Equal(t, "Carlos Pereira", subscriber.Name)
	require.NotNil(t, subscriber.CPF)
	assert.Equal(t, "12345678901", *subscriber.CPF)
	assert.NotEmpty(t, subscriber.CardID)
	assert.Equal(t, "Plano Mensal", subscriber.PlanType)
	assert.InDelta(t, 49.9, subscriber.Value, 0.001)
	assert.Equal(t, "2026-09-19", subscriber.NextDueDate.Format("2006-01-02"))
	assert.Equal(t, "cus_000001", subscriber.ProviderCustomerID)
	assert.Equal(t, "sub_000001", subscriber.ProviderSubscriptionID)

	logs := fixture.webhookLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, db_models.WebhookProcessed, logs[0].Status)

	require.Len(t, fixture.enqueuer.jobs, 1)
	assert.Equal(t, subscriber.ID, fixture.enqueuer.jobs[0].SubscriberID)
	assert.Equal(t, "11988887777", fixture.enqueuer.jobs[0].Phone)
	assert.Equal(t, "5511988887777@s.whatsapp.net", fixture.enqueuer.jobs[0].JID)
}

func TestProcessWebhookReplayIsIdempotent(t *testing.T) {
	fixture := newSubscriberFixture(t, false)
	source := stubSource{name: "asaas", event: confirmedEvent("12345678901")}

	require.NoError(t, fixture.service.ProcessWebhook(context.Background(), source, []byte(`{}`)))
	require.NoError(t, fixture.service.ProcessWebhook(context.Background(), source, []byte(`{}`)))

	subscribers := fixture.subscribers(t)
	require.Len(t, subscribers, 1)
	assert.Equal(t, db_models.SubscriberAtivo, subscribers[0].Status)
	assert.InDelta(t, 49.9, subscribers[0].Value, 0.001)

	assert.Len(t, fixture.webhookLogs(t), 2)
}

func TestProcessWebhookSecondEventUpdatesFields(t *testing.T) {
	fixture := newSubscriberFixture(t, false)

	first := confirmedEvent("12345678901")
	require.NoError(t, fixture.service.ProcessWebhook(context.Background(), stubSource{name: "asaas", event: first}, []byte(`{}`)))

	second := confirmedEvent("12345678901")
	second.Amount = 79.9
	second.CustomerEmail = "novo@example.com"
	require.NoError(t, fixture.service.ProcessWebhook(context.Background(), stubSource{name: "asaas", event: second}, []byte(`{}`)))

	subscribers := fixture.subscribers(t)
	require.Len(t, subscribers, 1)
	assert.InDelta(t, 79.9, subscribers[0].Value, 0.001)
	assert.Equal(t, "novo@example.com", subscribers[0].Email)
}

func TestProcessWebhookOverdueMarksVencido(t *testing.T) {
	fixture := newSubscriberFixture(t, false)
	require.NoError(t, fixture.service.ProcessWebhook(context.Background(), stubSource{name: "asaas", event: confirmedEvent("12345678901")}, []byte(`{}`)))

	other := confirmedEvent("98765432100")
	other.CustomerID = "cus_000002"
	other.CustomerEmail = "outro@example.com"
	require.NoError(t, fixture.service.ProcessWebhook(context.Background(), stubSource{name: "asaas", event: other}, []byte(`{}`)))

	overdue := confirmedEvent("12345678901")
	overdue.Kind = providers.EventOverdue
	overdue.EventType = "PAYMENT_OVERDUE"
	overdue.DueDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, fixture.service.ProcessWebhook(context.Background(), stubSource{name: "asaas", event: overdue}, []byte(`{}`)))

	subscribers := fixture.subscribers(t)
	require.Len(t, subscribers, 2)
	for _, subscriber := range subscribers {
		if subscriber.CPF != nil && *subscriber.CPF == "12345678901" {
			assert.Equal(t, db_models.SubscriberVencido, subscriber.Status)
			assert.Equal(t, "2026-09-01", subscriber.NextDueDate.Format("2006-01-02"))
		} else {
			assert.Equal(t, db_models.SubscriberAtivo, subscriber.Status)
		}
	}
}

func TestProcessWebhookOverdueUnknownCustomer(t *testing.T) {
	fixture := newSubscriberFixture(t, false)

	overdue := confirmedEvent("12345678901")
	overdue.Kind = providers.EventOverdue

	err := fixture.service.ProcessWebhook(context.Background(), stubSource{name: "asaas", event: overdue}, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrSubscriberNotFound))

	logs := fixture.webhookLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, db_models.WebhookFailed, logs[0].Status)
	require.NotNil(t, logs[0].ErrorMessage)
}

func TestProcessWebhookIgnoredEventIsNoOp(t *testing.T) {
	fixture := newSubscriberFixture(t, true)
	source := stubSource{name: "asaas", event: &providers.CanonicalEvent{
		Provider:  "asaas",
		EventType: "PAYMENT_CREATED",
		Kind:      providers.EventIgnored,
	}}

	require.NoError(t, fixture.service.ProcessWebhook(context.Background(), source, []byte(`{}`)))

	assert.Empty(t, fixture.subscribers(t))
	assert.Empty(t, fixture.enqueuer.jobs)

	logs := fixture.webhookLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, db_models.WebhookIgnored, logs[0].Status)
}

func TestProcessWebhookNormalizeFailureIsAudited(t *testing.T) {
	fixture := newSubscriberFixture(t, false)
	source := stubSource{name: "asaas", err: utils.ErrInvalidPayload}

	err := fixture.service.ProcessWebhook(context.Background(), source, []byte(`not json`))
	require.Error(t, err)

	logs := fixture.webhookLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, db_models.WebhookFailed, logs[0].Status)
}

func TestCadenceNotEnqueuedWhenDisabled(t *testing.T) {
	fixture := newSubscriberFixture(t, false)
	require.NoError(t, fixture.service.ProcessWebhook(context.Background(), stubSource{name: "asaas", event: confirmedEvent("12345678901")}, []byte(`{}`)))
	assert.Empty(t, fixture.enqueuer.jobs)
}

func TestRemoveCorporateSoftDeletes(t *testing.T) {
	fixture := newSubscriberFixture(t, false)
	require.NoError(t, fixture.service.ProcessWebhook(context.Background(), stubSource{name: "asaas", event: confirmedEvent("12345678901")}, []byte(`{}`)))

	subscriber := fixture.subscribers(t)[0]
	require.NoError(t, fixture.service.RemoveCorporate(context.Background(), subscriber.ID))

	var reloaded db_models.Subscriber
	require.NoError(t, fixture.db.First(&reloaded, "id = ?", subscriber.ID).Error)
	assert.Equal(t, db_models.SubscriberInativo, reloaded.Status)
	require.NotNil(t, reloaded.RemovedAt)

	// The row stays queryable by card after removal.
	found, err := fixture.service.LookupByCard(context.Background(), subscriber.CardID)
	require.NoError(t, err)
	assert.Equal(t, subscriber.ID, found.ID)
}
