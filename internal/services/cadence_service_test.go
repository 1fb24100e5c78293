package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"assinazap/internal/infra"
	"assinazap/internal/models/db_models"
	"assinazap/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sentMessage struct {
	jid     string
	content string
	media   bool
}

type fakeSender struct {
	sent           []sentMessage
	failOn         string
	failEverything bool
}

func (f *fakeSender) SendText(_ context.Context, jid, content string) ([]byte, error) {
	if f.failEverything || (f.failOn != "" && strings.Contains(content, f.failOn)) {
		return nil, errors.New("evolution api: connection refused")
	}
	f.sent = append(f.sent, sentMessage{jid: jid, content: content})
	return []byte(`{"status":"PENDING"}`), nil
}

func (f *fakeSender) SendMedia(_ context.Context, jid, content string, _ db_models.MessageType) ([]byte, error) {
	if f.failEverything || (f.failOn != "" && strings.Contains(content, f.failOn)) {
		return nil, errors.New("evolution api: connection refused")
	}
	f.sent = append(f.sent, sentMessage{jid: jid, content: content, media: true})
	return []byte(`{"status":"PENDING"}`), nil
}

type cadenceFixture struct {
	db      *gorm.DB
	service ICadenceService
	sender  *fakeSender
}

const adminJID = "5511900001111@s.whatsapp.net"

func newCadenceFixture(t *testing.T, adminPhone bool) *cadenceFixture {
	t.Helper()

	db, err := infra.NewTestDB()
	require.NoError(t, err)

	configRepo := repositories.NewWhatsAppConfigRepository(db)
	config, err := configRepo.Get(context.Background())
	require.NoError(t, err)
	config.MessageDelayMs = 0
	if adminPhone {
		admin := adminJID
		config.AdminPhone = &admin
	}
	require.NoError(t, configRepo.Update(context.Background(), config))

	sender := &fakeSender{}
	service := NewCadenceService(
		repositories.NewCadenceMessageRepository(db),
		repositories.NewMessageLogRepository(db),
		configRepo,
		sender,
		zap.NewNop(),
	)

	return &cadenceFixture{db: db, service: service, sender: sender}
}

func (f *cadenceFixture) seedMessage(t *testing.T, order int, messageType db_models.MessageType, content string, active bool) {
	t.Helper()
	message := db_models.CadenceMessage{
		Type:        messageType,
		Content:     content,
		OrderNumber: order,
		IsActive:    active,
	}
	require.NoError(t, f.db.Create(&message).Error)
}

func (f *cadenceFixture) messageLogs(t *testing.T) []db_models.MessageLog {
	t.Helper()
	var logs []db_models.MessageLog
	require.NoError(t, f.db.Order("created_at asc").Find(&logs).Error)
	return logs
}

const subscriberJID = "5511988887777@s.whatsapp.net"

func testJob() DispatchJob {
	return DispatchJob{
		SubscriberID:     uuid.New(),
		Name:             "Carlos Pereira",
		Phone:            "11988887777",
		JID:              subscriberJID,
		SubscriptionDate: time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestDispatchSendsSequenceInOrder(t *testing.T) {
	fixture := newCadenceFixture(t, false)
	fixture.seedMessage(t, 1, db_models.MessageTypeText, "msg um", true)
	fixture.seedMessage(t, 2, db_models.MessageTypeText, "msg dois", true)
	fixture.seedMessage(t, 3, db_models.MessageTypeText, "msg tres", true)
	fixture.seedMessage(t, 4, db_models.MessageTypeText, "inativa", false)

	report, err := fixture.service.Dispatch(context.Background(), testJob())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 3, report.Succeeded)
	assert.Equal(t, 0, report.Failed)

	require.Len(t, fixture.sender.sent, 3)
	assert.Equal(t, "msg um", fixture.sender.sent[0].content)
	assert.Equal(t, "msg dois", fixture.sender.sent[1].content)
	assert.Equal(t, "msg tres", fixture.sender.sent[2].content)
	for _, sent := range fixture.sender.sent {
		assert.Equal(t, subscriberJID, sent.jid)
	}
}

func TestDispatchContinuesAfterFailureAndEscalates(t *testing.T) {
	fixture := newCadenceFixture(t, true)
	fixture.sender.failOn = "msg dois"
	fixture.seedMessage(t, 1, db_models.MessageTypeText, "msg um", true)
	fixture.seedMessage(t, 2, db_models.MessageTypeText, "msg dois", true)
	fixture.seedMessage(t, 3, db_models.MessageTypeText, "msg tres", true)

	job := testJob()
	report, err := fixture.service.Dispatch(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "step 2")

	logs := fixture.messageLogs(t)
	require.Len(t, logs, 3)

	failedCount := 0
	for _, logRow := range logs {
		assert.Equal(t, job.SubscriberID, logRow.SubscriberID)
		assert.Equal(t, job.Phone, logRow.SubscriberPhone)
		if logRow.Status == db_models.MessageLogFailed {
			failedCount++
			require.NotNil(t, logRow.ErrorMessage)
			assert.Contains(t, *logRow.ErrorMessage, "connection refused")
		} else {
			assert.Equal(t, db_models.MessageLogSuccess, logRow.Status)
			assert.NotEmpty(t, logRow.APIResponse)
		}
	}
	assert.Equal(t, 1, failedCount)

	escalations := 0
	for _, sent := range fixture.sender.sent {
		if sent.jid == adminJID {
			escalations++
			assert.Contains(t, sent.content, "Carlos Pereira")
		}
	}
	assert.Equal(t, 1, escalations)
}

func TestDispatchNoAdminPhoneSkipsEscalation(t *testing.T) {
	fixture := newCadenceFixture(t, false)
	fixture.sender.failEverything = true
	fixture.seedMessage(t, 1, db_models.MessageTypeText, "msg um", true)

	report, err := fixture.service.Dispatch(context.Background(), testJob())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, fixture.sender.sent)
}

func TestDispatchExpandsTemplates(t *testing.T) {
	fixture := newCadenceFixture(t, false)
	fixture.seedMessage(t, 1, db_models.MessageTypeText, "Olá {nome}, assinatura de {data_assinatura}", true)

	_, err := fixture.service.Dispatch(context.Background(), testJob())
	require.NoError(t, err)

	require.Len(t, fixture.sender.sent, 1)
	assert.Equal(t, "Olá Carlos, assinatura de 15/08/2026", fixture.sender.sent[0].content)

	logs := fixture.messageLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, "Olá Carlos, assinatura de 15/08/2026", logs[0].MessageContent)
}

func TestDispatchPhoneTokenUsesStoredNumber(t *testing.T) {
	fixture := newCadenceFixture(t, false)
	fixture.seedMessage(t, 1, db_models.MessageTypeText, "Seu número: {telefone}", true)

	job := testJob()
	_, err := fixture.service.Dispatch(context.Background(), job)
	require.NoError(t, err)

	// The template sees the phone as stored; only delivery uses the JID.
	require.Len(t, fixture.sender.sent, 1)
	assert.Equal(t, "Seu número: 11988887777", fixture.sender.sent[0].content)
	assert.Equal(t, subscriberJID, fixture.sender.sent[0].jid)

	logs := fixture.messageLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, job.Phone, logs[0].SubscriberPhone)
}

func TestDispatchMediaUsesMediaEndpoint(t *testing.T) {
	fixture := newCadenceFixture(t, false)
	fixture.seedMessage(t, 1, db_models.MessageTypeImage, "https://cdn.example.com/boas-vindas.png", true)

	_, err := fixture.service.Dispatch(context.Background(), testJob())
	require.NoError(t, err)

	require.Len(t, fixture.sender.sent, 1)
	assert.True(t, fixture.sender.sent[0].media)
}

func TestDispatchEmptySequence(t *testing.T) {
	fixture := newCadenceFixture(t, false)

	report, err := fixture.service.Dispatch(context.Background(), testJob())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Attempted)
	assert.Empty(t, fixture.sender.sent)
	assert.Empty(t, fixture.messageLogs(t))
}
