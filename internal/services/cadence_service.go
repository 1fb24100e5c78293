package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"assinazap/internal/models/db_models"
	"assinazap/internal/repositories"
	"assinazap/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// DispatchJob is the subscriber snapshot a cadence run works from. Phone
// is the number as stored, for templates and log rows; JID is the
// normalized delivery address.
type DispatchJob struct {
	SubscriberID     uuid.UUID
	Name             string
	Phone            string
	JID              string
	SubscriptionDate time.Time
}

type DispatchReport struct {
	Attempted int
	Succeeded int
	Failed    int
	Errors    []string
}

// CadenceEnqueuer hands a job to the dispatch queue without blocking the
// caller. The webhook path depends on this, not on the worker directly.
type CadenceEnqueuer interface {
	Enqueue(job DispatchJob) error
}

type ICadenceService interface {
	Dispatch(ctx context.Context, job DispatchJob) (*DispatchReport, error)
}

type CadenceService struct {
	messages repositories.ICadenceMessageRepository
	logs     repositories.IMessageLogRepository
	config   repositories.IWhatsAppConfigRepository
	sender   IWhatsAppSender
	logger   *zap.Logger
}

func NewCadenceService(
	messages repositories.ICadenceMessageRepository,
	logs repositories.IMessageLogRepository,
	config repositories.IWhatsAppConfigRepository,
	sender IWhatsAppSender,
	logger *zap.Logger,
) ICadenceService {
	return &CadenceService{
		messages: messages,
		logs:     logs,
		config:   config,
		sender:   sender,
		logger:   logger,
	}
}

// Dispatch delivers the active message sequence to one subscriber,
// strictly in order. Every step gets exactly one MessageLog row whatever
// its outcome; a failed step escalates to the admin and the run moves on
// to the next step. The inter-step delay is the one deliberate pause,
// sized for the messaging provider's rate limits.
func (s *CadenceService) Dispatch(ctx context.Context, job DispatchJob) (*DispatchReport, error) {
	config, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load whatsapp config: %w", err)
	}

	messages, err := s.messages.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cadence messages: %w", err)
	}

	report := &DispatchReport{}
	if len(messages) == 0 {
		return report, nil
	}

	vars := utils.TemplateVars{
		Name:             job.Name,
		Phone:            job.Phone,
		SubscriptionDate: utils.FormatDateBR(job.SubscriptionDate),
	}

	delay := time.Duration(config.MessageDelayMs) * time.Millisecond

	for i, message := range messages {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(delay):
			}
		}

		content := utils.ExpandTemplate(message.Content, vars)
		report.Attempted++

		rawResponse, sendErr := s.send(ctx, job.JID, content, message.Type)

		logRow := db_models.MessageLog{
			SubscriberID:    job.SubscriberID,
			SubscriberName:  job.Name,
			SubscriberPhone: job.Phone,
			MessageID:       message.ID,
			MessageType:     message.Type,
			MessageContent:  content,
			Status:          db_models.MessageLogSuccess,
			APIResponse:     rawToJSON(rawResponse),
		}
		if sendErr != nil {
			errorMessage := sendErr.Error()
			logRow.Status = db_models.MessageLogFailed
			logRow.ErrorMessage = &errorMessage
		}
		if err := s.logs.Create(ctx, &logRow); err != nil {
			s.logger.Error("message log insert failed",
				zap.String("subscriber_id", job.SubscriberID.String()),
				zap.Error(err))
		}

		if sendErr != nil {
			report.Failed++
			report.Errors = append(report.Errors,
				fmt.Sprintf("step %d: %v", message.OrderNumber, sendErr))
			s.logger.Warn("cadence step failed",
				zap.String("subscriber_id", job.SubscriberID.String()),
				zap.Int("step", message.OrderNumber),
				zap.Error(sendErr))
			s.escalate(ctx, config, job, message, sendErr)
			continue
		}
		report.Succeeded++
	}

	return report, nil
}

func (s *CadenceService) send(ctx context.Context, jid, content string, messageType db_models.MessageType) ([]byte, error) {
	switch messageType {
	case db_models.MessageTypeImage, db_models.MessageTypeVideo:
		return s.sender.SendMedia(ctx, jid, content, messageType)
	default:
		return s.sender.SendText(ctx, jid, content)
	}
}

// escalate alerts the admin about a failed step. Best effort: its own
// failure is logged and never retried, so one broken step cannot turn
// into an alert storm.
func (s *CadenceService) escalate(ctx context.Context, config *db_models.WhatsAppConfig, job DispatchJob, message db_models.CadenceMessage, sendErr error) {
	if config.AdminPhone == nil || *config.AdminPhone == "" {
		return
	}

	alert := fmt.Sprintf(
		"⚠️ Falha no envio da cadência\nAssinante: %s (%s)\nMensagem %d (%s)\nErro: %s",
		job.Name, job.Phone, message.OrderNumber, message.Type,
		utils.TruncatePreview(sendErr.Error()),
	)

	if _, err := s.sender.SendText(ctx, *config.AdminPhone, alert); err != nil {
		s.logger.Error("admin escalation failed",
			zap.String("admin_phone", *config.AdminPhone),
			zap.Error(err))
	}
}

// rawToJSON stores whatever the provider answered. Non-JSON bodies are
// wrapped as a JSON string so the jsonb column always accepts them.
func rawToJSON(raw []byte) datatypes.JSON {
	if len(raw) == 0 {
		return nil
	}
	if json.Valid(raw) {
		return datatypes.JSON(raw)
	}
	wrapped, err := json.Marshal(string(raw))
	if err != nil {
		return nil
	}
	return datatypes.JSON(wrapped)
}
