package subscriber_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"assinazap/internal/repositories"
	"assinazap/internal/services"
)

var Module = fx.Provide(
	provideSubscriberRepo, provideWebhookLogRepo, provideSubscriberService)

func provideSubscriberRepo(db *gorm.DB) repositories.ISubscriberRepository {
	return repositories.NewSubscriberRepository(db)
}

func provideWebhookLogRepo(db *gorm.DB) repositories.IWebhookLogRepository {
	return repositories.NewWebhookLogRepository(db)
}

func provideSubscriberService(
	subscriberRepo repositories.ISubscriberRepository,
	webhookLogRepo repositories.IWebhookLogRepository,
	configRepo repositories.IWhatsAppConfigRepository,
	enqueuer services.CadenceEnqueuer,
	logger *zap.Logger,
) services.ISubscriberService {
	return services.NewSubscriberService(subscriberRepo, webhookLogRepo, configRepo, enqueuer, logger)
}
