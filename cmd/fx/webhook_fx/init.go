package webhook_fx

import (
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"assinazap/internal/api/controllers"
	"assinazap/internal/providers"
	"assinazap/internal/repositories"
	"assinazap/internal/services"
)

var Module = fx.Provide(
	provideWebhookController)

func provideWebhookController(
	subscriberService services.ISubscriberService,
	webhookLogRepo repositories.IWebhookLogRepository,
	logger *zap.Logger,
) *controllers.WebhookController {
	asaas := providers.NewAsaasSource(providers.AsaasConfig{
		BaseURL: os.Getenv("ASAAS_BASE_URL"),
		APIKey:  os.Getenv("ASAAS_API_KEY"),
		Timeout: 10 * time.Second,
	}, logger)
	stripe := providers.NewStripeSource()

	return controllers.NewWebhookController(subscriberService, webhookLogRepo, asaas, stripe)
}
