package whatsapp_fx

import (
	"os"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"assinazap/internal/repositories"
	"assinazap/internal/services"
)

var Module = fx.Provide(
	provideConfigRepo,
	provideMessageRepo,
	provideMessageLogRepo,
	provideSender,
	provideConfigService,
	provideMessageService,
)

func provideConfigRepo(db *gorm.DB) repositories.IWhatsAppConfigRepository {
	return repositories.NewWhatsAppConfigRepository(db)
}

func provideMessageRepo(db *gorm.DB) repositories.ICadenceMessageRepository {
	return repositories.NewCadenceMessageRepository(db)
}

func provideMessageLogRepo(db *gorm.DB) repositories.IMessageLogRepository {
	return repositories.NewMessageLogRepository(db)
}

func provideSender() services.IWhatsAppSender {
	return services.NewEvolutionSender(services.EvolutionConfig{
		BaseURL:  os.Getenv("EVOLUTION_BASE_URL"),
		Instance: os.Getenv("EVOLUTION_INSTANCE"),
		APIKey:   os.Getenv("EVOLUTION_API_KEY"),
		Timeout:  15 * time.Second,
	})
}

func provideConfigService(configRepo repositories.IWhatsAppConfigRepository) services.IWhatsAppConfigService {
	return services.NewWhatsAppConfigService(configRepo)
}

func provideMessageService(messageRepo repositories.ICadenceMessageRepository) services.ICadenceMessageService {
	return services.NewCadenceMessageService(messageRepo)
}
