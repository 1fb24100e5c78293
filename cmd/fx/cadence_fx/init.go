package cadence_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"assinazap/internal/repositories"
	"assinazap/internal/services"
	"assinazap/internal/workers"
)

var Module = fx.Options(
	fx.Provide(provideCadenceService, provideWorker, provideEnqueuer),
	fx.Invoke(registerWorker),
)

func provideCadenceService(
	messageRepo repositories.ICadenceMessageRepository,
	logRepo repositories.IMessageLogRepository,
	configRepo repositories.IWhatsAppConfigRepository,
	sender services.IWhatsAppSender,
	logger *zap.Logger,
) services.ICadenceService {
	return services.NewCadenceService(messageRepo, logRepo, configRepo, sender, logger)
}

func provideWorker(dispatcher services.ICadenceService, logger *zap.Logger) *workers.CadenceWorker {
	return workers.NewCadenceWorker(dispatcher, logger)
}

func provideEnqueuer(worker *workers.CadenceWorker) services.CadenceEnqueuer {
	return worker
}

func registerWorker(lc fx.Lifecycle, worker *workers.CadenceWorker) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			worker.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return worker.Stop(ctx)
		},
	})
}
