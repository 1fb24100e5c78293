package db_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"assinazap/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(logger *zap.Logger) *gorm.DB {
	return infra.InitPostgresql(logger)
}
