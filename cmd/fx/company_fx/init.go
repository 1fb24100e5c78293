package company_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"assinazap/internal/repositories"
	"assinazap/internal/services"
)

var Module = fx.Provide(
	provideCompanyRepo, provideCompanyService)

func provideCompanyRepo(db *gorm.DB) repositories.ICompanyRepository {
	return repositories.NewCompanyRepository(db)
}

func provideCompanyService(companyRepo repositories.ICompanyRepository, logger *zap.Logger) services.ICompanyService {
	return services.NewCompanyService(companyRepo, logger)
}
