package services

import (
	"context"
	"fmt"

	"assinazap/internal/models/db_models"
	"assinazap/internal/repositories"
	"assinazap/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ICompanyService interface {
	ChangeStatus(ctx context.Context, companyID uuid.UUID, status db_models.CompanyStatus) ([]uuid.UUID, error)
}

type CompanyService struct {
	companies repositories.ICompanyRepository
	logger    *zap.Logger
}

func NewCompanyService(companies repositories.ICompanyRepository, logger *zap.Logger) ICompanyService {
	return &CompanyService{companies: companies, logger: logger}
}

// ChangeStatus applies a company status change and, on cancellation,
// cascades a soft delete onto the linked corporate subscribers. Suspension
// is billing-only: access persists and no subscriber row moves.
func (s *CompanyService) ChangeStatus(ctx context.Context, companyID uuid.UUID, status db_models.CompanyStatus) ([]uuid.UUID, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if company == nil {
		return nil, utils.ErrCompanyNotFound
	}

	if company.Status == status {
		return []uuid.UUID{}, nil
	}
	if company.Status == db_models.CompanyCancelled {
		return nil, fmt.Errorf("%w: company already cancelled", utils.ErrInvalidStatus)
	}

	if status != db_models.CompanyCancelled {
		if err := s.companies.UpdateStatus(ctx, companyID, status); err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		return []uuid.UUID{}, nil
	}

	affected, err := s.companies.CancelWithCascade(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: cancel cascade: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info("company cancelled",
		zap.String("company_id", companyID.String()),
		zap.Int("subscribers_removed", len(affected)))
	return affected, nil
}
