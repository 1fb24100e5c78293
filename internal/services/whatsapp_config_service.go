package services

import (
	"context"
	"fmt"

	"assinazap/internal/models/db_models"
	"assinazap/internal/models/request_models"
	"assinazap/internal/repositories"
	"assinazap/pkg/utils"
)

type IWhatsAppConfigService interface {
	Get(ctx context.Context) (*db_models.WhatsAppConfig, error)
	Update(ctx context.Context, request request_models.UpdateWhatsAppConfigRequest) (*db_models.WhatsAppConfig, error)
}

type WhatsAppConfigService struct {
	config repositories.IWhatsAppConfigRepository
}

func NewWhatsAppConfigService(config repositories.IWhatsAppConfigRepository) IWhatsAppConfigService {
	return &WhatsAppConfigService{config: config}
}

func (s *WhatsAppConfigService) Get(ctx context.Context) (*db_models.WhatsAppConfig, error) {
	config, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return config, nil
}

// Update applies partial changes. The admin phone is normalized to a JID
// on the way in so dispatch-time escalation never has to validate it.
func (s *WhatsAppConfigService) Update(ctx context.Context, request request_models.UpdateWhatsAppConfigRequest) (*db_models.WhatsAppConfig, error) {
	config, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if request.AdminPhone != nil {
		if *request.AdminPhone == "" {
			config.AdminPhone = nil
		} else {
			jid, err := utils.NormalizeWhatsAppPhone(*request.AdminPhone)
			if err != nil {
				return nil, err
			}
			config.AdminPhone = &jid
		}
	}
	if request.MessageDelayMs != nil {
		config.MessageDelayMs = *request.MessageDelayMs
	}
	if request.CadenceEnabled != nil {
		config.CadenceEnabled = *request.CadenceEnabled
	}

	if err := s.config.Update(ctx, config); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return config, nil
}
