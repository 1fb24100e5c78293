package repositories

import (
	"context"
	"errors"

	"assinazap/internal/models/db_models"

	"gorm.io/gorm"
)

type IWhatsAppConfigRepository interface {
	Get(ctx context.Context) (*db_models.WhatsAppConfig, error)
	Update(ctx context.Context, config *db_models.WhatsAppConfig) error
}

type WhatsAppConfigRepository struct {
	db *gorm.DB
}

func NewWhatsAppConfigRepository(db *gorm.DB) IWhatsAppConfigRepository {
	return &WhatsAppConfigRepository{db: db}
}

// Get returns the single config row, creating the defaults on first use:
// 2s delay between steps and the cadence disabled until an operator turns
// it on.
func (r WhatsAppConfigRepository) Get(ctx context.Context) (*db_models.WhatsAppConfig, error) {
	var config db_models.WhatsAppConfig
	err := r.db.WithContext(ctx).First(&config).Error
	if err == nil {
		return &config, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	config = db_models.WhatsAppConfig{
		MessageDelayMs: 2000,
		CadenceEnabled: false,
	}
	if err := r.db.WithContext(ctx).Create(&config).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

func (r WhatsAppConfigRepository) Update(ctx context.Context, config *db_models.WhatsAppConfig) error {
	return r.db.WithContext(ctx).Save(config).Error
}
