package repositories

import (
	"context"

	"assinazap/internal/models/db_models"

	"gorm.io/gorm"
)

type IWebhookLogRepository interface {
	Create(ctx context.Context, log *db_models.WebhookLog) error
	ListByProvider(ctx context.Context, provider string, limit int) ([]db_models.WebhookLog, error)
}

type WebhookLogRepository struct {
	db *gorm.DB
}

func NewWebhookLogRepository(db *gorm.DB) IWebhookLogRepository {
	return &WebhookLogRepository{db: db}
}

func (r WebhookLogRepository) Create(ctx context.Context, log *db_models.WebhookLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r WebhookLogRepository) ListByProvider(ctx context.Context, provider string, limit int) ([]db_models.WebhookLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []db_models.WebhookLog
	err := r.db.WithContext(ctx).
		Where("provider = ?", provider).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
