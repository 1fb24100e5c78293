package repositories

import (
	"context"

	"assinazap/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IMessageLogRepository interface {
	Create(ctx context.Context, log *db_models.MessageLog) error
	ListBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]db_models.MessageLog, error)
	ListRecent(ctx context.Context, limit int) ([]db_models.MessageLog, error)
}

type MessageLogRepository struct {
	db *gorm.DB
}

func NewMessageLogRepository(db *gorm.DB) IMessageLogRepository {
	return &MessageLogRepository{db: db}
}

func (r MessageLogRepository) Create(ctx context.Context, log *db_models.MessageLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r MessageLogRepository) ListBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]db_models.MessageLog, error) {
	var logs []db_models.MessageLog
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Order("created_at desc").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r MessageLogRepository) ListRecent(ctx context.Context, limit int) ([]db_models.MessageLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []db_models.MessageLog
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
