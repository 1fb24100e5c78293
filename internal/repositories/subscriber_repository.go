package repositories

import (
	"context"
	"errors"

	"assinazap/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ISubscriberRepository interface {
	FindByCPF(ctx context.Context, cpf string) (*db_models.Subscriber, error)
	FindByProviderIdentity(ctx context.Context, provider, email, customerID string) (*db_models.Subscriber, error)
	FindByCardID(ctx context.Context, cardID string) (*db_models.Subscriber, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Subscriber, error)
	Create(ctx context.Context, subscriber *db_models.Subscriber) error
	Update(ctx context.Context, subscriber *db_models.Subscriber) error
}

type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) ISubscriberRepository {
	return &SubscriberRepository{db: db}
}

// FindByCPF matches only non-removed rows: cpf is the natural key among
// live subscribers, removed corporate rows keep theirs for audit.
func (r SubscriberRepository) FindByCPF(ctx context.Context, cpf string) (*db_models.Subscriber, error) {
	var subscriber db_models.Subscriber
	err := r.db.WithContext(ctx).
		Where("cpf = ? AND removed_at IS NULL", cpf).
		First(&subscriber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

// FindByProviderIdentity is the fallback match for provider-only
// subscribers without a cpf on record.
func (r SubscriberRepository) FindByProviderIdentity(ctx context.Context, provider, email, customerID string) (*db_models.Subscriber, error) {
	var subscriber db_models.Subscriber
	query := r.db.WithContext(ctx).Where("removed_at IS NULL")
	if email != "" {
		query = query.Where("provider = ? AND (email = ? OR provider_customer_id = ?)", provider, email, customerID)
	} else {
		query = query.Where("provider = ? AND provider_customer_id = ?", provider, customerID)
	}

	err := query.First(&subscriber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

func (r SubscriberRepository) FindByCardID(ctx context.Context, cardID string) (*db_models.Subscriber, error) {
	var subscriber db_models.Subscriber
	err := r.db.WithContext(ctx).First(&subscriber, "card_id = ?", cardID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

func (r SubscriberRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Subscriber, error) {
	var subscriber db_models.Subscriber
	err := r.db.WithContext(ctx).First(&subscriber, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

func (r SubscriberRepository) Create(ctx context.Context, subscriber *db_models.Subscriber) error {
	return r.db.WithContext(ctx).Create(subscriber).Error
}

// Update saves the full row keyed by id. Every write is a replace of the
// mutable fields, never an increment, so webhook replays are harmless.
func (r SubscriberRepository) Update(ctx context.Context, subscriber *db_models.Subscriber) error {
	return r.db.WithContext(ctx).Save(subscriber).Error
}
