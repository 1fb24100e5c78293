package repositories

import (
	"context"
	"errors"
	"time"

	"assinazap/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ICompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Company, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.CompanyStatus) error
	CancelWithCascade(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) ICompanyRepository {
	return &CompanyRepository{db: db}
}

func (r CompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Company, error) {
	var company db_models.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r CompanyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.CompanyStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Company{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CancelWithCascade cancels the company and soft-deletes every corporate
// subscriber still linked to it, in one transaction. Subscribers already
// inativo keep their original removed_at; everyone else flips to inativo
// with removed_at stamped now. Either the whole cascade lands or none of
// it does.
func (r CompanyRepository) CancelWithCascade(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var affected []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&db_models.Company{}).
			Where("id = ?", id).
			Update("status", db_models.CompanyCancelled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var ids []uuid.UUID
		if err := tx.Model(&db_models.Subscriber{}).
			Where("company_id = ? AND subscriber_type = ? AND status <> ?",
				id, db_models.SubscriberCorporate, db_models.SubscriberInativo).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) > 0 {
			now := time.Now()
			if err := tx.Model(&db_models.Subscriber{}).
				Where("id IN ?", ids).
				Updates(map[string]interface{}{
					"status":     db_models.SubscriberInativo,
					"removed_at": now,
				}).Error; err != nil {
				return err
			}
		}

		affected = ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}
