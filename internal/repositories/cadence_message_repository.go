package repositories

import (
	"context"
	"errors"

	"assinazap/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ICadenceMessageRepository interface {
	ListActive(ctx context.Context) ([]db_models.CadenceMessage, error)
	ListAll(ctx context.Context) ([]db_models.CadenceMessage, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.CadenceMessage, error)
	Create(ctx context.Context, message *db_models.CadenceMessage) error
	Update(ctx context.Context, message *db_models.CadenceMessage) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteAndRenumber(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) error
	NextOrderNumber(ctx context.Context) (int, error)
}

type CadenceMessageRepository struct {
	db *gorm.DB
}

func NewCadenceMessageRepository(db *gorm.DB) ICadenceMessageRepository {
	return &CadenceMessageRepository{db: db}
}

func (r CadenceMessageRepository) ListActive(ctx context.Context) ([]db_models.CadenceMessage, error) {
	var messages []db_models.CadenceMessage
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("order_number asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r CadenceMessageRepository) ListAll(ctx context.Context) ([]db_models.CadenceMessage, error) {
	var messages []db_models.CadenceMessage
	err := r.db.WithContext(ctx).Order("order_number asc").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r CadenceMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.CadenceMessage, error) {
	var message db_models.CadenceMessage
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r CadenceMessageRepository) Create(ctx context.Context, message *db_models.CadenceMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r CadenceMessageRepository) Update(ctx context.Context, message *db_models.CadenceMessage) error {
	return r.db.WithContext(ctx).Save(message).Error
}

// SetActive moves a step in or out of the active sequence. Deactivation
// parks the row at order 0 and closes the gap it leaves; reactivation
// appends at the end of the active sequence.
func (r CadenceMessageRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var message db_models.CadenceMessage
		if err := tx.First(&message, "id = ?", id).Error; err != nil {
			return err
		}
		if message.IsActive == active {
			return nil
		}

		if active {
			var max int
			err := tx.Model(&db_models.CadenceMessage{}).
				Where("is_active = ?", true).
				Select("COALESCE(MAX(order_number), 0)").
				Scan(&max).Error
			if err != nil {
				return err
			}
			return tx.Model(&db_models.CadenceMessage{}).
				Where("id = ?", id).
				Updates(map[string]interface{}{"is_active": true, "order_number": max + 1}).Error
		}

		err := tx.Model(&db_models.CadenceMessage{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"is_active": false, "order_number": 0}).Error
		if err != nil {
			return err
		}
		return tx.Model(&db_models.CadenceMessage{}).
			Where("is_active = ? AND order_number > ?", true, message.OrderNumber).
			UpdateColumn("order_number", gorm.Expr("order_number - 1")).Error
	})
}

// DeleteAndRenumber removes one step and closes the gap: every active
// message with a higher order number moves down by one, keeping the
// active sequence contiguous from 1. Deleting an inactive row moves
// nothing.
func (r CadenceMessageRepository) DeleteAndRenumber(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var message db_models.CadenceMessage
		if err := tx.First(&message, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&db_models.CadenceMessage{}, "id = ?", id).Error; err != nil {
			return err
		}
		if !message.IsActive {
			return nil
		}
		return tx.Model(&db_models.CadenceMessage{}).
			Where("is_active = ? AND order_number > ?", true, message.OrderNumber).
			UpdateColumn("order_number", gorm.Expr("order_number - 1")).Error
	})
}

// Reorder renumbers the whole set to 1..N following the given id order.
func (r CadenceMessageRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range ids {
			result := tx.Model(&db_models.CadenceMessage{}).
				Where("id = ?", id).
				UpdateColumn("order_number", position+1)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// NextOrderNumber looks at active rows only: parked inactive steps never
// widen the sequence.
func (r CadenceMessageRepository) NextOrderNumber(ctx context.Context) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&db_models.CadenceMessage{}).
		Where("is_active = ?", true).
		Select("COALESCE(MAX(order_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
