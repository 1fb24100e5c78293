package services

import (
	"context"
	"errors"
	"fmt"

	"assinazap/internal/models/db_models"
	"assinazap/internal/models/request_models"
	"assinazap/internal/repositories"
	"assinazap/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ICadenceMessageService interface {
	ListActive(ctx context.Context) ([]db_models.CadenceMessage, error)
	ListAll(ctx context.Context) ([]db_models.CadenceMessage, error)
	Create(ctx context.Context, request request_models.CreateCadenceMessageRequest) (*db_models.CadenceMessage, error)
	Update(ctx context.Context, id uuid.UUID, request request_models.UpdateCadenceMessageRequest) (*db_models.CadenceMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, request request_models.ReorderCadenceMessagesRequest) ([]db_models.CadenceMessage, error)
}

type CadenceMessageService struct {
	messages repositories.ICadenceMessageRepository
}

func NewCadenceMessageService(messages repositories.ICadenceMessageRepository) ICadenceMessageService {
	return &CadenceMessageService{messages: messages}
}

func (s *CadenceMessageService) ListActive(ctx context.Context) ([]db_models.CadenceMessage, error) {
	messages, err := s.messages.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return messages, nil
}

func (s *CadenceMessageService) ListAll(ctx context.Context) ([]db_models.CadenceMessage, error) {
	messages, err := s.messages.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return messages, nil
}

// Create appends the new step at the end of the sequence.
func (s *CadenceMessageService) Create(ctx context.Context, request request_models.CreateCadenceMessageRequest) (*db_models.CadenceMessage, error) {
	order, err := s.messages.NextOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	message := db_models.CadenceMessage{
		Type:        db_models.MessageType(request.Type),
		Content:     request.Content,
		OrderNumber: order,
		IsActive:    true,
	}
	if err := s.messages.Create(ctx, &message); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return &message, nil
}

// Update applies content changes, then activation changes. Deactivating a
// step pulls it out of the sequence and closes the gap; reactivating
// appends it at the end.
func (s *CadenceMessageService) Update(ctx context.Context, id uuid.UUID, request request_models.UpdateCadenceMessageRequest) (*db_models.CadenceMessage, error) {
	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if message == nil {
		return nil, utils.ErrMessageNotFound
	}

	if request.Type != nil {
		message.Type = db_models.MessageType(*request.Type)
	}
	if request.Content != nil {
		message.Content = *request.Content
	}
	if err := s.messages.Update(ctx, message); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if request.IsActive != nil && *request.IsActive != message.IsActive {
		if err := s.messages.SetActive(ctx, id, *request.IsActive); err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		message, err = s.messages.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
	}
	return message, nil
}

// Delete removes a step and renumbers everything above it down by one so
// the sequence stays contiguous from 1.
func (s *CadenceMessageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.messages.DeleteAndRenumber(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrMessageNotFound
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

// Reorder renumbers the active set 1..N following the requested order. The
// request must cover every active message exactly once; a partial list
// would leave duplicate order numbers behind.
func (s *CadenceMessageService) Reorder(ctx context.Context, request request_models.ReorderCadenceMessagesRequest) ([]db_models.CadenceMessage, error) {
	active, err := s.messages.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	known := make(map[uuid.UUID]bool, len(active))
	for _, message := range active {
		known[message.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(request.IDs))
	for _, id := range request.IDs {
		if !known[id] {
			return nil, utils.ErrMessageNotFound
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %s", utils.ErrInvalidOrdering, id)
		}
		seen[id] = true
	}
	if len(request.IDs) != len(active) {
		return nil, fmt.Errorf("%w: got %d ids for %d active messages",
			utils.ErrInvalidOrdering, len(request.IDs), len(active))
	}

	if err := s.messages.Reorder(ctx, request.IDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrMessageNotFound
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return s.ListAll(ctx)
}
