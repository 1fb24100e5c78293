package request_models

import "github.com/google/uuid"

type CreateCadenceMessageRequest struct {
	Type    string `json:"type" binding:"required,oneof=text image video"`
	Content string `json:"content" binding:"required"`
}

type UpdateCadenceMessageRequest struct {
	Type     *string `json:"type" binding:"omitempty,oneof=text image video"`
	Content  *string `json:"content"`
	IsActive *bool   `json:"is_active"`
}

// ReorderCadenceMessagesRequest lists every active message id in its new
// position; the sequence is renumbered 1..N in this order.
type ReorderCadenceMessagesRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}
