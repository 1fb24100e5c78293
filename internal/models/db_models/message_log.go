package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MessageLogStatus string

const (
	MessageLogSuccess MessageLogStatus = "success"
	MessageLogFailed  MessageLogStatus = "failed"
	MessageLogPending MessageLogStatus = "pending"
)

// MessageLog records one delivery attempt. Rows are append-only: exactly
// one per (subscriber, cadence step) attempt, never mutated afterwards.
// Subscriber fields are denormalized at send time.
type MessageLog struct {
	BaseModel
	SubscriberID    uuid.UUID `gorm:"index"`
	SubscriberName  string    `gorm:"size:255"`
	SubscriberPhone string    `gorm:"size:64"`

	MessageID      uuid.UUID   `gorm:"index"`
	MessageType    MessageType `gorm:"size:16"`
	MessageContent string      `gorm:"type:text"`

	Status       MessageLogStatus `gorm:"size:16;index"`
	ErrorMessage *string          `gorm:"type:text"`

	// Raw provider response, stored verbatim.
	APIResponse datatypes.JSON `gorm:"type:jsonb"`
}
