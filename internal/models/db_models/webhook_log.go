package db_models

import "gorm.io/datatypes"

type WebhookLogStatus string

const (
	WebhookProcessed WebhookLogStatus = "processed"
	WebhookIgnored   WebhookLogStatus = "ignored"
	WebhookFailed    WebhookLogStatus = "failed"
)

// WebhookLog is the per-provider audit trail: one row per delivery
// attempt, written before the HTTP response regardless of outcome. This
// is the only place webhook processing failures are surfaced.
type WebhookLog struct {
	BaseModel
	Provider  string `gorm:"size:16;index"`
	EventType string `gorm:"size:64;index"`

	Payload datatypes.JSON `gorm:"type:jsonb"`

	Status       WebhookLogStatus `gorm:"size:16;index"`
	ErrorMessage *string          `gorm:"type:text"`
}
