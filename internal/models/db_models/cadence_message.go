package db_models

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeVideo MessageType = "video"
)

// CadenceMessage is one step of the onboarding sequence. Active messages
// hold contiguous order numbers from 1..N; inactive ones sit outside the
// sequence at order 0. Creates, deletes, activation changes and reorders
// all renumber to keep that invariant. No gorm default on IsActive: the
// stored value is always the one the writer set.
type CadenceMessage struct {
	BaseModel
	Type        MessageType `gorm:"size:16;not null"`
	Content     string      `gorm:"type:text;not null"`
	OrderNumber int         `gorm:"index;not null"`
	IsActive    bool        `gorm:"index"`
}
