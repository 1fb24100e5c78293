package db_models

// WhatsAppConfig is the single-row process configuration for the cadence.
// It is loaded at the start of every dispatch run and injected into the
// dispatcher; nothing reads it ambiently.
type WhatsAppConfig struct {
	BaseModel
	AdminPhone     *string `gorm:"size:64"`
	MessageDelayMs int     `gorm:"default:2000"`
	CadenceEnabled bool    `gorm:"default:false"`
}
