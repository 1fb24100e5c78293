package request_models

type UpdateWhatsAppConfigRequest struct {
	AdminPhone     *string `json:"admin_phone"`
	MessageDelayMs *int    `json:"message_delay_ms" binding:"omitempty,gte=0"`
	CadenceEnabled *bool   `json:"cadence_enabled"`
}
