package request_models

type ChangeCompanyStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended cancelled"`
}
