package response_models

import "github.com/google/uuid"

type ChangeCompanyStatusResponse struct {
	Status              string      `json:"status"`
	AffectedSubscribers []uuid.UUID `json:"affected_subscribers"`
}
