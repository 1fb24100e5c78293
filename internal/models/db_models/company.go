package db_models

import "time"

type CompanyStatus string

const (
	CompanyActive    CompanyStatus = "active"
	CompanySuspended CompanyStatus = "suspended"
	CompanyCancelled CompanyStatus = "cancelled"
)

// Company groups corporate subscribers. Cancelling a company cascades a
// soft delete onto every subscriber still linked to it; suspension is
// billing-only and touches nothing downstream.
type Company struct {
	BaseModel
	Name   string        `gorm:"size:255;not null"`
	Status CompanyStatus `gorm:"size:16;index;default:'active'"`

	ContractedQuantity int
	PricePerSubscriber float64
	BillingDay         int
	NextBillingDate    time.Time
}
