package db_models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriberStatus string

const (
	SubscriberAtivo   SubscriberStatus = "ativo"
	SubscriberInativo SubscriberStatus = "inativo"
	SubscriberVencido SubscriberStatus = "vencido"
)

type SubscriberType string

const (
	SubscriberIndividual SubscriberType = "individual"
	SubscriberCorporate  SubscriberType = "corporate"
)

// Subscriber is the canonical billing state for one customer. CPF, when
// present, is the cross-provider natural key: at most one non-removed row
// per CPF. CardID is the public lookup token, unique and immutable once
// issued.
type Subscriber struct {
	BaseModel
	Name  string  `gorm:"size:255"`
	Email string  `gorm:"size:255;index"`
	CPF   *string `gorm:"column:cpf;size:14;index"`
	Phone string  `gorm:"size:32"`

	Status   SubscriberStatus `gorm:"size:16;index;default:'ativo'"`
	PlanType string           `gorm:"size:64"`
	Value    float64

	StartDate   time.Time
	NextDueDate time.Time `gorm:"index"`

	CardID string `gorm:"size:64;uniqueIndex"`

	SubscriberType SubscriberType `gorm:"size:16;index;default:'individual'"`
	CompanyID      *uuid.UUID     `gorm:"index"`

	// External billing references, one pair per provider.
	Provider               string `gorm:"size:16;index"`
	ProviderCustomerID     string `gorm:"size:64;index"`
	ProviderSubscriptionID string `gorm:"size:64;index"`

	// Soft-delete marker. Rows are never hard-deleted.
	RemovedAt *time.Time
}
