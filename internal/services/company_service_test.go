package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"assinazap/internal/infra"
	"assinazap/internal/models/db_models"
	"assinazap/internal/repositories"
	"assinazap/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type companyFixture struct {
	db      *gorm.DB
	service ICompanyService
}

func newCompanyFixture(t *testing.T) *companyFixture {
	t.Helper()
	db, err := infra.NewTestDB()
	require.NoError(t, err)
	service := NewCompanyService(repositories.NewCompanyRepository(db), zap.NewNop())
	return &companyFixture{db: db, service: service}
}

func (f *companyFixture) seedCompany(t *testing.T, status db_models.CompanyStatus) *db_models.Company {
	t.Helper()
	company := db_models.Company{
		Name:               "Empresa Exemplo",
		Status:             status,
		ContractedQuantity: 10,
		PricePerSubscriber: 29.9,
	}
	require.NoError(t, f.db.Create(&company).Error)
	return &company
}

func (f *companyFixture) seedCorporateSubscriber(t *testing.T, companyID uuid.UUID, status db_models.SubscriberStatus, removedAt *time.Time) *db_models.Subscriber {
	t.Helper()
	subscriber := db_models.Subscriber{
		Name:           "Colaborador",
		Status:         status,
		CardID:         uuid.NewString(),
		SubscriberType: db_models.SubscriberCorporate,
		CompanyID:      &companyID,
		RemovedAt:      removedAt,
	}
	require.NoError(t, f.db.Create(&subscriber).Error)
	return &subscriber
}

func TestChangeStatusCancelCascades(t *testing.T) {
	fixture := newCompanyFixture(t)
	company := fixture.seedCompany(t, db_models.CompanyActive)

	for i := 0; i < 5; i++ {
		fixture.seedCorporateSubscriber(t, company.ID, db_models.SubscriberAtivo, nil)
	}
	earlier := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	alreadyGoneA := fixture.seedCorporateSubscriber(t, company.ID, db_models.SubscriberInativo, &earlier)
	alreadyGoneB := fixture.seedCorporateSubscriber(t, company.ID, db_models.SubscriberInativo, &earlier)

	affected, err := fixture.service.ChangeStatus(context.Background(), company.ID, db_models.CompanyCancelled)
	require.NoError(t, err)
	assert.Len(t, affected, 5)

	var reloaded db_models.Company
	require.NoError(t, fixture.db.First(&reloaded, "id = ?", company.ID).Error)
	assert.Equal(t, db_models.CompanyCancelled, reloaded.Status)

	var subscribers []db_models.Subscriber
	require.NoError(t, fixture.db.Find(&subscribers, "company_id = ?", company.ID).Error)
	require.Len(t, subscribers, 7)
	for _, subscriber := range subscribers {
		assert.Equal(t, db_models.SubscriberInativo, subscriber.Status)
		require.NotNil(t, subscriber.RemovedAt)
		if subscriber.ID == alreadyGoneA.ID || subscriber.ID == alreadyGoneB.ID {
			assert.Equal(t, earlier.Unix(), subscriber.RemovedAt.Unix())
		} else {
			assert.NotEqual(t, earlier.Unix(), subscriber.RemovedAt.Unix())
		}
	}
}

func TestChangeStatusSuspendLeavesSubscribers(t *testing.T) {
	fixture := newCompanyFixture(t)
	company := fixture.seedCompany(t, db_models.CompanyActive)
	fixture.seedCorporateSubscriber(t, company.ID, db_models.SubscriberAtivo, nil)

	affected, err := fixture.service.ChangeStatus(context.Background(), company.ID, db_models.CompanySuspended)
	require.NoError(t, err)
	assert.Empty(t, affected)

	var reloaded db_models.Company
	require.NoError(t, fixture.db.First(&reloaded, "id = ?", company.ID).Error)
	assert.Equal(t, db_models.CompanySuspended, reloaded.Status)

	var subscriber db_models.Subscriber
	require.NoError(t, fixture.db.First(&subscriber, "company_id = ?", company.ID).Error)
	assert.Equal(t, db_models.SubscriberAtivo, subscriber.Status)
	assert.Nil(t, subscriber.RemovedAt)
}

func TestChangeStatusSameStatusIsNoOp(t *testing.T) {
	fixture := newCompanyFixture(t)
	company := fixture.seedCompany(t, db_models.CompanyActive)

	affected, err := fixture.service.ChangeStatus(context.Background(), company.ID, db_models.CompanyActive)
	require.NoError(t, err)
	assert.Empty(t, affected)
}

func TestChangeStatusCancelledIsTerminal(t *testing.T) {
	fixture := newCompanyFixture(t)
	company := fixture.seedCompany(t, db_models.CompanyCancelled)

	_, err := fixture.service.ChangeStatus(context.Background(), company.ID, db_models.CompanyActive)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInvalidStatus))
}

func TestChangeStatusUnknownCompany(t *testing.T) {
	fixture := newCompanyFixture(t)

	_, err := fixture.service.ChangeStatus(context.Background(), uuid.New(), db_models.CompanyCancelled)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrCompanyNotFound))
}
