package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/murithi/rentledger/internal/domain"
	customError "github.com/murithi/rentledger/pkg/errors"
	"github.com/murithi/rentledger/tests/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type registryMocks struct {
	houseRepo     *mocks.MockHouseRepository
	tenantRepo    *mocks.MockTenantRepository
	occupancyRepo *mocks.MockOccupancyRepository
}

func newTestRegistryService() (*RegistryService, *registryMocks) {
	m := &registryMocks{
		houseRepo:     new(mocks.MockHouseRepository),
		tenantRepo:    new(mocks.MockTenantRepository),
		occupancyRepo: new(mocks.MockOccupancyRepository),
	}

	svc := &RegistryService{
		houseRepo:     m.houseRepo,
		tenantRepo:    m.tenantRepo,
		occupancyRepo: m.occupancyRepo,
		now:           func() time.Time { return testNow },
	}

	return svc, m
}

func TestCreateHouse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, m := newTestRegistryService()

		m.houseRepo.On("GetByNumber", mock.Anything, 7).Return(nil, sql.ErrNoRows)
		m.houseRepo.On("Create", mock.Anything, mock.MatchedBy(func(h *domain.House) bool {
			return h.Number == 7 && h.IsActive && h.MonthlyRent.Equal(decimal.NewFromInt(15000))
		})).Return(nil)

		house, err := svc.CreateHouse(context.Background(), &domain.CreateHouseRequest{
			Number:      7,
			Type:        domain.HouseTypeBedsitter,
			MonthlyRent: decimal.NewFromInt(15000),
		})

		require.NoError(t, err)
		assert.Equal(t, 7, house.Number)
		assert.Equal(t, testNow, house.CreatedAt)
		m.houseRepo.AssertExpectations(t)
	})

	t.Run("duplicate number", func(t *testing.T) {
		svc, m := newTestRegistryService()

		m.houseRepo.On("GetByNumber", mock.Anything, 7).Return(testHouse(15000), nil)

		_, err := svc.CreateHouse(context.Background(), &domain.CreateHouseRequest{
			Number:      7,
			Type:        domain.HouseTypeBedsitter,
			MonthlyRent: decimal.NewFromInt(15000),
		})

		require.Error(t, err)
		assert.Equal(t, customError.ErrCodeConflict, customError.CodeOf(err))
		m.houseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("non positive rent", func(t *testing.T) {
		svc, m := newTestRegistryService()

		_, err := svc.CreateHouse(context.Background(), &domain.CreateHouseRequest{
			Number:      7,
			Type:        domain.HouseTypeSingle,
			MonthlyRent: decimal.Zero,
		})

		require.Error(t, err)
		assert.Equal(t, customError.ErrCodeValidation, customError.CodeOf(err))
		m.houseRepo.AssertNotCalled(t, "GetByNumber", mock.Anything, mock.Anything)
	})
}

func TestListTenants(t *testing.T) {
	svc, m := newTestRegistryService()

	house := testHouse(15000)
	assignedTenant := testTenant()
	unassignedTenant := testTenant()
	unassignedTenant.FullName = "Otieno Odhiambo"

	start := testNow.AddDate(0, -3, 0)

	m.tenantRepo.On("List", mock.Anything).
		Return([]*domain.Tenant{assignedTenant, unassignedTenant}, nil)
	m.occupancyRepo.On("ListAll", mock.Anything).
		Return([]*domain.Occupancy{
			{ID: uuid.New(), HouseID: house.ID, TenantID: assignedTenant.ID, Status: domain.OccupancyStatusActive, StartDate: start},
		}, nil)
	m.houseRepo.On("GetByID", mock.Anything, house.ID).Return(house, nil)

	listings, err := svc.ListTenants(context.Background())

	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, assignedTenant.ID, listings[0].ID)
	assert.Equal(t, domain.OccupancyStatusActive, listings[0].Status)
	require.NotNil(t, listings[0].HouseNumber)
	assert.Equal(t, house.Number, *listings[0].HouseNumber)

	assert.Equal(t, unassignedTenant.ID, listings[1].ID)
	assert.Equal(t, domain.TenantStatusUnassigned, listings[1].Status)
	assert.Nil(t, listings[1].HouseNumber)
}

func TestAssignTenant(t *testing.T) {
	house := testHouse(15000)
	tenant := testTenant()

	t.Run("success", func(t *testing.T) {
		svc, m := newTestRegistryService()

		m.houseRepo.On("GetByID", mock.Anything, house.ID).Return(house, nil)
		m.tenantRepo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)
		m.occupancyRepo.On("GetActive", mock.Anything, house.ID, tenant.ID).Return(nil, sql.ErrNoRows)
		m.occupancyRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Occupancy) bool {
			return o.HouseID == house.ID && o.TenantID == tenant.ID && o.Status == domain.OccupancyStatusActive
		})).Return(nil)

		occupancy, err := svc.AssignTenant(context.Background(), house.ID, tenant.ID)

		require.NoError(t, err)
		assert.Equal(t, testNow, occupancy.StartDate)
		m.occupancyRepo.AssertExpectations(t)
	})

	t.Run("already assigned", func(t *testing.T) {
		svc, m := newTestRegistryService()

		active := &domain.Occupancy{ID: uuid.New(), HouseID: house.ID, TenantID: tenant.ID, Status: domain.OccupancyStatusActive}

		m.houseRepo.On("GetByID", mock.Anything, house.ID).Return(house, nil)
		m.tenantRepo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)
		m.occupancyRepo.On("GetActive", mock.Anything, house.ID, tenant.ID).Return(active, nil)

		_, err := svc.AssignTenant(context.Background(), house.ID, tenant.ID)

		require.Error(t, err)
		assert.Equal(t, customError.ErrCodeConflict, customError.CodeOf(err))
		assert.ErrorIs(t, err, customError.ErrTenantAlreadyAssigned)
		m.occupancyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown house", func(t *testing.T) {
		svc, m := newTestRegistryService()

		m.houseRepo.On("GetByID", mock.Anything, house.ID).Return(nil, sql.ErrNoRows)

		_, err := svc.AssignTenant(context.Background(), house.ID, tenant.ID)

		require.Error(t, err)
		assert.Equal(t, customError.ErrCodeNotFound, customError.CodeOf(err))
	})
}

func TestRemoveTenant(t *testing.T) {
	svc, m := newTestRegistryService()

	tenant := testTenant()

	m.tenantRepo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)
	m.tenantRepo.On("Deactivate", mock.Anything, tenant.ID).Return(nil)
	m.occupancyRepo.On("EndAllForTenant", mock.Anything, tenant.ID, testNow).Return(nil)

	err := svc.RemoveTenant(context.Background(), tenant.ID)

	require.NoError(t, err)
	m.tenantRepo.AssertExpectations(t)
	m.occupancyRepo.AssertExpectations(t)
}

func TestEndAssignment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, m := newTestRegistryService()

		house := testHouse(15000)
		tenant := testTenant()
		active := &domain.Occupancy{ID: uuid.New(), HouseID: house.ID, TenantID: tenant.ID, Status: domain.OccupancyStatusActive}

		m.occupancyRepo.On("GetActive", mock.Anything, house.ID, tenant.ID).Return(active, nil)
		m.occupancyRepo.On("End", mock.Anything, active.ID, testNow).Return(nil)

		err := svc.EndAssignment(context.Background(), house.ID, tenant.ID)

		require.NoError(t, err)
		m.occupancyRepo.AssertExpectations(t)
	})

	t.Run("no active assignment", func(t *testing.T) {
		svc, m := newTestRegistryService()

		houseID, tenantID := uuid.New(), uuid.New()
		m.occupancyRepo.On("GetActive", mock.Anything, houseID, tenantID).Return(nil, sql.ErrNoRows)

		err := svc.EndAssignment(context.Background(), houseID, tenantID)

		require.Error(t, err)
		assert.Equal(t, customError.ErrCodeNotFound, customError.CodeOf(err))
	})
}
