package mocks

import (
	"context"
	"time"

	"github.com/murithi/rentledger/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// StubTxManager runs the function directly, without a database. The fn
// receives a nil ExtContext; repository mocks ignore it anyway.
type StubTxManager struct{}

func (s *StubTxManager) WithinTx(ctx context.Context, fn func(q sqlx.ExtContext) error) error {
	return fn(nil)
}

func (s *StubTxManager) WithinReadTx(ctx context.Context, fn func(q sqlx.ExtContext) error) error {
	return fn(nil)
}

type MockHouseRepository struct {
	mock.Mock
}

func (m *MockHouseRepository) Create(ctx context.Context, house *domain.House) error {
	args := m.Called(ctx, house)
	return args.Error(0)
}

func (m *MockHouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.House, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.House), args.Error(1)
}

func (m *MockHouseRepository) GetByNumber(ctx context.Context, number int) (*domain.House, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.House), args.Error(1)
}

func (m *MockHouseRepository) List(ctx context.Context) ([]*domain.House, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.House), args.Error(1)
}

func (m *MockHouseRepository) ListActive(ctx context.Context) ([]*domain.House, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.House), args.Error(1)
}

func (m *MockHouseRepository) TotalReceived(ctx context.Context, houseID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, houseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) List(ctx context.Context) ([]*domain.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOccupancyRepository struct {
	mock.Mock
}

func (m *MockOccupancyRepository) Create(ctx context.Context, occupancy *domain.Occupancy) error {
	args := m.Called(ctx, occupancy)
	return args.Error(0)
}

func (m *MockOccupancyRepository) GetActive(ctx context.Context, houseID, tenantID uuid.UUID) (*domain.Occupancy, error) {
	args := m.Called(ctx, houseID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Occupancy), args.Error(1)
}

func (m *MockOccupancyRepository) HasEverOccupied(ctx context.Context, houseID, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, houseID, tenantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOccupancyRepository) ListActiveByHouse(ctx context.Context, houseID uuid.UUID) ([]*domain.Occupancy, error) {
	args := m.Called(ctx, houseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Occupancy), args.Error(1)
}

func (m *MockOccupancyRepository) ListAll(ctx context.Context) ([]*domain.Occupancy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Occupancy), args.Error(1)
}

func (m *MockOccupancyRepository) End(ctx context.Context, occupancyID uuid.UUID, endDate time.Time) error {
	args := m.Called(ctx, occupancyID, endDate)
	return args.Error(0)
}

func (m *MockOccupancyRepository) EndAllForTenant(ctx context.Context, tenantID uuid.UUID, endDate time.Time) error {
	args := m.Called(ctx, tenantID, endDate)
	return args.Error(0)
}

func (m *MockOccupancyRepository) FirstStartForHouse(ctx context.Context, houseID uuid.UUID) (*time.Time, error) {
	args := m.Called(ctx, houseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) GetOrCreate(ctx context.Context, q sqlx.ExtContext, invoice *domain.Invoice) (*domain.Invoice, bool, error) {
	args := m.Called(ctx, q, invoice)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Invoice), args.Bool(1), args.Error(2)
}

func (m *MockInvoiceRepository) ApplyPayment(ctx context.Context, q sqlx.ExtContext, invoiceID uuid.UUID, amount decimal.Decimal) (*domain.Invoice, error) {
	args := m.Called(ctx, q, invoiceID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByHouseYear(ctx context.Context, q sqlx.ExtContext, houseID uuid.UUID, year int) ([]*domain.Invoice, error) {
	args := m.Called(ctx, q, houseID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) MonthTotals(ctx context.Context, year, month int) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, year, month)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockInvoiceRepository) ListUnpaidDueBefore(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, q sqlx.ExtContext, payment *domain.Payment) error {
	args := m.Called(ctx, q, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetRecord(ctx context.Context, id uuid.UUID) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) ListRecords(ctx context.Context, limit int) ([]*domain.PaymentRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) DetailsByInvoices(ctx context.Context, q sqlx.ExtContext, invoiceIDs []uuid.UUID) (map[uuid.UUID][]*domain.PaymentDetail, error) {
	args := m.Called(ctx, q, invoiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*domain.PaymentDetail), args.Error(1)
}

func (m *MockPaymentRepository) TopHouses(ctx context.Context, from, to time.Time, limit int) ([]*domain.HouseRevenue, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HouseRevenue), args.Error(1)
}

func (m *MockPaymentRepository) ReceivedByMonth(ctx context.Context, from time.Time) ([]*domain.MonthTotal, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MonthTotal), args.Error(1)
}

func (m *MockPaymentRepository) Report(ctx context.Context, granularity string) ([]*domain.ReportRow, error) {
	args := m.Called(ctx, granularity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ReportRow), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
