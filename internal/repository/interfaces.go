package repository

import (
	"context"
	"time"

	"github.com/murithi/rentledger/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// HouseRepository defines the interface for house data operations
type HouseRepository interface {
	// Create creates a new house
	Create(ctx context.Context, house *domain.House) error

	// GetByID retrieves a house by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.House, error)

	// GetByNumber retrieves a house by its unit number
	GetByNumber(ctx context.Context, number int) (*domain.House, error)

	// List retrieves all houses ordered by number
	List(ctx context.Context) ([]*domain.House, error)

	// ListActive retrieves active houses ordered by number
	ListActive(ctx context.Context) ([]*domain.House, error)

	// TotalReceived sums all payments recorded against a house
	TotalReceived(ctx context.Context, houseID uuid.UUID) (decimal.Decimal, error)
}

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	// Create creates a new tenant
	Create(ctx context.Context, tenant *domain.Tenant) error

	// GetByID retrieves a tenant by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)

	// List retrieves all tenants
	List(ctx context.Context) ([]*domain.Tenant, error)

	// Deactivate soft-deletes a tenant
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// OccupancyRepository defines the interface for house-tenant assignments
type OccupancyRepository interface {
	// Create records a new assignment
	Create(ctx context.Context, occupancy *domain.Occupancy) error

	// GetActive retrieves the active assignment between a house and a tenant
	GetActive(ctx context.Context, houseID, tenantID uuid.UUID) (*domain.Occupancy, error)

	// HasEverOccupied reports whether the tenant has any assignment, past or
	// present, in the house
	HasEverOccupied(ctx context.Context, houseID, tenantID uuid.UUID) (bool, error)

	// ListActiveByHouse retrieves active assignments for a house
	ListActiveByHouse(ctx context.Context, houseID uuid.UUID) ([]*domain.Occupancy, error)

	// ListAll retrieves every assignment
	ListAll(ctx context.Context) ([]*domain.Occupancy, error)

	// End closes an assignment
	End(ctx context.Context, occupancyID uuid.UUID, endDate time.Time) error

	// EndAllForTenant closes all active assignments of a tenant
	EndAllForTenant(ctx context.Context, tenantID uuid.UUID, endDate time.Time) error

	// FirstStartForHouse returns the earliest assignment start for a house,
	// or nil if the house never had a tenant
	FirstStartForHouse(ctx context.Context, houseID uuid.UUID) (*time.Time, error)
}

// InvoiceRepository defines the interface for invoice data operations.
// Mutating methods take an sqlx.ExtContext so the service can run them
// inside the allocation transaction.
type InvoiceRepository interface {
	// GetOrCreate finds the invoice for (house, year, month), inserting it
	// with the given snapshot amount if missing. The snapshot is taken only
	// on first creation; created reports whether this call inserted the row.
	GetOrCreate(ctx context.Context, q sqlx.ExtContext, invoice *domain.Invoice) (inv *domain.Invoice, created bool, err error)

	// ApplyPayment atomically adds amount to paid_total and recomputes the
	// status in a single statement, returning the updated row
	ApplyPayment(ctx context.Context, q sqlx.ExtContext, invoiceID uuid.UUID, amount decimal.Decimal) (*domain.Invoice, error)

	// ListByHouseYear retrieves a house's invoices for one year, ordered by
	// month. Takes a querier so ledger reads can pair it with the detail
	// query in one snapshot.
	ListByHouseYear(ctx context.Context, q sqlx.ExtContext, houseID uuid.UUID, year int) ([]*domain.Invoice, error)

	// MonthTotals sums amount_due and paid_total across all invoices of a month
	MonthTotals(ctx context.Context, year, month int) (expected, received decimal.Decimal, err error)

	// ListUnpaidDueBefore retrieves invoices not fully paid with a due date
	// before asOf
	ListUnpaidDueBefore(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create inserts an immutable payment record
	Create(ctx context.Context, q sqlx.ExtContext, payment *domain.Payment) error

	// GetRecord retrieves a payment joined with house and tenant names
	GetRecord(ctx context.Context, id uuid.UUID) (*domain.PaymentRecord, error)

	// ListRecords retrieves payments newest first; limit <= 0 means all
	ListRecords(ctx context.Context, limit int) ([]*domain.PaymentRecord, error)

	// DetailsByInvoices retrieves payment detail lines grouped by invoice,
	// ordered by payment time
	DetailsByInvoices(ctx context.Context, q sqlx.ExtContext, invoiceIDs []uuid.UUID) (map[uuid.UUID][]*domain.PaymentDetail, error)

	// TopHouses ranks houses by amount received in [from, to)
	TopHouses(ctx context.Context, from, to time.Time, limit int) ([]*domain.HouseRevenue, error)

	// ReceivedByMonth sums payments per paid_at month from the given time
	ReceivedByMonth(ctx context.Context, from time.Time) ([]*domain.MonthTotal, error)

	// Report aggregates payments into daily, monthly or yearly buckets
	Report(ctx context.Context, granularity string) ([]*domain.ReportRow, error)
}

// NotificationRepository defines the interface for notification records
type NotificationRepository interface {
	// Create persists an outbound notification
	Create(ctx context.Context, notification *domain.Notification) error
}
