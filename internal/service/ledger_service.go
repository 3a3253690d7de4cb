package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/murithi/rentledger/internal/config"
	"github.com/murithi/rentledger/internal/domain"
	"github.com/murithi/rentledger/internal/metrics"
	"github.com/murithi/rentledger/internal/repository"
	customError "github.com/murithi/rentledger/pkg/errors"
	"github.com/murithi/rentledger/pkg/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// statsCacheKey is the Redis key holding the cached dashboard aggregate.
// Every payment write deletes it so stats never drift from the ledger.
const statsCacheKey = "stats:dashboard"

type LedgerService struct {
	txm              repository.TxManager
	houseRepo        repository.HouseRepository
	tenantRepo       repository.TenantRepository
	occupancyRepo    repository.OccupancyRepository
	invoiceRepo      repository.InvoiceRepository
	paymentRepo      repository.PaymentRepository
	notificationRepo repository.NotificationRepository
	redis            *redis.Client
	config           *config.Config
	now              func() time.Time
}

func NewLedgerService(
	txm repository.TxManager,
	houseRepo repository.HouseRepository,
	tenantRepo repository.TenantRepository,
	occupancyRepo repository.OccupancyRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	notificationRepo repository.NotificationRepository,
	redis *redis.Client,
	config *config.Config,
) *LedgerService {
	return &LedgerService{
		txm:              txm,
		houseRepo:        houseRepo,
		tenantRepo:       tenantRepo,
		occupancyRepo:    occupancyRepo,
		invoiceRepo:      invoiceRepo,
		paymentRepo:      paymentRepo,
		notificationRepo: notificationRepo,
		redis:            redis,
		config:           config,
		now:              time.Now,
	}
}

// RecordPayment validates a payment, allocates it against one or more monthly
// invoices and returns the allocation summaries. The ledger mutation runs in
// a single transaction; nothing is written when validation fails.
func (s *LedgerService) RecordPayment(ctx context.Context, request *domain.RecordPaymentRequest) (*domain.RecordPaymentResponse, error) {
	if !request.Amount.IsPositive() {
		return nil, customError.WrapValidation("payment amount must be positive", customError.ErrInvalidPaymentAmount)
	}

	if request.Method != domain.PaymentMethodCash && request.Method != domain.PaymentMethodMpesa {
		return nil, customError.WrapValidation(
			fmt.Sprintf("payment method must be %q or %q", domain.PaymentMethodCash, domain.PaymentMethodMpesa),
			customError.ErrInvalidPaymentMethod,
		)
	}

	if !utils.ValidMonth(request.TargetMonth) {
		return nil, customError.WrapValidation("target month must be between 1 and 12", customError.ErrInvalidTargetMonth)
	}

	house, err := s.houseRepo.GetByID(ctx, request.HouseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapHouseNotFound(request.HouseID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	tenant, err := s.tenantRepo.GetByID(ctx, request.TenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapTenantNotFound(request.TenantID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	occupied, err := s.occupancyRepo.HasEverOccupied(ctx, house.ID, tenant.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if !occupied {
		return nil, customError.WrapTenantNotAssigned(tenant.ID.String(), house.ID.String())
	}

	firstJoined, err := s.occupancyRepo.FirstStartForHouse(ctx, house.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if firstJoined == nil || monthBefore(request.TargetYear, request.TargetMonth, *firstJoined) {
		return nil, customError.WrapValidation(
			fmt.Sprintf("target month %d-%02d precedes the first tenant's move-in", request.TargetYear, request.TargetMonth),
			customError.ErrTargetBeforeOccupancy,
		)
	}

	var allocations []*domain.Allocation
	err = s.txm.WithinTx(ctx, func(q sqlx.ExtContext) error {
		var txErr error
		if s.config.Business.AllocationStrategy == config.StrategySpread {
			allocations, txErr = s.allocateSpread(ctx, q, house, tenant, request)
		} else {
			allocations, txErr = s.allocateSingle(ctx, q, house, tenant, request)
		}
		return txErr
	})
	if err != nil {
		var businessErr *customError.BusinessError
		if errors.As(err, &businessErr) {
			return nil, err
		}
		return nil, customError.WrapDatabaseError(err)
	}

	metrics.PaymentsRecorded.WithLabelValues(request.Method).Inc()
	amount, _ := request.Amount.Float64()
	metrics.AmountAllocated.WithLabelValues(request.Method).Add(amount)

	s.invalidateStatsCache(ctx)
	s.sendReceipt(ctx, house, tenant, request, allocations)

	return &domain.RecordPaymentResponse{Allocations: allocations}, nil
}

// allocateSingle applies the full amount to the target month. An amount above
// the remaining balance either drives the balance negative (credit) or is
// rejected, depending on the configured overpayment policy.
// monthBefore reports whether (year, month) falls in a calendar month
// earlier than t's.
func monthBefore(year, month int, t time.Time) bool {
	return year < t.Year() || (year == t.Year() && month < int(t.Month()))
}

func (s *LedgerService) allocateSingle(ctx context.Context, q sqlx.ExtContext, house *domain.House, tenant *domain.Tenant, request *domain.RecordPaymentRequest) ([]*domain.Allocation, error) {
	invoice, _, err := s.invoiceRepo.GetOrCreate(ctx, q, s.newInvoice(house, request.TargetYear, request.TargetMonth))
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if s.config.Business.OverpaymentPolicy == config.OverpaymentReject &&
		request.Amount.GreaterThan(invoice.RemainingDue()) {
		return nil, customError.WrapOverpaymentRejected(invoice.RemainingDue().String())
	}

	updated, err := s.invoiceRepo.ApplyPayment(ctx, q, invoice.ID, request.Amount)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	payment := s.newPayment(updated.ID, house, tenant, request, request.Amount, request.TargetYear, request.TargetMonth)
	if err = s.paymentRepo.Create(ctx, q, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return []*domain.Allocation{{
		Year:             request.TargetYear,
		Month:            request.TargetMonth,
		Applied:          request.Amount,
		StatusAfter:      updated.Status,
		RemainingBalance: updated.Balance(),
	}}, nil
}

// allocateSpread fills the target month up to its remaining balance, then
// rolls the surplus forward month by month until the amount is exhausted.
// Fully paid months are skipped. Balances never go negative on this path.
func (s *LedgerService) allocateSpread(ctx context.Context, q sqlx.ExtContext, house *domain.House, tenant *domain.Tenant, request *domain.RecordPaymentRequest) ([]*domain.Allocation, error) {
	var allocations []*domain.Allocation

	remaining := request.Amount
	year, month := request.TargetYear, request.TargetMonth

	for remaining.IsPositive() {
		invoice, _, err := s.invoiceRepo.GetOrCreate(ctx, q, s.newInvoice(house, year, month))
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		due := invoice.RemainingDue()
		if due.IsZero() {
			year, month = utils.NextMonth(year, month)
			continue
		}

		applied := decimal.Min(remaining, due)
		updated, err := s.invoiceRepo.ApplyPayment(ctx, q, invoice.ID, applied)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		payment := s.newPayment(updated.ID, house, tenant, request, applied, year, month)
		if err = s.paymentRepo.Create(ctx, q, payment); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		allocations = append(allocations, &domain.Allocation{
			Year:             year,
			Month:            month,
			Applied:          applied,
			StatusAfter:      updated.Status,
			RemainingBalance: updated.RemainingDue(),
		})

		remaining = remaining.Sub(applied)
		if remaining.IsPositive() {
			year, month = utils.NextMonth(year, month)
		}
	}

	return allocations, nil
}

// GetLedger returns a house's invoices for one year with their payment
// detail lines. Pure read: months that were never invoiced are not
// fabricated, and years before the first tenant joined yield no items.
func (s *LedgerService) GetLedger(ctx context.Context, houseID uuid.UUID, year int) (*domain.LedgerResponse, error) {
	if _, err := s.houseRepo.GetByID(ctx, houseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapHouseNotFound(houseID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	firstJoined, err := s.occupancyRepo.FirstStartForHouse(ctx, houseID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	response := &domain.LedgerResponse{
		HouseID:           houseID,
		Year:              year,
		FirstTenantJoined: firstJoined,
		Items:             []*domain.LedgerItem{},
	}

	if firstJoined == nil || year < firstJoined.Year() {
		return response, nil
	}

	// Invoices and their detail lines come from one repeatable-read
	// snapshot, so a payment committing mid-read cannot produce an item
	// whose details disagree with its paid_total.
	var invoices []*domain.Invoice
	var details map[uuid.UUID][]*domain.PaymentDetail
	err = s.txm.WithinReadTx(ctx, func(q sqlx.ExtContext) error {
		var txErr error
		invoices, txErr = s.invoiceRepo.ListByHouseYear(ctx, q, houseID, year)
		if txErr != nil {
			return txErr
		}

		invoiceIDs := make([]uuid.UUID, 0, len(invoices))
		for _, invoice := range invoices {
			invoiceIDs = append(invoiceIDs, invoice.ID)
		}

		details, txErr = s.paymentRepo.DetailsByInvoices(ctx, q, invoiceIDs)
		return txErr
	})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	for _, invoice := range invoices {
		if year == firstJoined.Year() && invoice.Month < int(firstJoined.Month()) {
			continue
		}

		lines := details[invoice.ID]
		if lines == nil {
			lines = []*domain.PaymentDetail{}
		}

		response.Items = append(response.Items, &domain.LedgerItem{
			Month:     invoice.Month,
			State:     invoice.Status,
			AmountDue: invoice.AmountDue,
			PaidTotal: invoice.PaidTotal,
			Balance:   invoice.Balance(),
			DueDate:   invoice.DueDate,
			Details:   lines,
		})
	}

	return response, nil
}

// ListPayments returns all payments, newest first
func (s *LedgerService) ListPayments(ctx context.Context) ([]*domain.PaymentRecord, error) {
	records, err := s.paymentRepo.ListRecords(ctx, 0)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return records, nil
}

// GenerateMonthlyInvoices creates the invoice rows for every active house
// with at least one active tenant. Already invoiced months are untouched
// and not counted.
func (s *LedgerService) GenerateMonthlyInvoices(ctx context.Context, year, month int) (int, error) {
	houses, err := s.houseRepo.ListActive(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	created := 0
	for _, house := range houses {
		occupancies, err := s.occupancyRepo.ListActiveByHouse(ctx, house.ID)
		if err != nil {
			return created, customError.WrapDatabaseError(err)
		}
		if len(occupancies) == 0 {
			continue
		}

		var inserted bool
		err = s.txm.WithinTx(ctx, func(q sqlx.ExtContext) error {
			var txErr error
			_, inserted, txErr = s.invoiceRepo.GetOrCreate(ctx, q, s.newInvoice(house, year, month))
			return txErr
		})
		if err != nil {
			return created, customError.WrapDatabaseError(err)
		}
		if inserted {
			created++
		}
	}

	return created, nil
}

// SendOverdueNotices writes an overdue notification for every active tenant
// of every invoice that is past due and not fully paid.
func (s *LedgerService) SendOverdueNotices(ctx context.Context) (int, error) {
	invoices, err := s.invoiceRepo.ListUnpaidDueBefore(ctx, s.now())
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	sent := 0
	for _, invoice := range invoices {
		house, err := s.houseRepo.GetByID(ctx, invoice.HouseID)
		if err != nil {
			return sent, customError.WrapDatabaseError(err)
		}

		occupancies, err := s.occupancyRepo.ListActiveByHouse(ctx, invoice.HouseID)
		if err != nil {
			return sent, customError.WrapDatabaseError(err)
		}

		for _, occupancy := range occupancies {
			ref := fmt.Sprintf("invoice:%s", invoice.ID)
			message := fmt.Sprintf(
				"Murithi's Homes: Rent for House %d (%d-%02d) is overdue. Balance: KES %s.",
				house.Number, invoice.Year, invoice.Month, invoice.Balance().String(),
			)

			notification := &domain.Notification{
				ID:        uuid.New(),
				TenantID:  occupancy.TenantID,
				Type:      domain.NotificationTypeOverdue,
				Channel:   domain.NotificationChannelSMS,
				Message:   message,
				Status:    domain.NotificationStatusSent,
				RefEntity: &ref,
				SentAt:    s.now(),
			}
			if err := s.notificationRepo.Create(ctx, notification); err != nil {
				return sent, customError.WrapDatabaseError(err)
			}
			sent++
		}
	}

	return sent, nil
}

func (s *LedgerService) newInvoice(house *domain.House, year, month int) *domain.Invoice {
	return &domain.Invoice{
		ID:        uuid.New(),
		HouseID:   house.ID,
		Year:      year,
		Month:     month,
		AmountDue: house.MonthlyRent,
		PaidTotal: decimal.Zero,
		DueDate:   utils.DueDateForMonth(year, month, s.config.Business.InvoiceDueDay),
		Status:    domain.InvoiceStatusUnpaid,
		CreatedAt: s.now(),
	}
}

func (s *LedgerService) newPayment(invoiceID uuid.UUID, house *domain.House, tenant *domain.Tenant, request *domain.RecordPaymentRequest, amount decimal.Decimal, year, month int) *domain.Payment {
	return &domain.Payment{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		HouseID:     house.ID,
		TenantID:    tenant.ID,
		Method:      request.Method,
		Amount:      amount,
		TxRef:       request.TxRef,
		Msisdn:      request.Msisdn,
		TargetYear:  year,
		TargetMonth: month,
		PaidAt:      s.now(),
	}
}

// invalidateStatsCache drops the cached dashboard aggregate. Best effort:
// the cache has a TTL, so a failed delete only delays freshness.
func (s *LedgerService) invalidateStatsCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, statsCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate stats cache: %v", err)
	}
}

// sendReceipt persists a combined receipt notification for the payment.
// Failures are logged, never surfaced: the allocation already committed.
func (s *LedgerService) sendReceipt(ctx context.Context, house *domain.House, tenant *domain.Tenant, request *domain.RecordPaymentRequest, allocations []*domain.Allocation) {
	parts := make([]string, 0, len(allocations))
	for _, allocation := range allocations {
		parts = append(parts, fmt.Sprintf("%d-%02d: KES %s", allocation.Year, allocation.Month, allocation.Applied.String()))
	}

	txRef := "N/A"
	if request.TxRef != nil && *request.TxRef != "" {
		txRef = *request.TxRef
	}

	ref := fmt.Sprintf("house:%s", house.ID)
	message := fmt.Sprintf(
		"Murithi's Homes: Payment for House %d.\nPayer: %s\nAllocations: %s\nRef: %s\nTime: %s",
		house.Number, tenant.FullName, strings.Join(parts, ", "), txRef, s.now().Format("2006-01-02 15:04:05"),
	)

	notification := &domain.Notification{
		ID:        uuid.New(),
		TenantID:  tenant.ID,
		Type:      domain.NotificationTypeReceipt,
		Channel:   domain.NotificationChannelSMS,
		Message:   message,
		Status:    domain.NotificationStatusSent,
		RefEntity: &ref,
		SentAt:    s.now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("Failed to save receipt notification: %v", err)
	}
}
