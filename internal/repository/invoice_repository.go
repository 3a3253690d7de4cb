package repository

import (
	"context"
	"time"

	"github.com/murithi/rentledger/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type invoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// GetOrCreate inserts the invoice if (house_id, year, month) is new and
// reads it back. ON CONFLICT DO NOTHING guarantees the amount_due snapshot
// is written at most once, no matter how many payments race on creation.
func (r *invoiceRepository) GetOrCreate(ctx context.Context, q sqlx.ExtContext, invoice *domain.Invoice) (*domain.Invoice, bool, error) {
	insert := `
		INSERT INTO invoices (id, house_id, year, month, amount_due, paid_total, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (house_id, year, month) DO NOTHING
	`

	result, err := q.ExecContext(ctx, insert,
		invoice.ID,
		invoice.HouseID,
		invoice.Year,
		invoice.Month,
		invoice.AmountDue,
		invoice.PaidTotal,
		invoice.DueDate,
		invoice.Status,
		invoice.CreatedAt,
	)
	if err != nil {
		return nil, false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	query := `
		SELECT id, house_id, year, month, amount_due, paid_total, due_date, status, created_at
		FROM invoices
		WHERE house_id = $1 AND year = $2 AND month = $3
	`

	var existing domain.Invoice
	err = sqlx.GetContext(ctx, q, &existing, query, invoice.HouseID, invoice.Year, invoice.Month)
	if err != nil {
		return nil, false, err
	}

	return &existing, affected == 1, nil
}

// ApplyPayment is the single-writer guarantee of the ledger: paid_total and
// status move together in one statement, so concurrent payments serialize on
// the row and no increment is lost.
func (r *invoiceRepository) ApplyPayment(ctx context.Context, q sqlx.ExtContext, invoiceID uuid.UUID, amount decimal.Decimal) (*domain.Invoice, error) {
	query := `
		UPDATE invoices
		SET paid_total = paid_total + $2,
		    status = CASE
		        WHEN paid_total + $2 >= amount_due THEN 'paid'
		        WHEN paid_total + $2 > 0 THEN 'partially_paid'
		        ELSE 'unpaid'
		    END
		WHERE id = $1
		RETURNING id, house_id, year, month, amount_due, paid_total, due_date, status, created_at
	`

	var invoice domain.Invoice
	err := sqlx.GetContext(ctx, q, &invoice, query, invoiceID, amount)
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *invoiceRepository) ListByHouseYear(ctx context.Context, q sqlx.ExtContext, houseID uuid.UUID, year int) ([]*domain.Invoice, error) {
	query := `
		SELECT id, house_id, year, month, amount_due, paid_total, due_date, status, created_at
		FROM invoices
		WHERE house_id = $1 AND year = $2
		ORDER BY month
	`

	var invoices []*domain.Invoice
	err := sqlx.SelectContext(ctx, q, &invoices, query, houseID, year)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) MonthTotals(ctx context.Context, year, month int) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount_due), 0) AS expected, COALESCE(SUM(paid_total), 0) AS received
		FROM invoices
		WHERE year = $1 AND month = $2
	`

	var totals struct {
		Expected decimal.Decimal `db:"expected"`
		Received decimal.Decimal `db:"received"`
	}
	err := r.db.GetContext(ctx, &totals, query, year, month)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return totals.Expected, totals.Received, nil
}

func (r *invoiceRepository) ListUnpaidDueBefore(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error) {
	query := `
		SELECT id, house_id, year, month, amount_due, paid_total, due_date, status, created_at
		FROM invoices
		WHERE status <> 'paid' AND due_date < $1
		ORDER BY due_date
	`

	var invoices []*domain.Invoice
	err := r.db.SelectContext(ctx, &invoices, query, asOf)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}
