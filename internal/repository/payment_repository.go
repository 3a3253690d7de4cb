package repository

import (
	"context"
	"time"

	"github.com/murithi/rentledger/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, q sqlx.ExtContext, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, house_id, tenant_id, method, amount, tx_ref, msisdn, target_year, target_month, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := q.ExecContext(ctx, query,
		payment.ID,
		payment.InvoiceID,
		payment.HouseID,
		payment.TenantID,
		payment.Method,
		payment.Amount,
		payment.TxRef,
		payment.Msisdn,
		payment.TargetYear,
		payment.TargetMonth,
		payment.PaidAt,
	)

	return err
}

func (r *paymentRepository) GetRecord(ctx context.Context, id uuid.UUID) (*domain.PaymentRecord, error) {
	query := `
		SELECT p.id, h.number AS house_number, t.full_name AS tenant_name,
		       p.method, p.amount, p.tx_ref, p.target_year, p.target_month, p.paid_at
		FROM payments p
		JOIN houses h ON h.id = p.house_id
		JOIN tenants t ON t.id = p.tenant_id
		WHERE p.id = $1
	`

	var record domain.PaymentRecord
	err := r.db.GetContext(ctx, &record, query, id)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *paymentRepository) ListRecords(ctx context.Context, limit int) ([]*domain.PaymentRecord, error) {
	query := `
		SELECT p.id, h.number AS house_number, t.full_name AS tenant_name,
		       p.method, p.amount, p.tx_ref, p.target_year, p.target_month, p.paid_at
		FROM payments p
		JOIN houses h ON h.id = p.house_id
		JOIN tenants t ON t.id = p.tenant_id
		ORDER BY p.paid_at DESC
	`

	var records []*domain.PaymentRecord
	var err error
	if limit > 0 {
		err = r.db.SelectContext(ctx, &records, query+" LIMIT $1", limit)
	} else {
		err = r.db.SelectContext(ctx, &records, query)
	}
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *paymentRepository) DetailsByInvoices(ctx context.Context, q sqlx.ExtContext, invoiceIDs []uuid.UUID) (map[uuid.UUID][]*domain.PaymentDetail, error) {
	details := make(map[uuid.UUID][]*domain.PaymentDetail, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return details, nil
	}

	query := `
		SELECT p.invoice_id, t.full_name AS payer, p.amount, p.method, p.paid_at
		FROM payments p
		JOIN tenants t ON t.id = p.tenant_id
		WHERE p.invoice_id IN (?)
		ORDER BY p.paid_at
	`

	query, args, err := sqlx.In(query, invoiceIDs)
	if err != nil {
		return nil, err
	}
	query = q.Rebind(query)

	var rows []struct {
		InvoiceID uuid.UUID       `db:"invoice_id"`
		Payer     string          `db:"payer"`
		Amount    decimal.Decimal `db:"amount"`
		Method    string          `db:"method"`
		PaidAt    time.Time       `db:"paid_at"`
	}
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, err
	}

	for _, row := range rows {
		details[row.InvoiceID] = append(details[row.InvoiceID], &domain.PaymentDetail{
			Payer:  row.Payer,
			Amount: row.Amount,
			Method: row.Method,
			PaidAt: row.PaidAt,
		})
	}

	return details, nil
}

func (r *paymentRepository) TopHouses(ctx context.Context, from, to time.Time, limit int) ([]*domain.HouseRevenue, error) {
	query := `
		SELECT h.number AS house_number, COALESCE(SUM(p.amount), 0) AS received
		FROM payments p
		JOIN houses h ON h.id = p.house_id
		WHERE p.paid_at >= $1 AND p.paid_at < $2
		GROUP BY h.number
		ORDER BY received DESC, house_number ASC
		LIMIT $3
	`

	var revenues []*domain.HouseRevenue
	err := r.db.SelectContext(ctx, &revenues, query, from, to, limit)
	if err != nil {
		return nil, err
	}

	return revenues, nil
}

func (r *paymentRepository) ReceivedByMonth(ctx context.Context, from time.Time) ([]*domain.MonthTotal, error) {
	query := `
		SELECT EXTRACT(YEAR FROM paid_at)::int AS year,
		       EXTRACT(MONTH FROM paid_at)::int AS month,
		       COALESCE(SUM(amount), 0) AS received
		FROM payments
		WHERE paid_at >= $1
		GROUP BY 1, 2
		ORDER BY 1, 2
	`

	var totals []*domain.MonthTotal
	err := r.db.SelectContext(ctx, &totals, query, from)
	if err != nil {
		return nil, err
	}

	return totals, nil
}

func (r *paymentRepository) Report(ctx context.Context, granularity string) ([]*domain.ReportRow, error) {
	var format string
	switch granularity {
	case domain.ReportDaily:
		format = "YYYY-MM-DD"
	case domain.ReportMonthly:
		format = "YYYY-MM"
	default:
		format = "YYYY"
	}

	query := `
		SELECT to_char(paid_at, $1) AS bucket,
		       COUNT(*) AS count,
		       COALESCE(SUM(amount), 0) AS total,
		       COALESCE(SUM(amount) FILTER (WHERE method = 'cash'), 0) AS cash,
		       COALESCE(SUM(amount) FILTER (WHERE method = 'mpesa'), 0) AS mpesa
		FROM payments
		GROUP BY 1
		ORDER BY 1 DESC
	`

	var rows []*domain.ReportRow
	err := r.db.SelectContext(ctx, &rows, query, format)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, tenant_id, type, channel, message, status, ref_entity, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.TenantID,
		notification.Type,
		notification.Channel,
		notification.Message,
		notification.Status,
		notification.RefEntity,
		notification.SentAt,
	)

	return err
}
