package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice statuses, derived from paid_total vs amount_due
const (
	InvoiceStatusUnpaid        = "unpaid"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusPaid          = "paid"
)

// Invoice is the rent obligation of one house for one calendar month.
// AmountDue is snapshotted from the house's monthly rent when the invoice
// is first created; later rent changes never touch existing invoices.
type Invoice struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	HouseID   uuid.UUID       `json:"house_id" db:"house_id"`
	Year      int             `json:"year" db:"year"`
	Month     int             `json:"month" db:"month"`
	AmountDue decimal.Decimal `json:"amount_due" db:"amount_due"`
	PaidTotal decimal.Decimal `json:"paid_total" db:"paid_total"`
	DueDate   time.Time       `json:"due_date" db:"due_date"`
	Status    string          `json:"state" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Balance is amount_due minus paid_total; negative means credit.
func (i *Invoice) Balance() decimal.Decimal {
	return i.AmountDue.Sub(i.PaidTotal)
}

// RemainingDue is the balance clamped at zero.
func (i *Invoice) RemainingDue() decimal.Decimal {
	balance := i.Balance()
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// StatusFor derives the invoice status from paid vs due.
func StatusFor(paidTotal, amountDue decimal.Decimal) string {
	switch {
	case paidTotal.GreaterThanOrEqual(amountDue):
		return InvoiceStatusPaid
	case paidTotal.IsPositive():
		return InvoiceStatusPartiallyPaid
	default:
		return InvoiceStatusUnpaid
	}
}

// DTOs for requests and responses

// PaymentDetail is one payment line on a ledger item, ordered by payment time
type PaymentDetail struct {
	Payer  string          `json:"payer" db:"payer"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
	Method string          `json:"method" db:"method"`
	PaidAt time.Time       `json:"paid_at" db:"paid_at"`
}

type LedgerItem struct {
	Month     int              `json:"month"`
	State     string           `json:"state"`
	AmountDue decimal.Decimal  `json:"amount_due"`
	PaidTotal decimal.Decimal  `json:"paid_total"`
	Balance   decimal.Decimal  `json:"balance"`
	DueDate   time.Time        `json:"due_date"`
	Details   []*PaymentDetail `json:"details"`
}

type LedgerResponse struct {
	HouseID           uuid.UUID     `json:"house_id"`
	Year              int           `json:"year"`
	FirstTenantJoined *time.Time    `json:"first_tenant_joined"`
	Items             []*LedgerItem `json:"items"`
}
