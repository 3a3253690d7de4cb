package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash  = "cash"
	PaymentMethodMpesa = "mpesa"
)

// Payment is an immutable record of money received. A payment that spreads
// across several invoices is stored as one row per invoice chunk.
type Payment struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	HouseID     uuid.UUID       `json:"house_id" db:"house_id"`
	TenantID    uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	Method      string          `json:"method" db:"method"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	TxRef       *string         `json:"tx_ref" db:"tx_ref"`
	Msisdn      *string         `json:"msisdn" db:"msisdn"`
	TargetYear  int             `json:"target_year" db:"target_year"`
	TargetMonth int             `json:"target_month" db:"target_month"`
	PaidAt      time.Time       `json:"paid_at" db:"paid_at"`
}

// DTOs for requests and responses

type RecordPaymentRequest struct {
	HouseID     uuid.UUID       `json:"house_id" validate:"required"`
	TenantID    uuid.UUID       `json:"tenant_id" validate:"required"`
	Method      string          `json:"method" validate:"required,oneof=cash mpesa"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	TxRef       *string         `json:"tx_ref"`
	Msisdn      *string         `json:"msisdn"`
	TargetYear  int             `json:"target_year" validate:"required,gte=2000"`
	TargetMonth int             `json:"target_month" validate:"required,gte=1,lte=12"`
}

// Allocation describes how much of a payment landed on one invoice month
type Allocation struct {
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	Applied          decimal.Decimal `json:"applied"`
	StatusAfter      string          `json:"status_after"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

type RecordPaymentResponse struct {
	Allocations []*Allocation `json:"allocations"`
}

// PaymentRecord is a payment joined with house and tenant names for listings
type PaymentRecord struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	HouseNumber int             `json:"house_number" db:"house_number"`
	TenantName  string          `json:"tenant_name" db:"tenant_name"`
	Method      string          `json:"method" db:"method"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	TxRef       *string         `json:"tx_ref" db:"tx_ref"`
	TargetYear  int             `json:"target_year" db:"target_year"`
	TargetMonth int             `json:"target_month" db:"target_month"`
	PaidAt      time.Time       `json:"paid_at" db:"paid_at"`
}
