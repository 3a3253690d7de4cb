package domain

import (
	"github.com/shopspring/decimal"
)

// MonthTotal is one point of the received-per-month trend
type MonthTotal struct {
	Year     int             `json:"year" db:"year"`
	Month    int             `json:"month" db:"month"`
	Received decimal.Decimal `json:"received" db:"received"`
}

// StatsResponse is the dashboard aggregate. Outstanding is clamped at zero
// here only; individual invoice balances may go negative (credit).
type StatsResponse struct {
	Units          int              `json:"units"`
	Expected       decimal.Decimal  `json:"expected"`
	Received       decimal.Decimal  `json:"received"`
	Outstanding    decimal.Decimal  `json:"outstanding"`
	TopHouses      []*HouseRevenue  `json:"top_houses"`
	RecentPayments []*PaymentRecord `json:"recent_payments"`
	Trend          []*MonthTotal    `json:"trend"`
}

// Report granularities
const (
	ReportDaily   = "daily"
	ReportMonthly = "monthly"
	ReportYearly  = "yearly"
)

// ReportRow is one bucket of a payment report
type ReportRow struct {
	Bucket string          `json:"bucket" db:"bucket"`
	Count  int             `json:"count" db:"count"`
	Total  decimal.Decimal `json:"total" db:"total"`
	Cash   decimal.Decimal `json:"cash" db:"cash"`
	Mpesa  decimal.Decimal `json:"mpesa" db:"mpesa"`
}

type ReportResponse struct {
	Granularity string       `json:"granularity"`
	Rows        []*ReportRow `json:"rows"`
}
