package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	HouseTypeBedsitter = "bedsitter"
	HouseTypeSingle    = "single"
)

// House represents a rentable unit
type House struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Number      int             `json:"number" db:"number"`
	Type        string          `json:"type" db:"type"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" db:"monthly_rent"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// DTOs for requests and responses

type CreateHouseRequest struct {
	Number      int             `json:"number" validate:"required,gt=0"`
	Type        string          `json:"type" validate:"required,oneof=bedsitter single"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" validate:"required"`
}

type HouseResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        int             `json:"number"`
	Type          string          `json:"type"`
	MonthlyRent   decimal.Decimal `json:"monthly_rent"`
	Tenants       []*TenantBrief  `json:"tenants"`
	TotalReceived decimal.Decimal `json:"total_received"`
}

type TenantBrief struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone"`
}

// HouseRevenue is one entry of the top-houses ranking
type HouseRevenue struct {
	HouseNumber int             `json:"house_number" db:"house_number"`
	Received    decimal.Decimal `json:"received" db:"received"`
}
