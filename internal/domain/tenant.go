package domain

import (
	"time"

	"github.com/google/uuid"
)

// Occupancy statuses; a tenant with no occupancy rows is "unassigned"
const (
	OccupancyStatusActive  = "active"
	OccupancyStatusEnded   = "ended"
	TenantStatusUnassigned = "unassigned"
)

// Tenant represents a person renting (or having rented) a house
type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	GovID     string    `json:"gov_id" db:"gov_id"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Occupancy links a tenant to a house over a period of time
type Occupancy struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	HouseID   uuid.UUID  `json:"house_id" db:"house_id"`
	TenantID  uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	Status    string     `json:"status" db:"status"`
	StartDate time.Time  `json:"start_date" db:"start_date"`
	EndDate   *time.Time `json:"end_date" db:"end_date"`
}

// DTOs for requests and responses

type CreateTenantRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	GovID    string `json:"gov_id"`
}

type AssignTenantRequest struct {
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`
}

// TenantListing is the merged occupancy view: one row per assignment,
// plus one "unassigned" row for tenants that never had a house.
type TenantListing struct {
	ID          uuid.UUID  `json:"id"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	GovID       string     `json:"gov_id"`
	Status      string     `json:"status"`
	HouseNumber *int       `json:"house_number"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}
