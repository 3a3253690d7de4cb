package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/murithi/rentledger/internal/domain"
	"github.com/murithi/rentledger/internal/repository"
	customError "github.com/murithi/rentledger/pkg/errors"

	"github.com/google/uuid"
)

// RegistryService owns the house and tenant roster: creation, listing,
// and occupancy assignments.
type RegistryService struct {
	houseRepo     repository.HouseRepository
	tenantRepo    repository.TenantRepository
	occupancyRepo repository.OccupancyRepository
	now           func() time.Time
}

func NewRegistryService(
	houseRepo repository.HouseRepository,
	tenantRepo repository.TenantRepository,
	occupancyRepo repository.OccupancyRepository,
) *RegistryService {
	return &RegistryService{
		houseRepo:     houseRepo,
		tenantRepo:    tenantRepo,
		occupancyRepo: occupancyRepo,
		now:           time.Now,
	}
}

// CreateHouse registers a new unit; house numbers are unique
func (s *RegistryService) CreateHouse(ctx context.Context, request *domain.CreateHouseRequest) (*domain.House, error) {
	if !request.MonthlyRent.IsPositive() {
		return nil, customError.WrapValidation("monthly rent must be positive", nil)
	}

	existing, err := s.houseRepo.GetByNumber(ctx, request.Number)
	if err == nil && existing != nil {
		return nil, customError.WrapHouseNumberExists(request.Number)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	house := &domain.House{
		ID:          uuid.New(),
		Number:      request.Number,
		Type:        request.Type,
		MonthlyRent: request.MonthlyRent,
		IsActive:    true,
		CreatedAt:   s.now(),
	}

	if err := s.houseRepo.Create(ctx, house); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return house, nil
}

// ListHouses returns all houses with their active tenants and lifetime
// received totals
func (s *RegistryService) ListHouses(ctx context.Context) ([]*domain.HouseResponse, error) {
	houses, err := s.houseRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	responses := make([]*domain.HouseResponse, 0, len(houses))
	for _, house := range houses {
		occupancies, err := s.occupancyRepo.ListActiveByHouse(ctx, house.ID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		tenants := make([]*domain.TenantBrief, 0, len(occupancies))
		for _, occupancy := range occupancies {
			tenant, err := s.tenantRepo.GetByID(ctx, occupancy.TenantID)
			if err != nil {
				return nil, customError.WrapDatabaseError(err)
			}
			tenants = append(tenants, &domain.TenantBrief{
				ID:       tenant.ID,
				FullName: tenant.FullName,
				Phone:    tenant.Phone,
			})
		}

		total, err := s.houseRepo.TotalReceived(ctx, house.ID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		responses = append(responses, &domain.HouseResponse{
			ID:            house.ID,
			Number:        house.Number,
			Type:          house.Type,
			MonthlyRent:   house.MonthlyRent,
			Tenants:       tenants,
			TotalReceived: total,
		})
	}

	return responses, nil
}

// CreateTenant registers a new tenant
func (s *RegistryService) CreateTenant(ctx context.Context, request *domain.CreateTenantRequest) (*domain.Tenant, error) {
	tenant := &domain.Tenant{
		ID:        uuid.New(),
		FullName:  request.FullName,
		Phone:     request.Phone,
		GovID:     request.GovID,
		IsActive:  true,
		CreatedAt: s.now(),
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return tenant, nil
}

// ListTenants returns one row per assignment, past or present, plus an
// "unassigned" row for tenants that never had a house
func (s *RegistryService) ListTenants(ctx context.Context) ([]*domain.TenantListing, error) {
	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	occupancies, err := s.occupancyRepo.ListAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	tenantsByID := make(map[uuid.UUID]*domain.Tenant, len(tenants))
	for _, tenant := range tenants {
		tenantsByID[tenant.ID] = tenant
	}

	houseNumbers := make(map[uuid.UUID]int)
	assigned := make(map[uuid.UUID]bool, len(occupancies))

	listings := make([]*domain.TenantListing, 0, len(tenants))
	for _, occupancy := range occupancies {
		tenant, ok := tenantsByID[occupancy.TenantID]
		if !ok {
			continue
		}

		number, ok := houseNumbers[occupancy.HouseID]
		if !ok {
			house, err := s.houseRepo.GetByID(ctx, occupancy.HouseID)
			if err != nil {
				return nil, customError.WrapDatabaseError(err)
			}
			number = house.Number
			houseNumbers[occupancy.HouseID] = number
		}

		assigned[tenant.ID] = true
		startDate := occupancy.StartDate
		listings = append(listings, &domain.TenantListing{
			ID:          tenant.ID,
			FullName:    tenant.FullName,
			Phone:       tenant.Phone,
			GovID:       tenant.GovID,
			Status:      occupancy.Status,
			HouseNumber: &number,
			StartDate:   &startDate,
			EndDate:     occupancy.EndDate,
		})
	}

	for _, tenant := range tenants {
		if assigned[tenant.ID] {
			continue
		}
		listings = append(listings, &domain.TenantListing{
			ID:       tenant.ID,
			FullName: tenant.FullName,
			Phone:    tenant.Phone,
			GovID:    tenant.GovID,
			Status:   domain.TenantStatusUnassigned,
		})
	}

	return listings, nil
}

// AssignTenant creates an active occupancy; a tenant cannot be assigned
// twice to the same house concurrently
func (s *RegistryService) AssignTenant(ctx context.Context, houseID, tenantID uuid.UUID) (*domain.Occupancy, error) {
	if _, err := s.houseRepo.GetByID(ctx, houseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapHouseNotFound(houseID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapTenantNotFound(tenantID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	existing, err := s.occupancyRepo.GetActive(ctx, houseID, tenantID)
	if err == nil && existing != nil {
		return nil, customError.WrapTenantAlreadyAssigned(tenantID.String(), houseID.String())
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	occupancy := &domain.Occupancy{
		ID:        uuid.New(),
		HouseID:   houseID,
		TenantID:  tenantID,
		Status:    domain.OccupancyStatusActive,
		StartDate: s.now(),
	}

	if err := s.occupancyRepo.Create(ctx, occupancy); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return occupancy, nil
}

// EndAssignment closes the active occupancy between a house and a tenant
func (s *RegistryService) EndAssignment(ctx context.Context, houseID, tenantID uuid.UUID) error {
	occupancy, err := s.occupancyRepo.GetActive(ctx, houseID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.NewBusinessError(
				customError.ErrCodeNotFound, "Assignment not found", customError.ErrAssignmentNotFound,
			)
		}
		return customError.WrapDatabaseError(err)
	}

	if err := s.occupancyRepo.End(ctx, occupancy.ID, s.now()); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

// RemoveTenant soft-deletes a tenant and ends all their active occupancies
func (s *RegistryService) RemoveTenant(ctx context.Context, tenantID uuid.UUID) error {
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapTenantNotFound(tenantID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if err := s.tenantRepo.Deactivate(ctx, tenantID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	if err := s.occupancyRepo.EndAllForTenant(ctx, tenantID, s.now()); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}
