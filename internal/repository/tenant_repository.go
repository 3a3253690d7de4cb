package repository

import (
	"context"
	"time"

	"github.com/murithi/rentledger/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type tenantRepository struct {
	db *sqlx.DB
}

func NewTenantRepository(db *sqlx.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (id, full_name, phone, gov_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		tenant.ID,
		tenant.FullName,
		tenant.Phone,
		tenant.GovID,
		tenant.IsActive,
		tenant.CreatedAt,
	)

	return err
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, full_name, phone, gov_id, is_active, created_at
		FROM tenants
		WHERE id = $1
	`

	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, query, id)
	if err != nil {
		return nil, err
	}

	return &tenant, nil
}

func (r *tenantRepository) List(ctx context.Context) ([]*domain.Tenant, error) {
	query := `
		SELECT id, full_name, phone, gov_id, is_active, created_at
		FROM tenants
		ORDER BY full_name
	`

	var tenants []*domain.Tenant
	err := r.db.SelectContext(ctx, &tenants, query)
	if err != nil {
		return nil, err
	}

	return tenants, nil
}

func (r *tenantRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE tenants
		SET is_active = false
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

type occupancyRepository struct {
	db *sqlx.DB
}

func NewOccupancyRepository(db *sqlx.DB) OccupancyRepository {
	return &occupancyRepository{db: db}
}

func (r *occupancyRepository) Create(ctx context.Context, occupancy *domain.Occupancy) error {
	query := `
		INSERT INTO occupancies (id, house_id, tenant_id, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		occupancy.ID,
		occupancy.HouseID,
		occupancy.TenantID,
		occupancy.Status,
		occupancy.StartDate,
		occupancy.EndDate,
	)

	return err
}

func (r *occupancyRepository) GetActive(ctx context.Context, houseID, tenantID uuid.UUID) (*domain.Occupancy, error) {
	query := `
		SELECT id, house_id, tenant_id, status, start_date, end_date
		FROM occupancies
		WHERE house_id = $1 AND tenant_id = $2 AND status = 'active'
	`

	var occupancy domain.Occupancy
	err := r.db.GetContext(ctx, &occupancy, query, houseID, tenantID)
	if err != nil {
		return nil, err
	}

	return &occupancy, nil
}

func (r *occupancyRepository) HasEverOccupied(ctx context.Context, houseID, tenantID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM occupancies
			WHERE house_id = $1 AND tenant_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, houseID, tenantID)
	return exists, err
}

func (r *occupancyRepository) ListActiveByHouse(ctx context.Context, houseID uuid.UUID) ([]*domain.Occupancy, error) {
	query := `
		SELECT id, house_id, tenant_id, status, start_date, end_date
		FROM occupancies
		WHERE house_id = $1 AND status = 'active'
		ORDER BY start_date
	`

	var occupancies []*domain.Occupancy
	err := r.db.SelectContext(ctx, &occupancies, query, houseID)
	if err != nil {
		return nil, err
	}

	return occupancies, nil
}

func (r *occupancyRepository) ListAll(ctx context.Context) ([]*domain.Occupancy, error) {
	query := `
		SELECT id, house_id, tenant_id, status, start_date, end_date
		FROM occupancies
		ORDER BY start_date
	`

	var occupancies []*domain.Occupancy
	err := r.db.SelectContext(ctx, &occupancies, query)
	if err != nil {
		return nil, err
	}

	return occupancies, nil
}

func (r *occupancyRepository) End(ctx context.Context, occupancyID uuid.UUID, endDate time.Time) error {
	query := `
		UPDATE occupancies
		SET status = 'ended', end_date = $2
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, occupancyID, endDate)
	return err
}

func (r *occupancyRepository) EndAllForTenant(ctx context.Context, tenantID uuid.UUID, endDate time.Time) error {
	query := `
		UPDATE occupancies
		SET status = 'ended', end_date = $2
		WHERE tenant_id = $1 AND status = 'active'
	`

	_, err := r.db.ExecContext(ctx, query, tenantID, endDate)
	return err
}

func (r *occupancyRepository) FirstStartForHouse(ctx context.Context, houseID uuid.UUID) (*time.Time, error) {
	query := `
		SELECT MIN(start_date)
		FROM occupancies
		WHERE house_id = $1
	`

	var first *time.Time
	err := r.db.GetContext(ctx, &first, query, houseID)
	if err != nil {
		return nil, err
	}

	return first, nil
}
