package repository

import (
	"context"

	"github.com/murithi/rentledger/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type houseRepository struct {
	db *sqlx.DB
}

func NewHouseRepository(db *sqlx.DB) HouseRepository {
	return &houseRepository{db: db}
}

func (r *houseRepository) Create(ctx context.Context, house *domain.House) error {
	query := `
		INSERT INTO houses (id, number, type, monthly_rent, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		house.ID,
		house.Number,
		house.Type,
		house.MonthlyRent,
		house.IsActive,
		house.CreatedAt,
	)

	return err
}

func (r *houseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.House, error) {
	query := `
		SELECT id, number, type, monthly_rent, is_active, created_at
		FROM houses
		WHERE id = $1
	`

	var house domain.House
	err := r.db.GetContext(ctx, &house, query, id)
	if err != nil {
		return nil, err
	}

	return &house, nil
}

func (r *houseRepository) GetByNumber(ctx context.Context, number int) (*domain.House, error) {
	query := `
		SELECT id, number, type, monthly_rent, is_active, created_at
		FROM houses
		WHERE number = $1
	`

	var house domain.House
	err := r.db.GetContext(ctx, &house, query, number)
	if err != nil {
		return nil, err
	}

	return &house, nil
}

func (r *houseRepository) List(ctx context.Context) ([]*domain.House, error) {
	query := `
		SELECT id, number, type, monthly_rent, is_active, created_at
		FROM houses
		ORDER BY number
	`

	var houses []*domain.House
	err := r.db.SelectContext(ctx, &houses, query)
	if err != nil {
		return nil, err
	}

	return houses, nil
}

func (r *houseRepository) ListActive(ctx context.Context) ([]*domain.House, error) {
	query := `
		SELECT id, number, type, monthly_rent, is_active, created_at
		FROM houses
		WHERE is_active = true
		ORDER BY number
	`

	var houses []*domain.House
	err := r.db.SelectContext(ctx, &houses, query)
	if err != nil {
		return nil, err
	}

	return houses, nil
}

func (r *houseRepository) TotalReceived(ctx context.Context, houseID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE house_id = $1
	`

	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, query, houseID)
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
