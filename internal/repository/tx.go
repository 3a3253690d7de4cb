package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// TxManager runs a function inside a database transaction. The allocation
// path uses it so an invoice's paid_total update and its payment rows commit
// or roll back together; ledger reads use it so an invoice row and its
// detail lines come from one snapshot.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(q sqlx.ExtContext) error) error

	// WithinReadTx runs fn in a read-only repeatable-read transaction.
	// Read committed takes a fresh snapshot per statement, which would let
	// a payment commit between two SELECTs of the same ledger read.
	WithinReadTx(ctx context.Context, fn func(q sqlx.ExtContext) error) error
}

type txManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(q sqlx.ExtContext) error) error {
	return m.run(ctx, nil, fn)
}

func (m *txManager) WithinReadTx(ctx context.Context, fn func(q sqlx.ExtContext) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *txManager) run(ctx context.Context, opts *sql.TxOptions, fn func(q sqlx.ExtContext) error) error {
	tx, err := m.db.BeginTxx(ctx, opts)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}
