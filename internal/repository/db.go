package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx so repositories run inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories groups every aggregate repository bound to the same DBTX.
type Repositories struct {
	Users    UserRepository
	Projects ProjectRepository
	Bookings BookingRepository
	Payments PaymentRepository
	Reviews  ReviewRepository
	Refunds  RefundRepository
}

// New binds all repositories to db.
func New(db DBTX) Repositories {
	return Repositories{
		Users:    NewUserRepository(db),
		Projects: NewProjectRepository(db),
		Bookings: NewBookingRepository(db),
		Payments: NewPaymentRepository(db),
		Reviews:  NewReviewRepository(db),
		Refunds:  NewRefundRepository(db),
	}
}

// Store hands out repositories and runs units of work atomically.
type Store interface {
	Repos() Repositories
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}

type pgStore struct {
	pool  *pgxpool.Pool
	repos Repositories
}

// NewStore returns a Postgres-backed Store.
func NewStore(pool *pgxpool.Pool) Store {
	return &pgStore{pool: pool, repos: New(pool)}
}

func (s *pgStore) Repos() Repositories {
	return s.repos
}

// WithinTx commits when fn returns nil and rolls back otherwise.
func (s *pgStore) WithinTx(ctx context.Context, fn func(Repositories) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(New(tx))
	})
}

// execOne runs a write that must touch at least one row; otherwise it reports pgx.ErrNoRows.
func execOne(ctx context.Context, db DBTX, query string, args ...any) error {
	cmd, err := db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
