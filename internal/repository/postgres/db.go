package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"staybook/internal/repository"
)

// DB is the query surface shared by the pool and an open transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements repository.Store over a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Properties() repository.Properties { return &PropertyRepo{db: s.pool} }
func (s *Store) Bookings() repository.Bookings     { return &BookingRepo{db: s.pool} }
func (s *Store) Users() repository.Users           { return &UserRepo{db: s.pool} }

// Bind returns a repository.Store whose repositories run on the given
// handle, typically an open transaction.
func (s *Store) Bind(db DB) repository.Store {
	return &boundStore{db: db}
}

type boundStore struct {
	db DB
}

func (s *boundStore) Properties() repository.Properties { return &PropertyRepo{db: s.db} }
func (s *boundStore) Bookings() repository.Bookings     { return &BookingRepo{db: s.db} }
func (s *boundStore) Users() repository.Users           { return &UserRepo{db: s.db} }

// RunTx runs fn inside a transaction, serializable by default.
func (s *Store) RunTx(
	ctx context.Context,
	opts *pgx.TxOptions,
	fn func(ctx context.Context, tx DB) error,
) error {
	txOpts := pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	}

	if opts != nil {
		txOpts.IsoLevel = opts.IsoLevel
		txOpts.AccessMode = opts.AccessMode
		txOpts.DeferrableMode = opts.DeferrableMode
	}

	tx, err := s.pool.BeginTx(ctx, txOpts)
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
