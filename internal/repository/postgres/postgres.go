package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

type unit struct {
	users    repository.UserRepository
	cars     repository.CarRepository
	rentals  repository.RentalRepository
	payments repository.PaymentRepository
}

func newUnit(db DBTX) *unit {
	return &unit{
		users:    NewUserRepository(db),
		cars:     NewCarRepository(db),
		rentals:  NewRentalRepository(db),
		payments: NewPaymentRepository(db),
	}
}

func (u *unit) Users() repository.UserRepository       { return u.users }
func (u *unit) Cars() repository.CarRepository         { return u.cars }
func (u *unit) Rentals() repository.RentalRepository   { return u.rentals }
func (u *unit) Payments() repository.PaymentRepository { return u.payments }

// Store hands out repositories bound to the connection pool and runs
// transactional units of work.
type Store struct {
	db *sql.DB
	*unit
}

var _ repository.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, unit: newUnit(db)}
}

func (s *Store) WithTx(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(newUnit(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Failed to roll back transaction", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
