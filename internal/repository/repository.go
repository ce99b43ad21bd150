package repository

import (
	"context"
	"time"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/repository/filter"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error)
	Update(ctx context.Context, car *domain.Car) error
	SoftDelete(ctx context.Context, id int64) error

	// DecrementInventory removes one unit atomically. It returns
	// domain.ErrOutOfInventory when no unit is left and domain.ErrNotFound
	// when the car does not exist.
	DecrementInventory(ctx context.Context, id int64) (*domain.Car, error)
	IncrementInventory(ctx context.Context, id int64) (*domain.Car, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	// GetByIDForUpdate locks the row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error)
	// MarkReturned only succeeds while the actual return date is unset and
	// reports domain.ErrAlreadyReturned otherwise.
	MarkReturned(ctx context.Context, id int64, returnedOn time.Time) error
	List(ctx context.Context, f filter.Filter) ([]domain.Rental, error)
	ListOverdue(ctx context.Context, today time.Time) ([]domain.Rental, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Payment, error)
	// UpdateStatus never moves a PAID payment to another status. The
	// returned payment reflects the stored row and changed reports whether
	// this call wrote it.
	UpdateStatus(ctx context.Context, sessionID string, status domain.PaymentStatus) (p *domain.Payment, changed bool, err error)
	List(ctx context.Context, f filter.Filter) ([]domain.Payment, error)
	ListByStatuses(ctx context.Context, statuses ...domain.PaymentStatus) ([]domain.Payment, error)
}

// UnitOfWork exposes repositories bound to a single transaction.
type UnitOfWork interface {
	Users() UserRepository
	Cars() CarRepository
	Rentals() RentalRepository
	Payments() PaymentRepository
}

// Transactor runs fn inside a transaction, committing when fn returns nil
// and rolling back otherwise.
type Transactor interface {
	WithTx(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// Store is a UnitOfWork over the connection pool that can also open
// transactional units.
type Store interface {
	UnitOfWork
	Transactor
}
