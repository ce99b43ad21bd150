package service

import (
	"context"
	"time"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/payment"
	"carsharing-backend/internal/repository/filter"
)

type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error) // access token
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) (*domain.User, error)
	ToggleRole(ctx context.Context, userID int64) (*domain.User, error)
}

type CarService interface {
	AddCar(ctx context.Context, car *domain.Car) error
	GetCar(ctx context.Context, id int64) (*domain.Car, error)
	ListCars(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error)
	UpdateCar(ctx context.Context, car *domain.Car) error
	DeleteCar(ctx context.Context, id int64) error
}

type RentalService interface {
	BookRental(ctx context.Context, user *domain.User, carID int64, rentalDate, returnDate time.Time) (*domain.Rental, error)
	ReturnRental(ctx context.Context, user *domain.User, rentalID int64) (*domain.Rental, error)
	GetRental(ctx context.Context, id int64) (*domain.Rental, error)
	ListRentals(ctx context.Context, params filter.RentalSearchParams) ([]domain.Rental, error)
	ListOverdueRentals(ctx context.Context) ([]domain.Rental, error)
}

type PaymentService interface {
	CreatePaymentSession(ctx context.Context, user *domain.User, rentalID int64) (*domain.Payment, error)
	// CheckPaymentSuccess and PausePayment fetch the session status from the
	// provider and then apply it.
	CheckPaymentSuccess(ctx context.Context, sessionID string) (string, error)
	PausePayment(ctx context.Context, sessionID string) (string, error)
	// ApplySuccess and ApplyPause reconcile an already fetched status.
	ApplySuccess(ctx context.Context, sessionID string, status payment.SessionStatus) (string, error)
	ApplyPause(ctx context.Context, sessionID string, status payment.SessionStatus) (string, error)
	ListPayments(ctx context.Context, params filter.PaymentSearchParams) ([]domain.Payment, error)
	ReconcileOpenPayments(ctx context.Context) (int, error)
}

// NotificationService formats operator messages. Delivery is asynchronous
// and never fails the caller.
type NotificationService interface {
	NotifyNewRental(rental *domain.Rental)
	NotifyOverdueRental(rental *domain.Rental)
	NotifyOverdueDigest(rentals []domain.Rental)
	NotifySuccessfulPayment(p *domain.Payment)
}

// Clock returns the current time; services derive "today" from it in UTC.
type Clock func() time.Time
