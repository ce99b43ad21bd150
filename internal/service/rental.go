package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/metrics"
	"carsharing-backend/internal/repository"
	"carsharing-backend/internal/repository/filter"
)

type rentalService struct {
	store    repository.Store
	filters  *filter.RentalFilterBuilder
	notifier NotificationService
	metrics  *metrics.Metrics
	now      Clock
}

func NewRentalService(
	store repository.Store,
	filters *filter.RentalFilterBuilder,
	notifier NotificationService,
	m *metrics.Metrics,
	now Clock,
) RentalService {
	if now == nil {
		now = time.Now
	}
	return &rentalService{
		store:    store,
		filters:  filters,
		notifier: notifier,
		metrics:  m,
		now:      now,
	}
}

func (s *rentalService) BookRental(ctx context.Context, user *domain.User, carID int64, rentalDate, returnDate time.Time) (*domain.Rental, error) {
	const method = "RentalService.BookRental"
	logger.EnterMethod(method, "userID", user.ID, "carID", carID)

	rentalDate, returnDate = domain.DateOf(rentalDate), domain.DateOf(returnDate)
	if returnDate.Before(rentalDate) {
		return nil, fmt.Errorf("%w: return date %s is before rental date %s",
			domain.ErrValidation, domain.FormatDate(returnDate), domain.FormatDate(rentalDate))
	}

	var rental *domain.Rental
	err := s.store.WithTx(ctx, func(uow repository.UnitOfWork) error {
		if _, err := NewInventoryLedger(uow.Cars()).DecrementOnBooking(ctx, carID); err != nil {
			return err
		}
		rental = &domain.Rental{
			RentalDate: rentalDate,
			ReturnDate: returnDate,
			CarID:      carID,
			UserID:     user.ID,
		}
		return uow.Rentals().Create(ctx, rental)
	})
	if err != nil {
		s.metrics.BookingRejected(rejectionReason(err))
		logger.ExitMethodWithError(method, err, "userID", user.ID, "carID", carID)
		return nil, fmt.Errorf("book car %d: %w", carID, err)
	}

	s.metrics.RentalBooked()
	s.notifier.NotifyNewRental(rental)
	logger.ExitMethod(method, "rentalID", rental.ID)
	return rental, nil
}

// ReturnRental reports domain.ErrNotFound when the rental belongs to someone
// else, so callers cannot probe for other users' rentals.
func (s *rentalService) ReturnRental(ctx context.Context, user *domain.User, rentalID int64) (*domain.Rental, error) {
	const method = "RentalService.ReturnRental"
	logger.EnterMethod(method, "userID", user.ID, "rentalID", rentalID)

	today := domain.DateOf(s.now())
	var rental *domain.Rental
	err := s.store.WithTx(ctx, func(uow repository.UnitOfWork) error {
		r, err := uow.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if r.UserID != user.ID {
			return fmt.Errorf("rental %d: %w", rentalID, domain.ErrNotFound)
		}
		if r.ActualReturnDate != nil {
			return fmt.Errorf("rental %d: %w", rentalID, domain.ErrAlreadyReturned)
		}
		if err := uow.Rentals().MarkReturned(ctx, r.ID, today); err != nil {
			return err
		}
		if _, err := NewInventoryLedger(uow.Cars()).IncrementOnReturn(ctx, r.CarID); err != nil {
			return err
		}
		r.ActualReturnDate = &today
		rental = r
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(method, err, "rentalID", rentalID)
		return nil, fmt.Errorf("return rental %d: %w", rentalID, err)
	}

	overdue := rental.IsOverdue(today)
	s.metrics.RentalReturned(overdue)
	if overdue {
		s.notifier.NotifyOverdueRental(rental)
	}
	logger.ExitMethod(method, "rentalID", rentalID, "overdue", overdue)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int64) (*domain.Rental, error) {
	return s.store.Rentals().GetByID(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context, params filter.RentalSearchParams) ([]domain.Rental, error) {
	f, err := s.filters.Build(params)
	if err != nil {
		return nil, err
	}
	return s.store.Rentals().List(ctx, f)
}

func (s *rentalService) ListOverdueRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.store.Rentals().ListOverdue(ctx, s.now())
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOutOfInventory):
		return "out_of_inventory"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
