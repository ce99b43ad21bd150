package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/repository"
	"carsharing-backend/internal/repository/filter"
)

const rentalColumns = `r.id, r.rental_date, r.return_date, r.actual_return_date, r.car_id, r.user_id`

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var actual sql.NullTime
	if err := row.Scan(&rt.ID, &rt.RentalDate, &rt.ReturnDate, &actual, &rt.CarID, &rt.UserID); err != nil {
		return nil, err
	}
	rt.RentalDate = domain.DateOf(rt.RentalDate)
	rt.ReturnDate = domain.DateOf(rt.ReturnDate)
	if actual.Valid {
		d := domain.DateOf(actual.Time)
		rt.ActualReturnDate = &d
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (rental_date, return_date, car_id, user_id) VALUES ($1, $2, $3, $4) RETURNING id`
	logger.DatabaseCall("INSERT", "rentals", "carID", rt.CarID, "userID", rt.UserID)
	err := r.db.QueryRowContext(ctx, query, rt.RentalDate, rt.ReturnDate, rt.CarID, rt.UserID).Scan(&rt.ID)
	logger.DatabaseResult("INSERT", 1, err, "rentalID", rt.ID)
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	return r.get(ctx, `SELECT `+rentalColumns+` FROM rentals r WHERE r.id = $1 AND r.deleted = false`, id)
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error) {
	return r.get(ctx, `SELECT `+rentalColumns+` FROM rentals r WHERE r.id = $1 AND r.deleted = false FOR UPDATE`, id)
}

func (r *rentalRepository) get(ctx context.Context, query string, id int64) (*domain.Rental, error) {
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rental %d: %w", id, domain.ErrNotFound)
	}
	return rt, err
}

func (r *rentalRepository) MarkReturned(ctx context.Context, id int64, returnedOn time.Time) error {
	query := `UPDATE rentals SET actual_return_date = $1 WHERE id = $2 AND deleted = false AND actual_return_date IS NULL`
	logger.DatabaseCall("UPDATE", "rentals.actual_return_date", "rentalID", id)
	res, err := r.db.ExecContext(ctx, query, domain.DateOf(returnedOn), id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "rentalID", id)
		return err
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	logger.DatabaseResult("UPDATE", n, nil, "rentalID", id)
	if n == 0 {
		return fmt.Errorf("rental %d: %w", id, domain.ErrAlreadyReturned)
	}
	return nil
}

func (r *rentalRepository) List(ctx context.Context, f filter.Filter) ([]domain.Rental, error) {
	where, args := f.Where(1)
	query := `SELECT ` + rentalColumns + ` FROM rentals r WHERE r.deleted = false AND ` + where + ` ORDER BY r.id`
	return r.list(ctx, query, args...)
}

func (r *rentalRepository) ListOverdue(ctx context.Context, today time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals r
	          WHERE r.deleted = false AND r.actual_return_date IS NULL AND r.return_date < $1 ORDER BY r.id`
	return r.list(ctx, query, domain.DateOf(today))
}

func (r *rentalRepository) list(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	logger.DatabaseCall("SELECT", "rentals", "args", len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	rentals := []domain.Rental{}
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(rentals)), nil)
	return rentals, nil
}
