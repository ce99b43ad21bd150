package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/repository"
)

const carColumns = `id, model, brand, type, inventory, daily_fee`

type carRepository struct {
	db DBTX
}

func NewCarRepository(db DBTX) repository.CarRepository {
	return &carRepository{db: db}
}

func scanCar(row rowScanner) (*domain.Car, error) {
	c := &domain.Car{}
	var carType string
	if err := row.Scan(&c.ID, &c.Model, &c.Brand, &carType, &c.Inventory, &c.DailyFee); err != nil {
		return nil, err
	}
	c.Type = domain.CarType(carType)
	return c, nil
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (model, brand, type, inventory, daily_fee) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	logger.DatabaseCall("INSERT", "cars", "model", c.Model, "brand", c.Brand)
	err := r.db.QueryRowContext(ctx, query, c.Model, c.Brand, string(c.Type), c.Inventory, c.DailyFee).Scan(&c.ID)
	logger.DatabaseResult("INSERT", 1, err, "carID", c.ID)
	return err
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1 AND deleted = false`
	c, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("car %d: %w", id, domain.ErrNotFound)
	}
	return c, err
}

// List pages are zero-based.
func (r *carRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error) {
	offset := page * pageSize
	query := `SELECT ` + carColumns + ` FROM cars WHERE deleted = false ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cars := []domain.Car{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, 0, err
		}
		cars = append(cars, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM cars WHERE deleted = false`).Scan(&count); err != nil {
		return nil, 0, err
	}
	return cars, count, nil
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET model=$1, brand=$2, type=$3, inventory=$4, daily_fee=$5 WHERE id=$6 AND deleted = false`
	res, err := r.db.ExecContext(ctx, query, c.Model, c.Brand, string(c.Type), c.Inventory, c.DailyFee, c.ID)
	if err != nil {
		return err
	}
	return expectOne(res, "car", c.ID)
}

func (r *carRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cars SET deleted = true WHERE id = $1 AND deleted = false`, id)
	if err != nil {
		return err
	}
	return expectOne(res, "car", id)
}

func (r *carRepository) DecrementInventory(ctx context.Context, id int64) (*domain.Car, error) {
	query := `UPDATE cars SET inventory = inventory - 1 WHERE id = $1 AND deleted = false AND inventory > 0 RETURNING ` + carColumns
	logger.DatabaseCall("UPDATE", "cars.inventory - 1", "carID", id)
	c, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if err == nil {
		logger.DatabaseResult("UPDATE", 1, nil, "carID", id, "inventory", c.Inventory)
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("UPDATE", 0, err, "carID", id)
		return nil, err
	}

	// Nothing updated: either the car is gone or no unit is left.
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM cars WHERE id = $1 AND deleted = false)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("car %d: %w", id, domain.ErrNotFound)
	}
	return nil, fmt.Errorf("car %d: %w", id, domain.ErrOutOfInventory)
}

// IncrementInventory also applies to soft-deleted cars so that a rental
// can always be returned.
func (r *carRepository) IncrementInventory(ctx context.Context, id int64) (*domain.Car, error) {
	query := `UPDATE cars SET inventory = inventory + 1 WHERE id = $1 RETURNING ` + carColumns
	logger.DatabaseCall("UPDATE", "cars.inventory + 1", "carID", id)
	c, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("car %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "carID", id)
		return nil, err
	}
	logger.DatabaseResult("UPDATE", 1, nil, "carID", id, "inventory", c.Inventory)
	return c, nil
}
