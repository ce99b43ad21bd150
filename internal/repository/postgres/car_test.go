package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/repository/postgres"
)

var carCols = []string{"id", "model", "brand", "type", "inventory", "daily_fee"}

func TestCarRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	car := &domain.Car{Model: "Model 3", Brand: "Tesla", Type: domain.CarTypeSedan, Inventory: 2, DailyFee: decimal.RequireFromString("49.90")}

	mock.ExpectQuery("INSERT INTO cars").
		WithArgs("Model 3", "Tesla", "SEDAN", int32(2), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err = repo.Create(context.Background(), car)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), car.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM cars WHERE id = \\$1 AND deleted = false").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(carCols).AddRow(1, "Golf", "VW", "HATCHBACK", 3, "10.00"))

		car, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.CarTypeHatchback, car.Type)
		assert.Equal(t, int32(3), car.Inventory)
		assert.True(t, decimal.NewFromInt(10).Equal(car.DailyFee))
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM cars").
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(carCols))

		_, err := repo.GetByID(ctx, 2)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCarRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM cars WHERE deleted = false ORDER BY id LIMIT").
		WithArgs(int32(20), int32(40)).
		WillReturnRows(sqlmock.NewRows(carCols).AddRow(41, "Golf", "VW", "HATCHBACK", 3, "10.00"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM cars")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

	cars, total, err := repo.List(context.Background(), 2, 20)
	assert.NoError(t, err)
	assert.Len(t, cars, 1)
	assert.Equal(t, int32(41), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_DecrementInventory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	ctx := context.Background()
	decrement := regexp.QuoteMeta("UPDATE cars SET inventory = inventory - 1 WHERE id = $1 AND deleted = false AND inventory > 0")
	probe := regexp.QuoteMeta("SELECT EXISTS")

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(decrement).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(carCols).AddRow(1, "Golf", "VW", "HATCHBACK", 0, "10.00"))

		car, err := repo.DecrementInventory(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), car.Inventory)
	})

	t.Run("Out of inventory", func(t *testing.T) {
		mock.ExpectQuery(decrement).WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows(carCols))
		mock.ExpectQuery(probe).WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := repo.DecrementInventory(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrOutOfInventory)
	})

	t.Run("Unknown car", func(t *testing.T) {
		mock.ExpectQuery(decrement).WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(carCols))
		mock.ExpectQuery(probe).WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.DecrementInventory(ctx, 9)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_SoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE cars SET deleted = true").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.SoftDelete(ctx, 1))

	mock.ExpectExec("UPDATE cars SET deleted = true").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SoftDelete(ctx, 1), domain.ErrNotFound)
}
