//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carsharing-backend/internal/config"
	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/repository"
	"carsharing-backend/internal/repository/filter"
	"carsharing-backend/internal/repository/postgres"
)

var configPath = flag.String("config", "../../../config/config.test.yaml", "path to config file")

func prepareDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg, err := config.Load(*configPath)
	require.NoError(t, err)

	var db *sql.DB
	// Retry as the database might still be starting up
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err == nil {
			if err = db.Ping(); err == nil {
				break
			}
		}
		time.Sleep(2 * time.Second)
	}
	require.NoError(t, err, "failed to connect to database")

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	_, err = db.Exec(`TRUNCATE payments, rentals, cars, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return db
}

func TestIntegration_ConcurrentBookingsNeverOversell(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()
	ctx := context.Background()
	store := postgres.NewStore(db)

	user := &domain.User{Email: "it@example.com", FirstName: "I", LastName: "T", PasswordHash: "x", Role: domain.RoleCustomer}
	require.NoError(t, store.Users().Create(ctx, user))
	car := &domain.Car{Model: "Golf", Brand: "VW", Type: domain.CarTypeHatchback, Inventory: 3, DailyFee: decimal.NewFromInt(10)}
	require.NoError(t, store.Cars().Create(ctx, car))

	const attempts = 12
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		booked   int
		rejected int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.WithTx(ctx, func(uow repository.UnitOfWork) error {
				if _, err := uow.Cars().DecrementInventory(ctx, car.ID); err != nil {
					return err
				}
				return uow.Rentals().Create(ctx, &domain.Rental{
					RentalDate: day("2024-08-01"), ReturnDate: day("2024-08-05"), CarID: car.ID, UserID: user.ID,
				})
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				booked++
			} else if errors.Is(err, domain.ErrOutOfInventory) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, booked)
	assert.Equal(t, attempts-3, rejected)
	got, err := store.Cars().GetByID(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(0), got.Inventory)
}

func TestIntegration_FilterByUserAndActive(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()
	ctx := context.Background()
	store := postgres.NewStore(db)

	car := &domain.Car{Model: "X5", Brand: "BMW", Type: domain.CarTypeSUV, Inventory: 10, DailyFee: decimal.NewFromInt(90)}
	require.NoError(t, store.Cars().Create(ctx, car))

	var users []*domain.User
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		u := &domain.User{Email: email, FirstName: "F", LastName: "L", PasswordHash: "x", Role: domain.RoleCustomer}
		require.NoError(t, store.Users().Create(ctx, u))
		users = append(users, u)
	}
	for _, u := range users {
		require.NoError(t, store.Rentals().Create(ctx, &domain.Rental{
			RentalDate: day("2024-08-01"), ReturnDate: day("2024-08-10"), CarID: car.ID, UserID: u.ID,
		}))
	}
	require.NoError(t, store.Rentals().MarkReturned(ctx, 1, day("2024-08-03")))

	today := func() time.Time { return day("2024-08-05") }
	builder, err := filter.NewRentalFilterBuilder(filter.DefaultRegistry(today))
	require.NoError(t, err)

	f, err := builder.Build(filter.RentalSearchParams{UserIDs: []string{"[1", "3]"}})
	require.NoError(t, err)
	rentals, err := store.Rentals().List(ctx, f)
	require.NoError(t, err)
	require.Len(t, rentals, 2)
	assert.ElementsMatch(t, []int64{users[0].ID, users[2].ID}, []int64{rentals[0].UserID, rentals[1].UserID})

	active := true
	f, err = builder.Build(filter.RentalSearchParams{IsActive: &active})
	require.NoError(t, err)
	rentals, err = store.Rentals().List(ctx, f)
	require.NoError(t, err)
	assert.Len(t, rentals, 2)
	for _, r := range rentals {
		assert.Nil(t, r.ActualReturnDate)
	}
}
