package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/service"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("Toggle Role", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Role: domain.RoleCustomer}, nil)
		users.On("UpdateRole", ctx, int64(3), domain.RoleManager).Return(nil)

		u, err := service.NewUserService(users).ToggleRole(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleManager, u.Role)
	})

	t.Run("Update Profile", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, FirstName: "A", LastName: "B"}, nil)
		users.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.FirstName == "Ann" && u.LastName == "Lee"
		})).Return(nil)

		u, err := service.NewUserService(users).UpdateProfile(ctx, 3, " Ann ", "Lee")
		require.NoError(t, err)
		assert.Equal(t, "Ann", u.FirstName)
	})

	t.Run("Update Profile Requires Names", func(t *testing.T) {
		_, err := service.NewUserService(new(MockUserRepo)).UpdateProfile(ctx, 3, "", "Lee")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCarService(t *testing.T) {
	ctx := context.Background()

	t.Run("List Clamps Page Size", func(t *testing.T) {
		cars := new(MockCarRepo)
		cars.On("List", ctx, int32(0), int32(service.MaxPageSize)).Return([]domain.Car{}, int32(0), nil)

		_, _, err := service.NewCarService(cars).ListCars(ctx, -1, 1000)
		require.NoError(t, err)
		cars.AssertExpectations(t)
	})

	t.Run("List Defaults Page Size", func(t *testing.T) {
		cars := new(MockCarRepo)
		cars.On("List", ctx, int32(2), int32(service.DefaultPageSize)).Return([]domain.Car{{ID: 1}}, int32(41), nil)

		got, total, err := service.NewCarService(cars).ListCars(ctx, 2, 0)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, int32(41), total)
	})

	t.Run("Add Rejects Negative Inventory", func(t *testing.T) {
		err := service.NewCarService(new(MockCarRepo)).AddCar(ctx, &domain.Car{
			Model: "Model 3", Brand: "Tesla", Inventory: -1, DailyFee: decimal.NewFromInt(50),
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Add", func(t *testing.T) {
		cars := new(MockCarRepo)
		car := &domain.Car{Model: "Model 3", Brand: "Tesla", Type: domain.CarTypeSedan, Inventory: 2, DailyFee: decimal.NewFromInt(50)}
		cars.On("Create", ctx, car).Return(nil)

		require.NoError(t, service.NewCarService(cars).AddCar(ctx, car))
	})
}

func TestInventoryLedger(t *testing.T) {
	ctx := context.Background()
	cars := newMemCars(map[int64]int32{1: 1})
	ledger := service.NewInventoryLedger(cars)

	car, err := ledger.DecrementOnBooking(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(0), car.Inventory)

	_, err = ledger.DecrementOnBooking(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrOutOfInventory)

	car, err = ledger.IncrementOnReturn(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), car.Inventory)
}
