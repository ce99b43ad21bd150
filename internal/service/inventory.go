package service

import (
	"context"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/repository"
)

// InventoryLedger adjusts a car's available units. It works on whatever
// CarRepository it is given, so inside a unit of work both operations join
// the caller's transaction and neither commits on its own.
type InventoryLedger struct {
	cars repository.CarRepository
}

func NewInventoryLedger(cars repository.CarRepository) *InventoryLedger {
	return &InventoryLedger{cars: cars}
}

// DecrementOnBooking takes one unit, failing with domain.ErrOutOfInventory
// at zero so inventory never goes negative.
func (l *InventoryLedger) DecrementOnBooking(ctx context.Context, carID int64) (*domain.Car, error) {
	return l.cars.DecrementInventory(ctx, carID)
}

func (l *InventoryLedger) IncrementOnReturn(ctx context.Context, carID int64) (*domain.Car, error) {
	return l.cars.IncrementInventory(ctx, carID)
}
