package service

import (
	"context"
	"fmt"
	"strings"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/repository"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type carService struct {
	cars repository.CarRepository
}

func NewCarService(cars repository.CarRepository) CarService {
	return &carService{cars: cars}
}

func (s *carService) AddCar(ctx context.Context, car *domain.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}
	return s.cars.Create(ctx, car)
}

func (s *carService) GetCar(ctx context.Context, id int64) (*domain.Car, error) {
	return s.cars.GetByID(ctx, id)
}

func (s *carService) ListCars(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return s.cars.List(ctx, page, pageSize)
}

func (s *carService) UpdateCar(ctx context.Context, car *domain.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}
	return s.cars.Update(ctx, car)
}

func (s *carService) DeleteCar(ctx context.Context, id int64) error {
	return s.cars.SoftDelete(ctx, id)
}

func validateCar(car *domain.Car) error {
	switch {
	case strings.TrimSpace(car.Model) == "":
		return fmt.Errorf("%w: model is required", domain.ErrValidation)
	case strings.TrimSpace(car.Brand) == "":
		return fmt.Errorf("%w: brand is required", domain.ErrValidation)
	case car.Inventory < 0:
		return fmt.Errorf("%w: inventory must not be negative", domain.ErrValidation)
	case car.DailyFee.IsNegative():
		return fmt.Errorf("%w: daily fee must not be negative", domain.ErrValidation)
	}
	return nil
}
