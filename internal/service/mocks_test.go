package service_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/payment"
	"carsharing-backend/internal/repository"
	"carsharing-backend/internal/repository/filter"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Car), args.Get(1).(int32), args.Error(2)
}
func (m *MockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCarRepo) DecrementInventory(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) IncrementInventory(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) MarkReturned(ctx context.Context, id int64, returnedOn time.Time) error {
	args := m.Called(ctx, id, returnedOn)
	return args.Error(0)
}
func (m *MockRentalRepo) List(ctx context.Context, f filter.Filter) ([]domain.Rental, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListOverdue(ctx context.Context, today time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetBySessionID(ctx context.Context, sessionID string) (*domain.Payment, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) UpdateStatus(ctx context.Context, sessionID string, status domain.PaymentStatus) (*domain.Payment, bool, error) {
	args := m.Called(ctx, sessionID, status)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Bool(1), args.Error(2)
}
func (m *MockPaymentRepo) List(ctx context.Context, f filter.Filter) ([]domain.Payment, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByStatuses(ctx context.Context, statuses ...domain.PaymentStatus) ([]domain.Payment, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// fakeStore runs fn directly on its own repositories. WithTx reports
// fn's error but does not roll anything back.
type fakeStore struct {
	users    repository.UserRepository
	cars     repository.CarRepository
	rentals  repository.RentalRepository
	payments repository.PaymentRepository
	txCount  atomic.Int32
}

func (s *fakeStore) Users() repository.UserRepository       { return s.users }
func (s *fakeStore) Cars() repository.CarRepository         { return s.cars }
func (s *fakeStore) Rentals() repository.RentalRepository   { return s.rentals }
func (s *fakeStore) Payments() repository.PaymentRepository { return s.payments }

func (s *fakeStore) WithTx(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	s.txCount.Add(1)
	return fn(s)
}

// MockProvider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}
func (m *MockProvider) RetrieveSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewRental(r *domain.Rental)            { m.Called(r) }
func (m *MockNotifier) NotifyOverdueRental(r *domain.Rental)        { m.Called(r) }
func (m *MockNotifier) NotifyOverdueDigest(rentals []domain.Rental) { m.Called(rentals) }
func (m *MockNotifier) NotifySuccessfulPayment(p *domain.Payment)   { m.Called(p) }

// recordingDispatcher keeps every dispatched message in order.
type recordingDispatcher struct {
	mu       sync.Mutex
	channels []string
	messages []string
}

func (d *recordingDispatcher) Dispatch(channelID, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.channels = append(d.channels, channelID)
	d.messages = append(d.messages, message)
}

// memCars is a concurrency-safe car repository holding inventory only.
type memCars struct {
	MockCarRepo
	mu        sync.Mutex
	inventory map[int64]int32
}

func newMemCars(inv map[int64]int32) *memCars {
	return &memCars{inventory: inv}
}

func (c *memCars) DecrementInventory(ctx context.Context, id int64) (*domain.Car, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.inventory[id]
	if !ok {
		return nil, fmt.Errorf("car %d: %w", id, domain.ErrNotFound)
	}
	if n <= 0 {
		return nil, fmt.Errorf("car %d: %w", id, domain.ErrOutOfInventory)
	}
	c.inventory[id] = n - 1
	return &domain.Car{ID: id, Inventory: n - 1}, nil
}

func (c *memCars) IncrementInventory(ctx context.Context, id int64) (*domain.Car, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.inventory[id]
	if !ok {
		return nil, fmt.Errorf("car %d: %w", id, domain.ErrNotFound)
	}
	c.inventory[id] = n + 1
	return &domain.Car{ID: id, Inventory: n + 1}, nil
}

func (c *memCars) available(id int64) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inventory[id]
}

// memRentals assigns ids and records created rentals.
type memRentals struct {
	MockRentalRepo
	mu      sync.Mutex
	nextID  int64
	created []domain.Rental
}

func (r *memRentals) Create(ctx context.Context, rental *domain.Rental) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rental.ID = r.nextID
	r.created = append(r.created, *rental)
	return nil
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedClock(s string) func() time.Time {
	t := day(s).Add(10 * time.Hour)
	return func() time.Time { return t }
}
