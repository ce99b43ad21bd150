// Package app assembles the services shared by the API server and the
// cronjob runner.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"carsharing-backend/internal/config"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/metrics"
	"carsharing-backend/internal/notify"
	"carsharing-backend/internal/payment"
	"carsharing-backend/internal/repository/filter"
	"carsharing-backend/internal/repository/postgres"
	"carsharing-backend/internal/security"
	"carsharing-backend/internal/service"
)

type App struct {
	Store        *postgres.Store
	Metrics      *metrics.Metrics
	Tokens       security.TokenManager
	Dispatcher   *notify.Dispatcher
	MockProvider *payment.MockProvider // nil unless the mock provider is configured

	Auth         service.AuthService
	Users        service.UserService
	Cars         service.CarService
	Rentals      service.RentalService
	Payments     service.PaymentService
	Notification service.NotificationService
}

func New(ctx context.Context, cfg *config.Config, db *sql.DB, m *metrics.Metrics) (*App, error) {
	store := postgres.NewStore(db)

	sink, err := notify.NewSink(ctx, cfg.Notification)
	if err != nil {
		return nil, fmt.Errorf("notification sink: %w", err)
	}
	logger.Info("Notification sink ready", "sink", cfg.Notification.Sink)
	dispatcher := notify.NewDispatcher(sink, cfg.Notification.Workers, cfg.Notification.QueueSize, cfg.NotificationTimeout())

	provider, mockProvider, err := payment.NewProvider(cfg.Payment, cfg.PaymentTimeout())
	if err != nil {
		dispatcher.Close()
		return nil, fmt.Errorf("payment provider: %w", err)
	}
	logger.Info("Payment provider ready", "provider", cfg.Payment.Provider)

	registry := filter.DefaultRegistry(time.Now)
	rentalFilters, err := filter.NewRentalFilterBuilder(registry)
	if err != nil {
		dispatcher.Close()
		return nil, err
	}
	paymentFilters, err := filter.NewPaymentFilterBuilder(registry)
	if err != nil {
		dispatcher.Close()
		return nil, err
	}

	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenExpiry())
	notifier := service.NewNotificationService(dispatcher, cfg.Notification.AdminChannel)

	return &App{
		Store:        store,
		Metrics:      m,
		Tokens:       tokens,
		Dispatcher:   dispatcher,
		MockProvider: mockProvider,
		Auth:         service.NewAuthService(store.Users(), tokens),
		Users:        service.NewUserService(store.Users()),
		Cars:         service.NewCarService(store.Cars()),
		Rentals:      service.NewRentalService(store, rentalFilters, notifier, m, time.Now),
		Payments: service.NewPaymentService(store, provider, paymentFilters, notifier, m, service.PaymentSettings{
			Domain:   cfg.Payment.Domain,
			Currency: cfg.Payment.Currency,
			Retry:    payment.RetryPolicyFrom(cfg.Payment),
		}),
		Notification: notifier,
	}, nil
}

// Close drains pending notifications.
func (a *App) Close() {
	a.Dispatcher.Close()
}
