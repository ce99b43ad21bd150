package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/metrics"
	"carsharing-backend/internal/payment"
	"carsharing-backend/internal/repository"
	"carsharing-backend/internal/repository/filter"
)

const (
	MsgPaymentSuccessful   = "Payment successful! Thank you for your payment."
	MsgPaymentNotCompleted = "Payment is not completed yet. Please try again later."
	MsgPaymentPaused       = "Payment paused. You can resume your payment later."
	MsgPaymentAlreadyPaid  = "Payment has been paid. Thank you for your payment."
)

// PaymentSettings configures checkout sessions.
type PaymentSettings struct {
	Domain   string // public base URL for the success/cancel callbacks
	Currency string
	Retry    payment.RetryPolicy
}

type paymentService struct {
	store    repository.Store
	provider payment.Provider
	filters  *filter.PaymentFilterBuilder
	notifier NotificationService
	metrics  *metrics.Metrics
	settings PaymentSettings
}

func NewPaymentService(
	store repository.Store,
	provider payment.Provider,
	filters *filter.PaymentFilterBuilder,
	notifier NotificationService,
	m *metrics.Metrics,
	settings PaymentSettings,
) PaymentService {
	return &paymentService{
		store:    store,
		provider: provider,
		filters:  filters,
		notifier: notifier,
		metrics:  m,
		settings: settings,
	}
}

// CreatePaymentSession charges daily fee times the number of days between
// the rental and return dates. The payment row is written only after the
// provider opened the session. No connection is held during the provider
// call.
func (s *paymentService) CreatePaymentSession(ctx context.Context, user *domain.User, rentalID int64) (*domain.Payment, error) {
	const method = "PaymentService.CreatePaymentSession"
	logger.EnterMethod(method, "userID", user.ID, "rentalID", rentalID)

	created, err := s.openSession(ctx, rentalID)
	if err != nil {
		logger.ExitMethodWithError(method, err, "rentalID", rentalID)
		return nil, fmt.Errorf("create payment session for rental %d: %w", rentalID, err)
	}

	s.metrics.PaymentSessionCreated()
	logger.ExitMethod(method, "paymentID", created.ID, "sessionID", created.SessionID)
	return created, nil
}

func (s *paymentService) openSession(ctx context.Context, rentalID int64) (*domain.Payment, error) {
	rental, err := s.store.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	car, err := s.store.Cars().GetByID(ctx, rental.CarID)
	if err != nil {
		return nil, err
	}

	days := rental.BillableDays()
	if days <= 0 {
		return nil, fmt.Errorf("%w: rental %d has no billable days", domain.ErrValidation, rental.ID)
	}
	amount := car.DailyFee.Mul(decimal.NewFromInt(days))

	successURL, cancelURL := payment.CallbackURLs(s.settings.Domain)
	reference := strconv.FormatInt(rental.ID, 10)
	start := time.Now()
	session, err := s.provider.CreateSession(ctx, payment.SessionRequest{
		AmountMinor:       payment.ToMinorUnits(amount),
		Currency:          s.settings.Currency,
		ProductName:       "Payment for: " + reference,
		SuccessURL:        successURL,
		CancelURL:         cancelURL,
		ClientReferenceID: reference,
	})
	s.metrics.ObserveProvider("create_session", err, time.Since(start))
	if err != nil {
		return nil, providerFailure(err)
	}

	created := &domain.Payment{
		Status:      domain.PaymentStatusPending,
		Type:        domain.PaymentTypePayment,
		RentalID:    rental.ID,
		SessionURL:  session.URL,
		SessionID:   session.ID,
		AmountToPay: amount,
	}
	if err := s.store.Payments().Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *paymentService) CheckPaymentSuccess(ctx context.Context, sessionID string) (string, error) {
	status, err := s.fetchStatus(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("check payment success for session %s: %w", sessionID, err)
	}
	return s.ApplySuccess(ctx, sessionID, status)
}

func (s *paymentService) PausePayment(ctx context.Context, sessionID string) (string, error) {
	status, err := s.fetchStatus(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("pause payment for session %s: %w", sessionID, err)
	}
	return s.ApplyPause(ctx, sessionID, status)
}

// ApplySuccess marks the payment PAID when the session is complete. Calling
// it again for a PAID payment confirms without side effects.
func (s *paymentService) ApplySuccess(ctx context.Context, sessionID string, status payment.SessionStatus) (string, error) {
	if status != payment.StatusComplete {
		return MsgPaymentNotCompleted, nil
	}

	current, err := s.store.Payments().GetBySessionID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if current.Status == domain.PaymentStatusPaid {
		return MsgPaymentSuccessful, nil
	}

	updated, changed, err := s.store.Payments().UpdateStatus(ctx, sessionID, domain.PaymentStatusPaid)
	if err != nil {
		return "", fmt.Errorf("mark session %s paid: %w", sessionID, err)
	}
	if !changed {
		// settled by a concurrent callback
		return MsgPaymentSuccessful, nil
	}
	s.metrics.PaymentStatusApplied(string(domain.PaymentStatusPaid))
	s.notifier.NotifySuccessfulPayment(updated)
	logger.Info("Payment settled", "paymentID", updated.ID, "sessionID", sessionID, "amount", updated.AmountToPay.StringFixed(2))
	return MsgPaymentSuccessful, nil
}

// ApplyPause moves an open session's payment to PAUSED. A PAID payment is
// never paused.
func (s *paymentService) ApplyPause(ctx context.Context, sessionID string, status payment.SessionStatus) (string, error) {
	switch status {
	case payment.StatusOpen:
		current, err := s.store.Payments().GetBySessionID(ctx, sessionID)
		if err != nil {
			return "", err
		}
		if !current.CanTransitionTo(domain.PaymentStatusPaused) {
			return MsgPaymentAlreadyPaid, nil
		}
		_, changed, err := s.store.Payments().UpdateStatus(ctx, sessionID, domain.PaymentStatusPaused)
		if err != nil {
			return "", fmt.Errorf("pause session %s: %w", sessionID, err)
		}
		if !changed {
			return MsgPaymentAlreadyPaid, nil
		}
		s.metrics.PaymentStatusApplied(string(domain.PaymentStatusPaused))
		return MsgPaymentPaused, nil
	case payment.StatusComplete:
		return MsgPaymentAlreadyPaid, nil
	default:
		return MsgPaymentNotCompleted, nil
	}
}

// ListPayments reports domain.ErrNotFound when nothing matches.
func (s *paymentService) ListPayments(ctx context.Context, params filter.PaymentSearchParams) ([]domain.Payment, error) {
	f, err := s.filters.Build(params)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.Payments().List(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, fmt.Errorf("no payments match the search: %w", domain.ErrNotFound)
	}
	return payments, nil
}

// ReconcileOpenPayments settles every PENDING or PAUSED payment whose
// session the provider reports complete, returning how many were settled.
func (s *paymentService) ReconcileOpenPayments(ctx context.Context) (int, error) {
	open, err := s.store.Payments().ListByStatuses(ctx, domain.PaymentStatusPending, domain.PaymentStatusPaused)
	if err != nil {
		return 0, fmt.Errorf("list open payments: %w", err)
	}

	settled := 0
	var errs []error
	for _, p := range open {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		status, err := s.fetchStatus(ctx, p.SessionID)
		if err != nil {
			errs = append(errs, fmt.Errorf("payment %d: %w", p.ID, err))
			continue
		}
		if status != payment.StatusComplete {
			continue
		}
		if _, err := s.ApplySuccess(ctx, p.SessionID, status); err != nil {
			errs = append(errs, fmt.Errorf("payment %d: %w", p.ID, err))
			continue
		}
		settled++
	}
	return settled, errors.Join(errs...)
}

func (s *paymentService) fetchStatus(ctx context.Context, sessionID string) (payment.SessionStatus, error) {
	start := time.Now()
	status, err := payment.FetchStatus(ctx, s.provider, sessionID, s.settings.Retry)
	s.metrics.ObserveProvider("retrieve_session", err, time.Since(start))
	if err != nil {
		return "", providerFailure(err)
	}
	return status, nil
}

func providerFailure(err error) error {
	if errors.Is(err, domain.ErrPaymentProvider) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPaymentProvider, err)
}
