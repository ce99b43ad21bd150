package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carsharing-backend/internal/config"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/metrics"
	"carsharing-backend/internal/service"
)

const (
	JobNotifyOverdueRentals = "notify-overdue-rentals"
	JobReconcilePayments    = "reconcile-payments"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
	metrics  *metrics.Metrics
	timeout  time.Duration
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Rental       service.RentalService
	Payment      service.PaymentService
	Notification service.NotificationService
}

func NewJobRunner(services *Services, cfg *config.Config, m *metrics.Metrics) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
		metrics:  m,
		timeout:  5 * time.Minute,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery runs a job with a bounded context and turns a panic into
// a logged failure.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
		jr.metrics.JobRun(jobName, err)
		logger.JobFinished(jobName, time.Since(start), err)
	}()

	logger.JobStarted(jobName)
	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()
	return jobFunc(ctx)
}

// Run executes one job by name.
func (jr *JobRunner) Run(jobName string) error {
	switch jobName {
	case JobNotifyOverdueRentals:
		return jr.NotifyOverdueRentals()
	case JobReconcilePayments:
		return jr.ReconcilePendingPayments()
	case "all":
		return errors.Join(jr.NotifyOverdueRentals(), jr.ReconcilePendingPayments())
	default:
		return fmt.Errorf("unknown job %q", jobName)
	}
}
