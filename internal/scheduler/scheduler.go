package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"carsharing-backend/internal/config"
	"carsharing-backend/internal/jobs"
	"carsharing-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler registers every job from cfg. A malformed cron expression is
// returned as an error.
func NewScheduler(jobRunner *jobs.JobRunner, cfg config.SchedulerConfig) (*Scheduler, error) {
	// UTC with seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}
	if err := s.registerJobs(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs(cfg config.SchedulerConfig) error {
	entries := []struct {
		name string
		cron string
		run  func() error
	}{
		{jobs.JobNotifyOverdueRentals, cfg.NotifyOverdueRentals, s.jobs.NotifyOverdueRentals},
		{jobs.JobReconcilePayments, cfg.ReconcilePendingPayments, s.jobs.ReconcilePendingPayments},
	}
	for _, e := range entries {
		run := e.run
		if _, err := s.cron.AddFunc(e.cron, func() { _ = run() }); err != nil {
			logger.Error("Failed to register job", "job", e.name, "schedule", e.cron, "error", err)
			return err
		}
		logger.Info("Registered job", "job", e.name, "schedule", e.cron)
	}
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
