package jobs

import (
	"context"

	"carsharing-backend/internal/logger"
)

// NotifyOverdueRentals sends one digest of every rental still out past its
// return date.
func (jr *JobRunner) NotifyOverdueRentals() error {
	return jr.runWithRecovery(JobNotifyOverdueRentals, func(ctx context.Context) error {
		overdue, err := jr.services.Rental.ListOverdueRentals(ctx)
		if err != nil {
			return err
		}
		logger.Info("Found overdue rentals", "count", len(overdue))
		jr.services.Notification.NotifyOverdueDigest(overdue)
		return nil
	})
}
