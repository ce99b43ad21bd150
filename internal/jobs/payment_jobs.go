package jobs

import (
	"context"

	"carsharing-backend/internal/logger"
)

// ReconcilePendingPayments settles payments whose checkout completed but
// whose success callback never reached us.
func (jr *JobRunner) ReconcilePendingPayments() error {
	return jr.runWithRecovery(JobReconcilePayments, func(ctx context.Context) error {
		settled, err := jr.services.Payment.ReconcileOpenPayments(ctx)
		logger.Info("Reconciled open payments", "settled", settled)
		return err
	})
}
