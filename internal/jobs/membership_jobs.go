package jobs

import (
	"context"
	"time"

	"foundly-backend/internal/logger"
)

const reconcileSweepTimeout = 10 * time.Minute

// ReconcileMemberships runs a reconcile pass over every organization,
// repairing any one-sided membership edges. A consistent database makes this
// a pure read sweep.
func (jr *JobRunner) ReconcileMemberships() {
	jr.runWithRecovery("ReconcileMemberships", func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileSweepTimeout)
		defer cancel()

		orgs, err := jr.store.OrganizationRepository.List(ctx)
		if err != nil {
			logger.Error("Reconcile sweep could not list organizations", "error", err)
			return
		}

		repaired := 0
		for _, org := range orgs {
			report, err := jr.services.Membership.Reconcile(ctx, org.ID)
			if err != nil {
				logger.Error("Reconcile failed for organization", "org_id", org.ID, "error", err)
				continue
			}
			repaired += report.Repaired()
		}
		logger.Info("Reconcile sweep finished", "organizations", len(orgs), "edges_repaired", repaired)
	})
}
