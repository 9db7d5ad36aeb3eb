package tasks

import (
	"context"
	"fmt"
	"time"
)

// newDBMaintenanceTask creates the scheduled task that vacuums the database
// and prunes price snapshots past the retention window.
func newDBMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", TaskDBMaintenance)

	return func(ctx context.Context) error {
		start := time.Now()

		cutoff := time.Now().Add(-deps.Config.Route.SnapshotRetention)
		pruned, err := deps.Store.PruneSnapshots(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("pruning snapshots: %w", err)
		}

		if err := deps.Store.RunMaintenance(ctx); err != nil {
			return fmt.Errorf("database maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "Database maintenance completed",
			"snapshots_pruned", pruned, "duration", time.Since(start))
		return nil
	}
}
