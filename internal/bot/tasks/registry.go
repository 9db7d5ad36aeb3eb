package tasks

import (
	"context"
)

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// Task names, matching the keys used in the scheduler config section.
const (
	TaskPriceCheck    = "price_check"
	TaskDBMaintenance = "db_maintenance"
)

// RegisterAllTasks initializes and returns a map of all registered scheduled
// tasks, keyed by the identifiers used in config.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		TaskPriceCheck:    newPriceCheckTask(deps),
		TaskDBMaintenance: newDBMaintenanceTask(deps),
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
