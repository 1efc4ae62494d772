package jobs

import (
	"fmt"
	"log/slog"

	"fleetops/internal/core/application/usecases/queries"
)

// Schedules are cron expressions with a leading seconds field.
type Schedules struct {
	ConsistencyScan string
	StatsWarmup     string
}

// DefaultSchedules scans every five minutes and warms the stats every 30 seconds.
var DefaultSchedules = Schedules{
	ConsistencyScan: "0 */5 * * * *",
	StatsWarmup:     "*/30 * * * * *",
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	consistencyScanJob *ConsistencyScanJob
	statsWarmupJob     *StatsWarmupJob
}

// NewJobManager creates a new job manager with all required jobs.
// Empty schedules fall back to DefaultSchedules.
func NewJobManager(
	scanHandler queries.ScanConsistencyQueryHandler,
	statsHandler queries.GetDashboardStatsQueryHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	if schedules.ConsistencyScan == "" {
		schedules.ConsistencyScan = DefaultSchedules.ConsistencyScan
	}
	if schedules.StatsWarmup == "" {
		schedules.StatsWarmup = DefaultSchedules.StatsWarmup
	}

	return &JobManager{
		consistencyScanJob: NewConsistencyScanJob(scanHandler, schedules.ConsistencyScan, logger),
		statsWarmupJob:     NewStatsWarmupJob(statsHandler, schedules.StatsWarmup, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.consistencyScanJob.Start(); err != nil {
		return fmt.Errorf("failed to start consistency scan job: %w", err)
	}

	if err := jm.statsWarmupJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.consistencyScanJob.Stop()
		return fmt.Errorf("failed to start stats warmup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statsWarmupJob.Stop()
	jm.consistencyScanJob.Stop()
}
