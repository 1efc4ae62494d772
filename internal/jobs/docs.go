// Package jobs provides scheduled background tasks for the fleet service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// None of the jobs write to the store.
//
// # Available Jobs
//
// 1. ConsistencyScanJob - Logs orders with disagreeing duplicate stage fields and
// shippers whose status, currentOrder and the order's assignee disagree
// 2. StatsWarmupJob - Recomputes the cached dashboard stats
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(scanHandler, statsHandler, jobs.DefaultSchedules, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules take six fields, the first being seconds. A run that is still
// going when the next one is due causes that next run to be skipped.
//
// # Error Handling
//
// - Findings are logged as warnings, never returned as errors
// - Store failures are logged as errors and the job keeps its schedule
// - Failed job starts will stop any already running jobs
package jobs
