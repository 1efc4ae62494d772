package jobs

import (
	"context"
	"log/slog"

	"fleetops/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StatsWarmupJob recomputes the cached dashboard stats so the first viewer
// after a quiet period does not pay for the aggregation.
type StatsWarmupJob struct {
	handler  queries.GetDashboardStatsQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatsWarmupJob creates the warmup job for the given cron schedule
// (with seconds).
func NewStatsWarmupJob(handler queries.GetDashboardStatsQueryHandler, schedule string, logger *slog.Logger) *StatsWarmupJob {
	return &StatsWarmupJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "stats_warmup_job"),
	}
}

// Start schedules the warmup.
func (j *StatsWarmupJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stats warmup failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stats warmup job started", "schedule", j.schedule)
	return nil
}

// Run recomputes the stats once.
func (j *StatsWarmupJob) Run(ctx context.Context) error {
	_, err := j.handler.Refresh(ctx)
	return err
}

// Stop stops the schedule and waits for a running warmup.
func (j *StatsWarmupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stats warmup job stopped")
}
