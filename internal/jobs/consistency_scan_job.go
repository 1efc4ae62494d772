package jobs

import (
	"context"
	"log/slog"

	"fleetops/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// ConsistencyScanJob periodically reports documents whose duplicated fields
// disagree. It only logs; nothing is repaired.
type ConsistencyScanJob struct {
	handler  queries.ScanConsistencyQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewConsistencyScanJob creates the scan job for the given cron schedule
// (with seconds).
func NewConsistencyScanJob(
	handler queries.ScanConsistencyQueryHandler,
	schedule string,
	logger *slog.Logger,
) *ConsistencyScanJob {
	return &ConsistencyScanJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "consistency_scan_job"),
	}
}

// Start schedules the scan.
func (j *ConsistencyScanJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Consistency scan failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Consistency scan job started", "schedule", j.schedule)
	return nil
}

// Run performs one scan and logs every finding as InconsistentStateWarning.
func (j *ConsistencyScanJob) Run(ctx context.Context) (queries.ScanConsistencyQueryResponse, error) {
	resp, err := j.handler.Handle(ctx, queries.NewScanConsistencyQuery())
	if err != nil {
		return resp, err
	}

	for _, f := range resp.Findings {
		j.logger.WarnContext(ctx, "InconsistentStateWarning",
			"collection", f.Collection,
			"id", f.DocumentID,
			"field", f.Field,
			"kept", f.Kept,
			"dropped", f.Dropped,
		)
	}
	j.logger.InfoContext(ctx, "Consistency scan finished",
		"orders", resp.OrdersScanned,
		"shippers", resp.ShippersScanned,
		"findings", len(resp.Findings),
	)
	return resp, nil
}

// Stop stops the schedule and waits for a running scan.
func (j *ConsistencyScanJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Consistency scan job stopped")
}
