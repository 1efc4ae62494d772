// Package audit records operator actions in the logs collection and, when
// configured, on the audit stream.
package audit

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/metrics"

	"github.com/microcosm-cc/bluemonday"
)

const defaultTimeout = 5 * time.Second

var detailsSanitizer = sync.OnceValue(func() *bluemonday.Policy {
	return bluemonday.StrictPolicy()
})

// Stream receives a copy of every stored entry.
type Stream interface {
	Publish(ctx context.Context, entry *activity.Entry) error
}

// Recorder implements ports.ActivityLogger. Each call stores the entry in
// its own goroutine with a detached context bounded by the write timeout;
// failures are logged and dropped.
type Recorder struct {
	logs    ports.ActivityLogRepository
	stream  Stream
	logger  *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration
	now     func() time.Time

	wg sync.WaitGroup
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithStream also publishes entries to s.
func WithStream(s Stream) Option {
	return func(r *Recorder) { r.stream = s }
}

// WithMetrics counts dropped entries.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Recorder) { r.metrics = m }
}

// WithTimeout bounds each write.
func WithTimeout(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRecorder creates a recorder storing entries in logs.
func NewRecorder(logs ports.ActivityLogRepository, logger *slog.Logger, opts ...Option) *Recorder {
	r := &Recorder{
		logs:    logs,
		logger:  logger.With("component", "audit"),
		timeout: defaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LogActivity implements ports.ActivityLogger.
func (r *Recorder) LogActivity(ctx context.Context, actor activity.Actor, event, details string) {
	clean := strings.TrimSpace(detailsSanitizer().Sanitize(details))

	entry, err := activity.NewEntry(kernel.NewID(), actor, event, clean, r.now().UTC())
	if err != nil {
		r.drop(ctx, event, err)
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		if err := r.logs.Add(writeCtx, entry); err != nil {
			r.drop(writeCtx, event, err)
			return
		}
		if r.stream != nil {
			if err := r.stream.Publish(writeCtx, entry); err != nil {
				r.logger.WarnContext(writeCtx, "audit stream publish failed", "event", event, "error", err)
			}
		}
	}()
}

// Wait blocks until in-flight writes finish or ctx is done.
func (r *Recorder) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) drop(ctx context.Context, event string, err error) {
	r.metrics.AuditDropped()
	r.logger.ErrorContext(ctx, "audit entry dropped", "event", event, "error", err)
}
