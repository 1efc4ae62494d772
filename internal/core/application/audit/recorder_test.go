package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"fleetops/internal/core/application/audit"
	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logStore struct {
	mu      sync.Mutex
	entries []*activity.Entry
	err     error
}

func (s *logStore) Add(_ context.Context, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *logStore) List(context.Context, int) ([]*activity.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*activity.Entry(nil), s.entries...), nil
}

type stream struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (s *stream) Publish(_ context.Context, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, entry.Event())
	return s.err
}

var admin = activity.Actor{ID: "A1", Email: "ops@fleet.io", Role: shipper.RoleAdmin}

func wait(t *testing.T, r *audit.Recorder) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.Wait(ctx))
}

func TestRecorder_StoresAndStreams(t *testing.T) {
	// Given
	logs := &logStore{}
	out := &stream{}
	r := audit.NewRecorder(logs, slog.Default(), audit.WithStream(out))

	// When
	r.LogActivity(context.Background(), admin, activity.EventMissionAssigned, "Order O1 assigned to Lan")
	wait(t, r)

	// Then
	entries, _ := logs.List(context.Background(), 0)
	require.Len(t, entries, 1)
	assert.Equal(t, "Order O1 assigned to Lan", entries[0].Details())
	assert.Equal(t, admin, entries[0].Actor())
	assert.Equal(t, []string{activity.EventMissionAssigned}, out.published)
}

func TestRecorder_SanitizesDetails(t *testing.T) {
	logs := &logStore{}
	r := audit.NewRecorder(logs, slog.Default())

	r.LogActivity(context.Background(), admin, activity.EventDashboardAction, `Triggered: <script>alert(1)</script><b>Export</b>`)
	wait(t, r)

	entries, _ := logs.List(context.Background(), 0)
	require.Len(t, entries, 1)
	assert.Equal(t, "Triggered: Export", entries[0].Details())
}

func TestRecorder_SurvivesCanceledRequest(t *testing.T) {
	logs := &logStore{}
	r := audit.NewRecorder(logs, slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r.LogActivity(ctx, admin, activity.EventMissionRevoked, "Removed Lan from Order O1")
	wait(t, r)

	entries, _ := logs.List(context.Background(), 0)
	assert.Len(t, entries, 1)
}

func TestRecorder_DropsFailures(t *testing.T) {
	t.Run("store_failure_is_counted", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		out := &stream{}
		r := audit.NewRecorder(&logStore{err: errors.New("store down")}, slog.Default(),
			audit.WithMetrics(m), audit.WithStream(out))

		r.LogActivity(context.Background(), admin, activity.EventMissionAssigned, "Order O1 assigned to Lan")
		wait(t, r)

		expected := `
# HELP fleetops_audit_dropped_total Audit entries that could not be stored.
# TYPE fleetops_audit_dropped_total counter
fleetops_audit_dropped_total 1
`
		require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "fleetops_audit_dropped_total"))
		assert.Empty(t, out.published)
	})

	t.Run("invalid_entry_is_dropped", func(t *testing.T) {
		logs := &logStore{}
		r := audit.NewRecorder(logs, slog.Default())

		r.LogActivity(context.Background(), admin, "  ", "no event")
		wait(t, r)

		entries, _ := logs.List(context.Background(), 0)
		assert.Empty(t, entries)
	})

	t.Run("stream_failure_keeps_stored_entry", func(t *testing.T) {
		logs := &logStore{}
		r := audit.NewRecorder(logs, slog.Default(), audit.WithStream(&stream{err: errors.New("broker down")}))

		r.LogActivity(context.Background(), admin, activity.EventShipperLocked, "Locked Lan")
		wait(t, r)

		entries, _ := logs.List(context.Background(), 0)
		assert.Len(t, entries, 1)
	})
}
