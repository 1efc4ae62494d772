package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/guard"

	"golang.org/x/text/cases"
)

var ErrListActivityLogsQueryIsNotConstructed = errors.New(
	"ListActivityLogsQuery must be created via NewListActivityLogsQuery constructor",
)

// ListActivityLogsQuery reads the audit log.
type ListActivityLogsQuery struct {
	tab    activity.Tab
	search string
	limit  int
	guard  guard.ConstructorGuard
}

// NewListActivityLogsQuery builds the query. tab is "admin", "field" or empty;
// search matches email, event or details ignoring case; limit 0 means all.
func NewListActivityLogsQuery(tab, search string, limit int) ListActivityLogsQuery {
	if limit < 0 {
		limit = 0
	}
	return ListActivityLogsQuery{
		tab:    activity.ParseTab(tab),
		search: strings.TrimSpace(search),
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q ListActivityLogsQuery) Validate() error {
	return q.guard.Validate(ErrListActivityLogsQueryIsNotConstructed)
}

// ActivityLogView is one audit entry.
type ActivityLogView struct {
	ID        string
	UserID    string
	UserEmail string
	Role      string
	Event     string
	Details   string
	Status    string
	At        time.Time
}

// ListActivityLogsQueryHandler filters the audit log.
type ListActivityLogsQueryHandler struct {
	logs ports.ActivityLogRepository
}

// NewListActivityLogsQueryHandler creates the handler.
func NewListActivityLogsQueryHandler(logs ports.ActivityLogRepository) ListActivityLogsQueryHandler {
	return ListActivityLogsQueryHandler{logs: logs}
}

// Handle executes the query. Entries are newest first.
func (h ListActivityLogsQueryHandler) Handle(ctx context.Context, query ListActivityLogsQuery) ([]ActivityLogView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries, err := h.logs.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(query.search)

	out := make([]ActivityLogView, 0)
	for _, e := range entries {
		if !query.tab.Includes(e) {
			continue
		}
		if needle != "" && !matchesAny(fold, needle, e.Actor().Email, e.Event(), e.Details()) {
			continue
		}
		out = append(out, ActivityLogView{
			ID:        e.ID().String(),
			UserID:    e.Actor().ID,
			UserEmail: e.Actor().Email,
			Role:      e.Actor().Role.String(),
			Event:     e.Event(),
			Details:   e.Details(),
			Status:    e.Status(),
			At:        e.At(),
		})
		if query.limit > 0 && len(out) == query.limit {
			break
		}
	}

	return out, nil
}

// matchesAny reports whether any field contains needle after case folding.
func matchesAny(fold cases.Caser, needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}
