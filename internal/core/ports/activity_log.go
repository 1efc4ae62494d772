package ports

import (
	"context"

	"fleetops/internal/core/domain/model/activity"
)

// ActivityLogRepository stores audit entries.
type ActivityLogRepository interface {
	// Add stores an entry.
	Add(ctx context.Context, entry *activity.Entry) error

	// List returns entries newest first; limit zero means no limit.
	List(ctx context.Context, limit int) ([]*activity.Entry, error)
}

// ActivityLogger records audit events. Calls never block on storage and never
// fail: delivery problems are logged by the implementation and dropped.
type ActivityLogger interface {
	LogActivity(ctx context.Context, actor activity.Actor, event, details string)
}
