// Package logrepo stores audit entries in the logs collection.
package logrepo

import (
	"context"

	"fleetops/internal/adapters/out/docstore"
	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"

	"github.com/pkg/errors"
)

const (
	fieldUserID    = "userId"
	fieldUserEmail = "userEmail"
	fieldRole      = "role"
	fieldEvent     = "event"
	fieldDetails   = "details"
	fieldTimestamp = "timestamp"
	fieldStatus    = "status"
)

// Repository implements ports.ActivityLogRepository. Entries are written
// straight to the store and announced on publisher.
type Repository struct {
	store     docstore.Store
	publisher ports.ChangePublisher
}

// NewRepository creates a log repository. publisher may be nil.
func NewRepository(store docstore.Store, publisher ports.ChangePublisher) *Repository {
	return &Repository{store: store, publisher: publisher}
}

// Add stores an entry.
func (r *Repository) Add(ctx context.Context, entry *activity.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	id := entry.ID().String()
	doc := docstore.Document{
		Collection: ports.CollectionLogs,
		ID:         id,
		Fields: docstore.Fields{
			fieldUserID:    entry.Actor().ID,
			fieldUserEmail: entry.Actor().Email,
			fieldRole:      entry.Actor().Role.String(),
			fieldEvent:     entry.Event(),
			fieldDetails:   entry.Details(),
			fieldTimestamp: docstore.FormatTime(entry.At()),
			fieldStatus:    entry.Status(),
		},
	}
	if err := r.store.Create(ctx, doc); err != nil {
		return errs.NewWriteFailureError(ports.CollectionLogs, id, err)
	}

	if r.publisher != nil {
		change := ports.Change{Collection: ports.CollectionLogs, ID: id, Kind: ports.ChangeCreated}
		if err := r.publisher.Publish(ctx, change); err != nil {
			return errors.Wrap(err, "announce log entry")
		}
	}
	return nil
}

// List returns entries newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]*activity.Entry, error) {
	docs, err := r.store.Find(ctx, docstore.Query{
		Collection: ports.CollectionLogs,
		OrderBy:    fieldTimestamp,
		Desc:       true,
		Limit:      limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "list logs")
	}

	entries := make([]*activity.Entry, 0, len(docs))
	for _, doc := range docs {
		f := doc.Fields
		id, _ := kernel.IDFromString(doc.ID)
		actor := activity.Actor{
			ID:    f.String(fieldUserID),
			Email: f.String(fieldUserEmail),
			Role:  shipper.ParseRole(f.String(fieldRole)),
		}
		e, err := activity.RestoreEntry(id, actor, f.String(fieldEvent), f.String(fieldDetails),
			docstore.ParseTime(f[fieldTimestamp]), f.String(fieldStatus))
		if err != nil {
			return nil, errors.Wrapf(err, "decode log %s", doc.ID)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
