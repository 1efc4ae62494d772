package orderrepo

import (
	"context"
	"errors"

	"fleetops/internal/adapters/out/docstore"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"

	pkgerrors "github.com/pkg/errors"
)

// Repository implements ports.OrderRepository over the orders collection.
type Repository struct {
	store   docstore.Store
	tracker changeTracker
}

// changeTracker collects written documents so they are announced once the
// unit of work commits.
type changeTracker interface {
	Track(change ports.Change)
}

// NewRepository creates an order repository.
func NewRepository(store docstore.Store, tracker changeTracker) *Repository {
	return &Repository{
		store:   store,
		tracker: tracker,
	}
}

// Add stores a new order.
func (r *Repository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	doc := docstore.Document{Collection: ports.CollectionOrders, ID: id, Fields: fromDomain(aggregate)}
	if err := r.store.Create(ctx, doc); err != nil {
		return errs.NewWriteFailureError(ports.CollectionOrders, id, err)
	}

	r.tracker.Track(ports.Change{Collection: ports.CollectionOrders, ID: id, Kind: ports.ChangeCreated})
	return nil
}

// UpdateAssignment writes the assignment fields as one partial update.
func (r *Repository) UpdateAssignment(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	if err := r.store.Update(ctx, ports.CollectionOrders, id, assignmentPatch(aggregate)); err != nil {
		return errs.NewWriteFailureError(ports.CollectionOrders, id, err)
	}

	r.tracker.Track(ports.Change{Collection: ports.CollectionOrders, ID: id, Kind: ports.ChangeUpdated})
	return nil
}

// Get retrieves an order by id.
func (r *Repository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	doc, err := r.store.Get(ctx, ports.CollectionOrders, id.String())
	if err != nil {
		if errors.Is(err, docstore.ErrDocumentNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("order", id.String(), err)
		}
		return nil, pkgerrors.Wrap(err, "get order")
	}

	return toDomain(doc)
}

// List returns orders newest first.
func (r *Repository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	q := docstore.Query{
		Collection: ports.CollectionOrders,
		OrderBy:    fieldTimestamp,
		Desc:       true,
		Limit:      filter.Limit,
	}
	if filter.Status != order.Unknown {
		q.Where = append(q.Where, docstore.Filter{Field: fieldStatus, Value: filter.Status.String()})
	}

	docs, err := r.store.Find(ctx, q)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list orders")
	}

	orders := make([]*order.Order, 0, len(docs))
	for _, doc := range docs {
		o, err := toDomain(doc)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "decode order %s", doc.ID)
		}
		orders = append(orders, o)
	}

	return orders, nil
}
