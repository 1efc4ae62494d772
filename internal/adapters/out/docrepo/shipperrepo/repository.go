package shipperrepo

import (
	"context"
	"errors"

	"fleetops/internal/adapters/out/docstore"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"

	pkgerrors "github.com/pkg/errors"
)

// Repository implements ports.ShipperRepository over the users collection.
// Only accounts with role shipper are visible through it.
type Repository struct {
	store   docstore.Store
	tracker changeTracker
}

type changeTracker interface {
	Track(change ports.Change)
}

// NewRepository creates a shipper repository.
func NewRepository(store docstore.Store, tracker changeTracker) *Repository {
	return &Repository{
		store:   store,
		tracker: tracker,
	}
}

// Add stores a newly registered shipper.
func (r *Repository) Add(ctx context.Context, aggregate *shipper.Shipper) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	doc := docstore.Document{Collection: ports.CollectionUsers, ID: id, Fields: fromDomain(aggregate)}
	if err := r.store.Create(ctx, doc); err != nil {
		return errs.NewWriteFailureError(ports.CollectionUsers, id, err)
	}

	r.tracker.Track(ports.Change{Collection: ports.CollectionUsers, ID: id, Kind: ports.ChangeCreated})
	return nil
}

// UpdateAvailability writes status and currentOrder of the account with id.
func (r *Repository) UpdateAvailability(ctx context.Context, id kernel.ID, availability shipper.Availability) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.update(ctx, id.String(), availabilityPatch(availability))
}

// UpdateLock writes the locked flag.
func (r *Repository) UpdateLock(ctx context.Context, aggregate *shipper.Shipper) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.update(ctx, aggregate.ID().String(), docstore.Fields{fieldLocked: aggregate.Locked()})
}

func (r *Repository) update(ctx context.Context, id string, patch docstore.Fields) error {
	if err := r.store.Update(ctx, ports.CollectionUsers, id, patch); err != nil {
		return errs.NewWriteFailureError(ports.CollectionUsers, id, err)
	}

	r.tracker.Track(ports.Change{Collection: ports.CollectionUsers, ID: id, Kind: ports.ChangeUpdated})
	return nil
}

// Get retrieves a shipper by id.
func (r *Repository) Get(ctx context.Context, id kernel.ID) (*shipper.Shipper, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	doc, err := r.store.Get(ctx, ports.CollectionUsers, id.String())
	if err != nil {
		if errors.Is(err, docstore.ErrDocumentNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("shipper", id.String(), err)
		}
		return nil, pkgerrors.Wrap(err, "get shipper")
	}

	s, err := toDomain(doc)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "decode shipper %s", doc.ID)
	}
	if s.Role() != shipper.RoleShipper {
		return nil, errs.NewObjectNotFoundError("shipper", id.String())
	}

	return s, nil
}

// ListShippers returns every account with role shipper, ordered by name.
func (r *Repository) ListShippers(ctx context.Context) ([]*shipper.Shipper, error) {
	docs, err := r.store.Find(ctx, docstore.Query{
		Collection: ports.CollectionUsers,
		Where:      []docstore.Filter{{Field: fieldRole, Value: shipper.RoleShipper.String()}},
		OrderBy:    fieldName,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list shippers")
	}

	shippers := make([]*shipper.Shipper, 0, len(docs))
	for _, doc := range docs {
		s, err := toDomain(doc)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "decode shipper %s", doc.ID)
		}
		shippers = append(shippers, s)
	}

	return shippers, nil
}
