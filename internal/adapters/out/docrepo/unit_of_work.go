// Package docrepo implements the repositories and the Unit of Work over the
// document store.
//
// The Unit of Work runs in one of two modes:
//
//   - Best effort (default): Begin does nothing and every repository write is
//     applied to the store immediately. A failure between the order write and
//     the shipper write leaves the first one in place; Rollback cannot undo it.
//   - Transactional: when enabled and the store implements docstore.TxStore,
//     Begin opens a store transaction and both writes land together on Commit.
//
// In both modes the written documents are announced on the change feed only
// after they are durable, so live views never reload ahead of the store.
//
// Usage:
//
//	factory := NewUnitOfWorkFactory(store, notifier, false, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().UpdateAssignment(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.ShipperRepository().UpdateAvailability(ctx, id, a); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance belongs to one command; do not share it
//   - There is no optimistic locking: concurrent writers to the same
//     document overwrite each other field by field
package docrepo

import (
	"context"
	"log/slog"
	"slices"

	"fleetops/internal/adapters/out/docrepo/orderrepo"
	"fleetops/internal/adapters/out/docrepo/shipperrepo"
	"fleetops/internal/adapters/out/docstore"
	"fleetops/internal/core/ports"

	"github.com/pkg/errors"
)

// ErrUnitOfWorkIsNotStarted is returned by Commit without a prior Begin.
var ErrUnitOfWorkIsNotStarted = errors.New("unit of work is not started")

// UnitOfWorkFactory creates UnitOfWork instances sharing one store and
// change publisher.
type UnitOfWorkFactory struct {
	store         docstore.Store
	publisher     ports.ChangePublisher
	transactional bool
	logger        *slog.Logger
}

// NewUnitOfWorkFactory creates a factory. transactional only takes effect
// when store implements docstore.TxStore.
func NewUnitOfWorkFactory(
	store docstore.Store,
	publisher ports.ChangePublisher,
	transactional bool,
	logger *slog.Logger,
) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		store:         store,
		publisher:     publisher,
		transactional: transactional,
		logger:        logger.With("component", "unit_of_work"),
	}
}

// Transactional reports whether units of work run inside store transactions.
func (f *UnitOfWorkFactory) Transactional() bool {
	_, ok := f.store.(docstore.TxStore)
	return f.transactional && ok
}

// Create produces a new UnitOfWork.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:     f.store,
		publisher: f.publisher,
		useTx:     f.Transactional(),
		logger:    f.logger,
	}
}

// OrderReader returns a read-only order repository outside any unit of work.
func (f *UnitOfWorkFactory) OrderReader() ports.OrderReader {
	return orderrepo.NewRepository(f.store, nil)
}

// ShipperReader returns a read-only shipper repository outside any unit of work.
func (f *UnitOfWorkFactory) ShipperReader() ports.ShipperReader {
	return shipperrepo.NewRepository(f.store, nil)
}

// UnitOfWork coordinates the writes of one command and announces them once
// they are durable.
type UnitOfWork struct {
	store     docstore.Store
	publisher ports.ChangePublisher
	useTx     bool
	logger    *slog.Logger

	started bool
	tx      docstore.Tx
	changes []ports.Change
}

// Begin starts the unit of work, opening a store transaction in
// transactional mode. Calling Begin twice is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.started {
		return nil
	}

	if uow.useTx {
		tx, err := uow.store.(docstore.TxStore).BeginTx(ctx)
		if err != nil {
			return errors.Wrap(err, "begin transaction")
		}
		uow.tx = tx
	}

	uow.started = true
	return nil
}

// Commit makes the writes durable and announces them.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.started {
		return ErrUnitOfWorkIsNotStarted
	}

	if uow.tx != nil {
		if err := uow.tx.Commit(); err != nil {
			uow.finish()
			return errors.Wrap(err, "commit transaction")
		}
	}

	uow.announce(ctx)
	uow.finish()
	return nil
}

// Rollback abandons the unit of work. A store transaction is rolled back; in
// best-effort mode the writes already applied stay and are announced. It is
// a no-op after Commit.
func (uow *UnitOfWork) Rollback(ctx context.Context) error {
	if !uow.started {
		return nil
	}
	defer uow.finish()

	if uow.tx != nil {
		return errors.Wrap(uow.tx.Rollback(), "rollback transaction")
	}

	uow.announce(ctx)
	return nil
}

// OrderRepository returns an order repository bound to this unit of work.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewRepository(uow.target(), uow)
}

// ShipperRepository returns a shipper repository bound to this unit of work.
func (uow *UnitOfWork) ShipperRepository() ports.ShipperRepository {
	return shipperrepo.NewRepository(uow.target(), uow)
}

// Track registers a written document to announce on Commit.
func (uow *UnitOfWork) Track(change ports.Change) {
	if !slices.Contains(uow.changes, change) {
		uow.changes = append(uow.changes, change)
	}
}

func (uow *UnitOfWork) target() docstore.Store {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.store
}

func (uow *UnitOfWork) announce(ctx context.Context) {
	if len(uow.changes) == 0 || uow.publisher == nil {
		return
	}
	if err := uow.publisher.Publish(ctx, uow.changes...); err != nil {
		uow.logger.WarnContext(ctx, "announce changes failed", "error", err, "changes", len(uow.changes))
	}
}

func (uow *UnitOfWork) finish() {
	uow.started = false
	uow.tx = nil
	uow.changes = nil
}
