package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the write boundary of one command.
//
// Depending on the store, Begin opens a real transaction (both documents are
// written or neither) or nothing at all, in which case every repository write
// is applied immediately and Rollback cannot undo it. Either way changes are
// announced on the change feed only once they are durable.
type UnitOfWork interface {
	// Begin starts the unit of work.
	Begin(ctx context.Context) error

	// Commit makes the writes durable and announces them.
	Commit(ctx context.Context) error

	// Rollback abandons the unit of work. It is a no-op after Commit.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to this unit of work.
	OrderRepository() OrderRepository

	// ShipperRepository returns a ShipperRepository bound to this unit of work.
	ShipperRepository() ShipperRepository
}
