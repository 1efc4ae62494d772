// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, unit of work, persistence,
// then a best-effort audit record.
package commands

import (
	"context"
	"fmt"

	"fleetops/internal/core/ports"
)

// Unit of Work interfaces provide the write boundary for command handlers.
type (
	// TxManager handles the unit of work lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a unit of work.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ShipperRepoFactory provides access to the shipper repository within a unit of work.
	ShipperRepoFactory interface {
		ShipperRepository() ports.ShipperRepository
	}

	// ShipperUoW manages shipper-only operations such as registration and locking.
	ShipperUoW interface {
		TxManager
		ShipperRepoFactory
	}

	// ShipperUoWFactory creates new shipper unit of work instances.
	ShipperUoWFactory interface {
		Create() ShipperUoW
	}

	// UoW spans the order and the shipper touched by an assignment change.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   shipperRepo := uow.ShipperRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ShipperRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for assignment changes.
	UoWFactory interface {
		Create() UoW
	}
)

// AssignmentError reports that an assignment change could not be written.
// The store may hold a partial result: with a non-transactional store the
// order write can succeed while the shipper write fails. Nothing is undone
// and nothing is retried.
type AssignmentError struct {
	// Op is "assign" or "unassign".
	Op string
	// OrderID is the order being changed.
	OrderID string
	// Err is the underlying write failure.
	Err error
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("%s order %s: %v", e.Op, e.OrderID, e.Err)
}

func (e *AssignmentError) Unwrap() error {
	return e.Err
}
