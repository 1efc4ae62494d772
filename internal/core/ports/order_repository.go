// Package ports defines the contracts between the application core and the
// infrastructure: repositories over the document store, the change feed that
// keeps live views current, and the audit logger.
package ports

import (
	"context"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
)

// OrderFilter narrows an order listing. The zero value lists every order.
type OrderFilter struct {
	// Status keeps only orders in this status; order.Unknown keeps all.
	Status order.Status
	// Limit caps the result size; zero means no limit.
	Limit int
}

// OrderReader is the read side shared by the order repository and the live
// order ledger.
type OrderReader interface {
	// Get returns the order or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// List returns orders newest first.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}

// OrderRepository defines the persistence contract for order aggregates.
// Orders are placed by the customer-facing side; this service only reads them
// and changes their assignment.
type OrderRepository interface {
	OrderReader

	// Add stores a new order. Used for seeding and tests.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateAssignment writes the assignment fields of the order as one
	// partial update: the top-level assignee fields, the status, and every
	// legacy name of the current stage's binding. Other fields are untouched.
	UpdateAssignment(ctx context.Context, aggregate *order.Order) error
}
