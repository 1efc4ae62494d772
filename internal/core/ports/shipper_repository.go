package ports

import (
	"context"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/shipper"
)

// ShipperReader is the read side shared by the shipper repository and the
// live fleet directory.
type ShipperReader interface {
	// Get returns the shipper or errs.ErrObjectNotFound. Accounts whose role
	// is not shipper are reported as not found.
	Get(ctx context.Context, id kernel.ID) (*shipper.Shipper, error)

	// ListShippers returns every account with role shipper.
	ListShippers(ctx context.Context) ([]*shipper.Shipper, error)
}

// ShipperRepository defines the persistence contract for fleet accounts.
type ShipperRepository interface {
	ShipperReader

	// Add stores a newly registered shipper.
	Add(ctx context.Context, aggregate *shipper.Shipper) error

	// UpdateAvailability writes status and currentOrder together. It writes
	// by id alone, so it succeeds for any existing account document.
	UpdateAvailability(ctx context.Context, id kernel.ID, availability shipper.Availability) error

	// UpdateLock writes the locked flag.
	UpdateLock(ctx context.Context, aggregate *shipper.Shipper) error
}
