package live

import (
	"context"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
)

// Fleet is one snapshot of the shipper roster with its name index.
type Fleet struct {
	Shippers []*shipper.Shipper
	Names    services.DisplayNames
}

// FleetDirectory is the live roster of accounts with role shipper.
type FleetDirectory struct {
	*Source[Fleet]
}

// NewFleetDirectory creates a directory loading from shippers.
func NewFleetDirectory(shippers ports.ShipperReader, opts ...Option) *FleetDirectory {
	load := func(ctx context.Context) (Fleet, error) {
		roster, err := shippers.ListShippers(ctx)
		if err != nil {
			return Fleet{}, err
		}
		return Fleet{Shippers: roster, Names: services.NewDisplayNames(roster)}, nil
	}
	size := func(v Fleet) int { return len(v.Shippers) }

	return &FleetDirectory{Source: NewSource("users", ports.CollectionUsers, load, size, opts...)}
}

// Get returns the shipper from the current snapshot.
func (d *FleetDirectory) Get(ctx context.Context, id kernel.ID) (*shipper.Shipper, error) {
	snap, err := d.Current(ctx)
	if err != nil {
		return nil, err
	}

	for _, s := range snap.Value.Shippers {
		if s.ID().IsEqual(id) {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("shipper", id)
}

// ListShippers returns the current roster.
func (d *FleetDirectory) ListShippers(ctx context.Context) ([]*shipper.Shipper, error) {
	snap, err := d.Current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Value.Shippers, nil
}

// Names returns the id to name index of the current roster.
func (d *FleetDirectory) Names(ctx context.Context) (services.DisplayNames, error) {
	snap, err := d.Current(ctx)
	if err != nil {
		return services.DisplayNames{}, err
	}
	return snap.Value.Names, nil
}
