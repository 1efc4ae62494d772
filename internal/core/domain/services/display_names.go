package services

import (
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/shipper"
)

const (
	// UnassignedName is shown when no shipper id is stored.
	UnassignedName = "Unassigned"
	// UnknownShipperName is shown when an id is stored but neither the
	// roster nor the stored snapshot has a name for it.
	UnknownShipperName = "Unknown Shipper"
)

// DisplayNames resolves shipper names from a roster snapshot. Live roster
// names win over names stored on orders, which are only snapshots taken at
// assignment time.
type DisplayNames struct {
	names map[string]string
}

// NewDisplayNames indexes the roster by id. Shippers without a name are
// left out so that stored snapshots can still be used for them.
func NewDisplayNames(fleet []*shipper.Shipper) DisplayNames {
	names := make(map[string]string, len(fleet))
	for _, s := range fleet {
		if s == nil || s.Name() == "" {
			continue
		}
		names[s.ID().String()] = s.Name()
	}
	return DisplayNames{names: names}
}

// Lookup returns the live name of id.
func (d DisplayNames) Lookup(id kernel.ID) (string, bool) {
	if id.IsZero() {
		return "", false
	}
	name, ok := d.names[id.String()]
	return name, ok
}

// Map returns a copy of the id to name index.
func (d DisplayNames) Map() map[string]string {
	out := make(map[string]string, len(d.names))
	for id, name := range d.names {
		out[id] = name
	}
	return out
}

// ShipperName picks the name to show for a shipper reference.
//
// Resolution order:
//   - no id: UnassignedName
//   - the live roster name of id
//   - the stored snapshot
//   - UnknownShipperName
func (d DisplayNames) ShipperName(id kernel.ID, stored string) string {
	if id.IsZero() {
		return UnassignedName
	}
	if name, ok := d.Lookup(id); ok {
		return name
	}
	if stored != "" {
		return stored
	}
	return UnknownShipperName
}

// ActiveHandler names the order's top-level assignee from the roster only.
func (d DisplayNames) ActiveHandler(o *order.Order) string {
	id, _ := o.AssignedShipper()
	return d.ShipperName(id, "")
}

// StageProgress is the verification state of one assignable stage.
type StageProgress struct {
	// Stage is the stage number, 1..3.
	Stage int
	// ShipperID is the bound shipper, zero when unbound.
	ShipperID kernel.ID
	// ShipperName is the resolved display name.
	ShipperName string
	// Confirmed is the shipper's own confirmation; never set by assignment.
	Confirmed bool
}

// StageProgress lists stages 1..3 of the order with their display names and
// confirmation flags.
func (d DisplayNames) StageProgress(o *order.Order) []StageProgress {
	progress := make([]StageProgress, 0, order.AssignableStages)
	for n := 1; n <= order.AssignableStages; n++ {
		b, _ := o.Binding(n)
		id, _ := b.ShipperID()
		progress = append(progress, StageProgress{
			Stage:       n,
			ShipperID:   id,
			ShipperName: d.ShipperName(id, b.ShipperName()),
			Confirmed:   b.Confirmed(),
		})
	}
	return progress
}
