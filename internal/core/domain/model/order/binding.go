package order

import "fleetops/internal/core/domain/model/kernel"

// StageBinding is the shipper attached to one assignable stage together with
// the name captured at assignment time and the confirmation flag set by the
// shipper's own client. The zero value is an unbound, unconfirmed stage.
type StageBinding struct {
	shipperID   kernel.ID
	shipperName string
	confirmed   bool
}

// NewStageBinding builds a binding as read from storage. A zero shipperID
// means the stage has no shipper; the name is kept as stored either way.
func NewStageBinding(shipperID kernel.ID, shipperName string, confirmed bool) StageBinding {
	return StageBinding{
		shipperID:   shipperID,
		shipperName: shipperName,
		confirmed:   confirmed,
	}
}

// ShipperID returns the bound shipper and whether one is bound.
func (b StageBinding) ShipperID() (kernel.ID, bool) {
	return b.shipperID, !b.shipperID.IsZero()
}

// ShipperName returns the name snapshot taken when the shipper was bound.
func (b StageBinding) ShipperName() string {
	return b.shipperName
}

// Confirmed reports whether the shipper confirmed completing the stage.
func (b StageBinding) Confirmed() bool {
	return b.confirmed
}

// IsBound reports whether a shipper is attached.
func (b StageBinding) IsBound() bool {
	return !b.shipperID.IsZero()
}

func (b StageBinding) bind(shipperID kernel.ID, shipperName string) StageBinding {
	return StageBinding{shipperID: shipperID, shipperName: shipperName, confirmed: b.confirmed}
}

func (b StageBinding) clear() StageBinding {
	return StageBinding{confirmed: b.confirmed}
}
