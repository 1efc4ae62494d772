package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrSetShipperLockCommandIsNotConstructed = errors.New(
	"SetShipperLockCommand must be created via NewSetShipperLockCommand constructor",
)

// SetShipperLockCommand locks or unlocks a shipper account. A locked shipper
// cannot sign in to the field client; it is still listed and still eligible
// for assignment.
type SetShipperLockCommand struct {
	shipperID kernel.ID
	locked    bool
	actor     activity.Actor

	guard guard.ConstructorGuard
}

// NewSetShipperLockCommand validates the shipper identifier.
func NewSetShipperLockCommand(shipperID string, locked bool, actor activity.Actor) (SetShipperLockCommand, error) {
	id, err := kernel.IDFromString(shipperID)
	if err != nil {
		return SetShipperLockCommand{}, ErrShipperIDIsRequired
	}

	return SetShipperLockCommand{
		shipperID: id,
		locked:    locked,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetShipperLockCommand) Validate() error {
	return c.guard.Validate(ErrSetShipperLockCommandIsNotConstructed)
}

func (c SetShipperLockCommand) ShipperID() kernel.ID  { return c.shipperID }
func (c SetShipperLockCommand) Locked() bool          { return c.locked }
func (c SetShipperLockCommand) Actor() activity.Actor { return c.actor }
