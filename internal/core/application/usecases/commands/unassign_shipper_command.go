package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrUnassignShipperCommandIsNotConstructed = errors.New(
	"UnassignShipperCommand must be created via NewUnassignShipperCommand constructor",
)

// UnassignShipperCommand removes the current shipper from an order. The
// operator is expected to have confirmed the removal before it is issued.
type UnassignShipperCommand struct {
	orderID kernel.ID
	actor   activity.Actor

	guard guard.ConstructorGuard
}

// NewUnassignShipperCommand validates the order identifier.
func NewUnassignShipperCommand(orderID string, actor activity.Actor) (UnassignShipperCommand, error) {
	id, err := kernel.IDFromString(orderID)
	if err != nil {
		return UnassignShipperCommand{}, ErrOrderIDIsRequired
	}

	return UnassignShipperCommand{
		orderID: id,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UnassignShipperCommand) Validate() error {
	return c.guard.Validate(ErrUnassignShipperCommandIsNotConstructed)
}

// OrderID returns the order to release.
func (c UnassignShipperCommand) OrderID() kernel.ID {
	return c.orderID
}

// Actor returns the operator issuing the command.
func (c UnassignShipperCommand) Actor() activity.Actor {
	return c.actor
}
