package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

var (
	ErrAssignShipperCommandIsNotConstructed = errors.New(
		"AssignShipperCommand must be created via NewAssignShipperCommand constructor",
	)
	ErrOrderIDIsRequired   = errs.NewValueIsRequiredError("orderId")
	ErrShipperIDIsRequired = errs.NewValueIsRequiredError("shipperId")
)

// AssignShipperCommand puts a shipper in charge of an order's current stage.
//
// Example:
//
//	cmd, err := NewAssignShipperCommand("O1", "S1", actor)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AssignShipperCommand struct {
	orderID   kernel.ID
	shipperID kernel.ID
	actor     activity.Actor

	guard guard.ConstructorGuard
}

// NewAssignShipperCommand validates the identifiers. The actor is recorded in
// the audit log only.
func NewAssignShipperCommand(orderID, shipperID string, actor activity.Actor) (AssignShipperCommand, error) {
	command := AssignShipperCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setShipperID(shipperID),
	); err != nil {
		return AssignShipperCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignShipperCommand) Validate() error {
	return c.guard.Validate(ErrAssignShipperCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignShipperCommand) OrderID() kernel.ID {
	return c.orderID
}

// ShipperID returns the chosen shipper.
func (c AssignShipperCommand) ShipperID() kernel.ID {
	return c.shipperID
}

// Actor returns the operator issuing the command.
func (c AssignShipperCommand) Actor() activity.Actor {
	return c.actor
}

func (c *AssignShipperCommand) setOrderID(raw string) error {
	id, err := kernel.IDFromString(raw)
	if err != nil {
		return ErrOrderIDIsRequired
	}

	c.orderID = id
	return nil
}

func (c *AssignShipperCommand) setShipperID(raw string) error {
	id, err := kernel.IDFromString(raw)
	if err != nil {
		return ErrShipperIDIsRequired
	}

	c.shipperID = id
	return nil
}
