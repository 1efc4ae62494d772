package commands

import (
	"errors"
	"strings"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

var (
	ErrRegisterShipperCommandIsNotConstructed = errors.New(
		"RegisterShipperCommand must be created via NewRegisterShipperCommand constructor",
	)
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// RegisterShipperCommand creates a new fleet account.
//
// Example:
//
//	cmd, err := NewRegisterShipperCommand("Lan Nguyen", 2, shipper.Contact{Phone: "0900"}, "s3cret", actor)
//	if err != nil {
//	    return fmt.Errorf("invalid shipper data: %w", err)
//	}
//	id, err := handler.Handle(ctx, cmd)
type RegisterShipperCommand struct { //nolint:recvcheck //using for validation
	name       string
	capability shipper.Capability
	contact    shipper.Contact
	password   string
	actor      activity.Actor

	guard guard.ConstructorGuard
}

// NewRegisterShipperCommand validates the registration form. The password is
// optional; accounts created without one sign in through another provider.
func NewRegisterShipperCommand(
	name string,
	capability int,
	contact shipper.Contact,
	password string,
	actor activity.Actor,
) (RegisterShipperCommand, error) {
	command := RegisterShipperCommand{
		contact:  contact,
		password: password,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setName(name),
		command.setCapability(capability),
	); err != nil {
		return RegisterShipperCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterShipperCommand) Validate() error {
	return c.guard.Validate(ErrRegisterShipperCommandIsNotConstructed)
}

// Name returns the display name.
func (c RegisterShipperCommand) Name() string {
	return c.name
}

// Capability returns the stage type.
func (c RegisterShipperCommand) Capability() shipper.Capability {
	return c.capability
}

// Contact returns the optional email and phone.
func (c RegisterShipperCommand) Contact() shipper.Contact {
	return c.contact
}

// Password returns the plain sign-in secret, possibly empty.
func (c RegisterShipperCommand) Password() string {
	return c.password
}

// Actor returns the operator issuing the command.
func (c RegisterShipperCommand) Actor() activity.Actor {
	return c.actor
}

func (c *RegisterShipperCommand) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameIsRequired
	}

	c.name = trimmed
	return nil
}

func (c *RegisterShipperCommand) setCapability(n int) error {
	capability, err := shipper.NewCapability(n)
	if err != nil {
		return err
	}

	c.capability = capability
	return nil
}
