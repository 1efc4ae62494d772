package commands

import (
	"context"
	"errors"
	"fmt"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
)

// UnknownAssigneeName is stored when the chosen shipper is not in the fleet
// directory. The assignment still goes ahead.
const UnknownAssigneeName = "Unknown"

// AssignShipperCommandHandler assigns a shipper to an order and marks the
// shipper busy with it.
//
// Steps:
//   - load the order; a COMPLETED order is rejected
//   - resolve the shipper's name, "Unknown" when the shipper is not found
//   - write the order's assignment fields, status PROCESSING
//   - write the shipper's status busy and currentOrder, skipped when the
//     shipper has no users document
//   - commit, then record MISSION_ASSIGNED in the audit log
//
// Write failures are returned as *AssignmentError.
type AssignShipperCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.ActivityLogger
}

// NewAssignShipperCommandHandler creates the handler.
func NewAssignShipperCommandHandler(uowFactory UoWFactory, audit ports.ActivityLogger) AssignShipperCommandHandler {
	return AssignShipperCommandHandler{
		uowFactory: uowFactory,
		audit:      audit,
	}
}

// Handle processes the command.
func (h AssignShipperCommandHandler) Handle(ctx context.Context, command AssignShipperCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	shipperRepo := uow.ShipperRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	name, found, err := h.resolveName(ctx, shipperRepo, command)
	if err != nil {
		return err
	}

	if err = o.Assign(command.ShipperID(), name); err != nil {
		return err
	}

	if err = orderRepo.UpdateAssignment(ctx, o); err != nil {
		return &AssignmentError{Op: "assign", OrderID: o.ID().String(), Err: err}
	}

	if found {
		if err = shipperRepo.UpdateAvailability(ctx, command.ShipperID(), shipper.BusyWith(o.ID())); err != nil {
			return &AssignmentError{Op: "assign", OrderID: o.ID().String(), Err: err}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return &AssignmentError{Op: "assign", OrderID: o.ID().String(), Err: err}
	}

	h.audit.LogActivity(ctx, command.Actor(), activity.EventMissionAssigned,
		fmt.Sprintf("Order %s assigned to %s", o.ID(), name))

	return nil
}

// resolveName looks the shipper up by id. A missing shipper is not an error;
// found reports whether there is a document to mark busy.
func (h AssignShipperCommandHandler) resolveName(
	ctx context.Context,
	shipperRepo ports.ShipperRepository,
	command AssignShipperCommand,
) (name string, found bool, err error) {
	s, err := shipperRepo.Get(ctx, command.ShipperID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return UnknownAssigneeName, false, nil
	}
	if err != nil {
		return "", false, err
	}
	if s.Name() == "" {
		return UnknownAssigneeName, true, nil
	}
	return s.Name(), true, nil
}
