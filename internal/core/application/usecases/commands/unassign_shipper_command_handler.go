package commands

import (
	"context"
	"errors"
	"fmt"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
)

// ReleasedAssigneeName names the released shipper in the audit log when the
// fleet directory no longer knows it.
const ReleasedAssigneeName = "Fleet Agent"

// UnassignShipperCommandHandler removes the assignee of an order and frees
// that shipper.
//
// Steps:
//   - load the order; COMPLETED or unassigned orders are rejected
//   - clear the order's assignment fields, status PENDING
//   - write the previous shipper's status free and currentOrder null, skipped
//     when the shipper has no users document
//   - commit, then record MISSION_REVOKED in the audit log
//
// Write failures are returned as *AssignmentError.
type UnassignShipperCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.ActivityLogger
}

// NewUnassignShipperCommandHandler creates the handler.
func NewUnassignShipperCommandHandler(uowFactory UoWFactory, audit ports.ActivityLogger) UnassignShipperCommandHandler {
	return UnassignShipperCommandHandler{
		uowFactory: uowFactory,
		audit:      audit,
	}
}

// Handle processes the command.
func (h UnassignShipperCommandHandler) Handle(ctx context.Context, command UnassignShipperCommand) error {
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

	previous, err := o.Unassign()
	if err != nil {
		return err
	}

	name, found := h.releasedName(ctx, shipperRepo, previous)

	if err = orderRepo.UpdateAssignment(ctx, o); err != nil {
		return &AssignmentError{Op: "unassign", OrderID: o.ID().String(), Err: err}
	}

	if found {
		if err = shipperRepo.UpdateAvailability(ctx, previous, shipper.Free()); err != nil {
			return &AssignmentError{Op: "unassign", OrderID: o.ID().String(), Err: err}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return &AssignmentError{Op: "unassign", OrderID: o.ID().String(), Err: err}
	}

	h.audit.LogActivity(ctx, command.Actor(), activity.EventMissionRevoked,
		fmt.Sprintf("Removed %s from Order %s", name, o.ID()))

	return nil
}

// releasedName is only used for the audit message, so lookup failures fall
// back to a generic name. found is false only when the shipper is gone.
func (h UnassignShipperCommandHandler) releasedName(
	ctx context.Context,
	shipperRepo ports.ShipperRepository,
	id kernel.ID,
) (name string, found bool) {
	s, err := shipperRepo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ReleasedAssigneeName, false
	}
	if err != nil || s.Name() == "" {
		return ReleasedAssigneeName, true
	}
	return s.Name(), true
}
