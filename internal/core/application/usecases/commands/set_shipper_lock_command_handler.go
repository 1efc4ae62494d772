package commands

import (
	"context"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/ports"
)

// SetShipperLockCommandHandler toggles the locked flag of a shipper. Setting
// the flag to its current value writes nothing and records nothing.
type SetShipperLockCommandHandler struct {
	uowFactory ShipperUoWFactory
	audit      ports.ActivityLogger
}

// NewSetShipperLockCommandHandler creates the handler.
func NewSetShipperLockCommandHandler(uowFactory ShipperUoWFactory, audit ports.ActivityLogger) SetShipperLockCommandHandler {
	return SetShipperLockCommandHandler{
		uowFactory: uowFactory,
		audit:      audit,
	}
}

// Handle processes the command.
func (h SetShipperLockCommandHandler) Handle(ctx context.Context, command SetShipperLockCommand) error {
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

	repo := uow.ShipperRepository()

	s, err := repo.Get(ctx, command.ShipperID())
	if err != nil {
		return err
	}

	if !s.SetLocked(command.Locked()) {
		return nil
	}

	if err = repo.UpdateLock(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event, verb := activity.EventShipperUnlocked, "Unlocked "
	if s.Locked() {
		event, verb = activity.EventShipperLocked, "Locked "
	}
	h.audit.LogActivity(ctx, command.Actor(), event, verb+s.Name())

	return nil
}
