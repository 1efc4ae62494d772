package commands

import (
	"context"
	"fmt"
	"time"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/core/ports"

	"golang.org/x/crypto/bcrypt"
)

// RegisterShipperCommandHandler stores a new shipper: free, unlocked, no
// bonus, role shipper. The password is stored as a bcrypt hash.
type RegisterShipperCommandHandler struct {
	uowFactory ShipperUoWFactory
	audit      ports.ActivityLogger
	now        func() time.Time
}

// NewRegisterShipperCommandHandler creates the handler.
func NewRegisterShipperCommandHandler(uowFactory ShipperUoWFactory, audit ports.ActivityLogger) RegisterShipperCommandHandler {
	return RegisterShipperCommandHandler{
		uowFactory: uowFactory,
		audit:      audit,
		now:        time.Now,
	}
}

// Handle processes the command and returns the new account id.
func (h RegisterShipperCommandHandler) Handle(ctx context.Context, command RegisterShipperCommand) (kernel.ID, error) {
	if err := command.Validate(); err != nil {
		return kernel.ID{}, err
	}

	hash, err := hashPassword(command.Password())
	if err != nil {
		return kernel.ID{}, err
	}

	s, err := shipper.NewShipper(kernel.NewID(), command.Name(), command.Capability(),
		command.Contact(), hash, h.now().UTC())
	if err != nil {
		return kernel.ID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.ID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipperRepository().Add(ctx, s); err != nil {
		return kernel.ID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.ID{}, err
	}

	h.audit.LogActivity(ctx, command.Actor(), activity.EventShipperRegistered,
		fmt.Sprintf("Registered %s (type %d)", s.Name(), s.Capability().Int()))

	return s.ID(), nil
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
