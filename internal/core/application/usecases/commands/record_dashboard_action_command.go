package commands

import (
	"context"
	"errors"
	"strings"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

var (
	ErrRecordDashboardActionCommandIsNotConstructed = errors.New(
		"RecordDashboardActionCommand must be created via NewRecordDashboardActionCommand constructor",
	)
	ErrActionIsRequired = errs.NewValueIsRequiredError("action")
)

// RecordDashboardActionCommand audits a quick action triggered from the
// dashboard. The action itself runs elsewhere.
type RecordDashboardActionCommand struct {
	action string
	actor  activity.Actor

	guard guard.ConstructorGuard
}

// NewRecordDashboardActionCommand validates the action name.
func NewRecordDashboardActionCommand(action string, actor activity.Actor) (RecordDashboardActionCommand, error) {
	trimmed := strings.TrimSpace(action)
	if trimmed == "" {
		return RecordDashboardActionCommand{}, ErrActionIsRequired
	}

	return RecordDashboardActionCommand{
		action: trimmed,
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDashboardActionCommand) Validate() error {
	return c.guard.Validate(ErrRecordDashboardActionCommandIsNotConstructed)
}

// Action returns the action name.
func (c RecordDashboardActionCommand) Action() string {
	return c.action
}

// RecordDashboardActionCommandHandler writes a DASHBOARD_ACTION entry.
type RecordDashboardActionCommandHandler struct {
	audit ports.ActivityLogger
}

// NewRecordDashboardActionCommandHandler creates the handler.
func NewRecordDashboardActionCommandHandler(audit ports.ActivityLogger) RecordDashboardActionCommandHandler {
	return RecordDashboardActionCommandHandler{audit: audit}
}

// Handle processes the command.
func (h RecordDashboardActionCommandHandler) Handle(ctx context.Context, command RecordDashboardActionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	h.audit.LogActivity(ctx, command.actor, activity.EventDashboardAction, "Triggered: "+command.Action())
	return nil
}
