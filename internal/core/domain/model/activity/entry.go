// Package activity provides the audit log entry recorded for operator and
// field actions.
package activity

import (
	"errors"
	"strings"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

// Event names recorded by this service.
const (
	EventMissionAssigned   = "MISSION_ASSIGNED"
	EventMissionRevoked    = "MISSION_REVOKED"
	EventShipperRegistered = "SHIPPER_REGISTERED"
	EventShipperLocked     = "SHIPPER_LOCKED"
	EventShipperUnlocked   = "SHIPPER_UNLOCKED"
	EventDashboardAction   = "DASHBOARD_ACTION"
)

// StatusSuccess is the only outcome recorded today.
const StatusSuccess = "SUCCESS"

var (
	ErrEventIsRequired       = errs.NewValueIsRequiredError("event")
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")
)

// Actor identifies who performed an action.
type Actor struct {
	ID    string
	Email string
	Role  shipper.Role
}

// Entry is one audit log record.
type Entry struct {
	id      kernel.ID
	actor   Actor
	event   string
	details string
	at      time.Time
	status  string
	guard   guard.ConstructorGuard
}

// NewEntry records event by actor at the given time with status SUCCESS.
func NewEntry(id kernel.ID, actor Actor, event, details string, at time.Time) (*Entry, error) {
	e := &Entry{
		actor:   actor,
		details: details,
		at:      at,
		status:  StatusSuccess,
		guard:   guard.NewConstructorGuard(),
	}

	event = strings.TrimSpace(event)
	if event == "" {
		return nil, errors.Join(id.Validate(), ErrEventIsRequired)
	}
	e.event = event

	if err := id.Validate(); err != nil {
		return nil, err
	}
	e.id = id

	return e, nil
}

// RestoreEntry rebuilds a stored entry without validating its content.
func RestoreEntry(id kernel.ID, actor Actor, event, details string, at time.Time, status string) (*Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Entry{
		id:      id,
		actor:   actor,
		event:   event,
		details: details,
		at:      at,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the log document id.
func (e *Entry) ID() kernel.ID { return e.id }

// Actor returns who performed the action.
func (e *Entry) Actor() Actor { return e.actor }

// Event returns the event name.
func (e *Entry) Event() string { return e.event }

// Details returns the free-text description.
func (e *Entry) Details() string { return e.details }

// At returns when the action happened.
func (e *Entry) At() time.Time { return e.at }

// Status returns the recorded outcome.
func (e *Entry) Status() string { return e.status }
