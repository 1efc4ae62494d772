package activity

import (
	"strings"

	"fleetops/internal/core/domain/model/shipper"
)

// Tab splits the log into back-office and field activity.
type Tab int

const (
	TabAll Tab = iota
	// TabAdmin shows entries by administrators.
	TabAdmin
	// TabField shows entries by shippers and end users.
	TabField
)

// ParseTab reads a tab name ("admin", "field"); anything else is TabAll.
func ParseTab(raw string) Tab {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return TabAdmin
	case "field", "shipper", "user":
		return TabField
	default:
		return TabAll
	}
}

func (t Tab) String() string {
	switch t {
	case TabAdmin:
		return "admin"
	case TabField:
		return "field"
	default:
		return "all"
	}
}

// Includes reports whether an entry belongs on the tab.
func (t Tab) Includes(e *Entry) bool {
	switch t {
	case TabAdmin:
		return e.actor.Role == shipper.RoleAdmin
	case TabField:
		return e.actor.Role.IsField()
	default:
		return true
	}
}
