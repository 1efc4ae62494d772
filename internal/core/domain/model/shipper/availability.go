package shipper

import (
	"strings"

	"fleetops/internal/core/domain/model/kernel"
)

// Status is the stored availability flag of a shipper.
type Status int

const (
	StatusUnknown Status = iota
	StatusFree
	StatusBusy
)

// ParseStatus reads a stored availability flag ("free" or "busy", any case).
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "free":
		return StatusFree
	case "busy":
		return StatusBusy
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	switch s {
	case StatusFree:
		return "free"
	case StatusBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Availability couples the free/busy flag with the order being worked.
// Values built by Free and BusyWith always satisfy busy == (current order set);
// values restored from storage may not, and Inconsistencies reports it.
type Availability struct {
	status       Status
	currentOrder kernel.ID
}

// Free is the availability of an idle shipper.
func Free() Availability {
	return Availability{status: StatusFree}
}

// BusyWith is the availability of a shipper working orderID.
func BusyWith(orderID kernel.ID) Availability {
	return Availability{status: StatusBusy, currentOrder: orderID}
}

// RestoreAvailability keeps stored values as they are.
func RestoreAvailability(status Status, currentOrder kernel.ID) Availability {
	return Availability{status: status, currentOrder: currentOrder}
}

// Status returns the stored flag.
func (a Availability) Status() Status {
	return a.status
}

// CurrentOrder returns the order being worked and whether there is one.
func (a Availability) CurrentOrder() (kernel.ID, bool) {
	return a.currentOrder, !a.currentOrder.IsZero()
}

// IsFree reports whether the flag says free. This is the only test used for
// assignment eligibility.
func (a Availability) IsFree() bool {
	return a.status == StatusFree
}

// IsOccupied reports whether the shipper counts as busy on dashboards: the
// flag says busy or an order is attached.
func (a Availability) IsOccupied() bool {
	return a.status == StatusBusy || !a.currentOrder.IsZero()
}

// Inconsistencies reports a flag that disagrees with the current order.
func (a Availability) Inconsistencies() []kernel.Inconsistency {
	switch {
	case a.status == StatusBusy && a.currentOrder.IsZero():
		return []kernel.Inconsistency{{Field: "status/currentOrder", Kept: "busy", Dropped: "currentOrder=null"}}
	case a.status == StatusFree && !a.currentOrder.IsZero():
		return []kernel.Inconsistency{{Field: "status/currentOrder", Kept: "free", Dropped: "currentOrder=" + a.currentOrder.String()}}
	default:
		return nil
	}
}
