package shipper

import (
	"math"
	"strconv"
	"strings"

	"fleetops/internal/pkg/errs"
)

// Capability is the shipment stage type a shipper is trained for. It uses the
// same numbering as order stages, so a shipper of type N is preferred for stage N.
type Capability int

const (
	CapabilityUnknown   Capability = 0
	CapabilityPickup    Capability = 1
	CapabilityWarehouse Capability = 2
	CapabilityShipping  Capability = 3
)

// NewCapability validates a capability chosen at registration.
func NewCapability(n int) (Capability, error) {
	c := Capability(n)
	if c < CapabilityPickup || c > CapabilityShipping {
		return CapabilityUnknown, errs.NewValueIsOutOfRangeError("type", n, int(CapabilityPickup), int(CapabilityShipping))
	}
	return c, nil
}

// ParseCapability reads a stored type. Stored documents hold it as a JSON
// number or a numeric string; anything else is CapabilityUnknown. Out-of-range
// numbers are kept so they still compare correctly against required types.
func ParseCapability(raw any) Capability {
	switch v := raw.(type) {
	case Capability:
		return v
	case int:
		return Capability(v)
	case int64:
		return Capability(v)
	case float64:
		if v == math.Trunc(v) {
			return Capability(int(v))
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return Capability(n)
		}
	}
	return CapabilityUnknown
}

// Int returns the stored numeric form.
func (c Capability) Int() int {
	return int(c)
}

// Matches reports whether the capability equals the type a stage requires.
// Required type 0 means no preference and matches nothing.
func (c Capability) Matches(requiredType int) bool {
	return requiredType > 0 && int(c) == requiredType
}

func (c Capability) String() string {
	switch c {
	case CapabilityPickup:
		return "pickup"
	case CapabilityWarehouse:
		return "warehouse"
	case CapabilityShipping:
		return "shipping"
	default:
		return "unknown"
	}
}
