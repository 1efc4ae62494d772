package kernel

import (
	"strings"

	"fleetops/internal/pkg/guard"
)

// ErrRouteIsNotConstructed is returned when validating a Route that was not created by NewRoute.
var ErrRouteIsNotConstructed = guard.ErrDefaultConstructorGuard

// Route is the pair of warehouses a shipment travels between. Either end may be
// unknown (empty) for orders created before warehouses were recorded.
//
// Example:
//
//	route := kernel.NewRoute("Hanoi Hub", "Da Nang DC")
//	fmt.Println(route) // Hanoi Hub -> Da Nang DC
type Route struct {
	from  string
	to    string
	guard guard.ConstructorGuard
}

// NewRoute creates a Route. Warehouse names are trimmed.
func NewRoute(from, to string) Route {
	return Route{
		from:  strings.TrimSpace(from),
		to:    strings.TrimSpace(to),
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the Route was created by NewRoute.
func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// From returns the source warehouse, or an empty string when unknown.
func (r Route) From() string {
	return r.from
}

// To returns the destination warehouse, or an empty string when unknown.
func (r Route) To() string {
	return r.to
}

// IsEqual compares both ends of two routes.
func (r Route) IsEqual(other Route) bool {
	return r.from == other.from && r.to == other.to
}

// String renders the route as "from -> to", using "?" for unknown ends.
func (r Route) String() string {
	return orUnknown(r.from) + " -> " + orUnknown(r.to)
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
