package queries

import (
	"context"
	"errors"

	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/guard"
)

var ErrListShippersQueryIsNotConstructed = errors.New(
	"ListShippersQuery must be created via NewListShippersQuery constructor",
)

// ListShippersQuery reads the fleet roster.
type ListShippersQuery struct {
	guard guard.ConstructorGuard
}

// NewListShippersQuery creates the query.
func NewListShippersQuery() ListShippersQuery {
	return ListShippersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListShippersQuery) Validate() error {
	return q.guard.Validate(ErrListShippersQueryIsNotConstructed)
}

// RosterEntry is a shipper with its delivery record.
type RosterEntry struct {
	ShipperSummary
	// CompletedOrders counts COMPLETED orders whose assignee is the shipper.
	CompletedOrders int
}

// ListShippersQueryResponse is the roster with its id to name index.
type ListShippersQueryResponse struct {
	Shippers []RosterEntry
	Names    map[string]string
}

// ListShippersQueryHandler joins the roster with order completion counts.
type ListShippersQueryHandler struct {
	orders ports.OrderReader
	fleet  ports.ShipperReader
}

// NewListShippersQueryHandler creates the handler.
func NewListShippersQueryHandler(orders ports.OrderReader, fleet ports.ShipperReader) ListShippersQueryHandler {
	return ListShippersQueryHandler{orders: orders, fleet: fleet}
}

// Handle executes the query.
func (h ListShippersQueryHandler) Handle(ctx context.Context, query ListShippersQuery) (ListShippersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListShippersQueryResponse{}, err
	}

	roster, err := h.fleet.ListShippers(ctx)
	if err != nil {
		return ListShippersQueryResponse{}, err
	}

	completed, err := h.orders.List(ctx, ports.OrderFilter{Status: order.Completed})
	if err != nil {
		return ListShippersQueryResponse{}, err
	}

	counts := make(map[string]int)
	for _, o := range completed {
		if id, ok := o.AssignedShipper(); ok {
			counts[id.String()]++
		}
	}

	entries := make([]RosterEntry, 0, len(roster))
	for _, s := range roster {
		entries = append(entries, RosterEntry{
			ShipperSummary:  newShipperSummary(s),
			CompletedOrders: counts[s.ID().String()],
		})
	}

	return ListShippersQueryResponse{
		Shippers: entries,
		Names:    services.NewDisplayNames(roster).Map(),
	}, nil
}
