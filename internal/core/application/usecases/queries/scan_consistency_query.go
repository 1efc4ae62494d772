package queries

import (
	"context"
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/guard"
)

var ErrScanConsistencyQueryIsNotConstructed = errors.New(
	"ScanConsistencyQuery must be created via NewScanConsistencyQuery constructor",
)

// ScanConsistencyQuery looks for stored fields that disagree with each other.
// It never repairs anything.
type ScanConsistencyQuery struct {
	guard guard.ConstructorGuard
}

// NewScanConsistencyQuery creates the query.
func NewScanConsistencyQuery() ScanConsistencyQuery {
	return ScanConsistencyQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ScanConsistencyQuery) Validate() error {
	return q.guard.Validate(ErrScanConsistencyQueryIsNotConstructed)
}

// Finding is one disagreement.
type Finding struct {
	Collection string
	DocumentID string
	kernel.Inconsistency
}

// ScanConsistencyQueryResponse lists the findings and what was scanned.
type ScanConsistencyQueryResponse struct {
	OrdersScanned   int
	ShippersScanned int
	Findings        []Finding
}

// ScanConsistencyQueryHandler reports:
//   - orders whose legacy field names disagree
//   - shippers whose status and currentOrder disagree
//   - busy shippers whose current order names another assignee
type ScanConsistencyQueryHandler struct {
	orders ports.OrderReader
	fleet  ports.ShipperReader
}

// NewScanConsistencyQueryHandler creates the handler.
func NewScanConsistencyQueryHandler(orders ports.OrderReader, fleet ports.ShipperReader) ScanConsistencyQueryHandler {
	return ScanConsistencyQueryHandler{orders: orders, fleet: fleet}
}

// Handle executes the query.
func (h ScanConsistencyQueryHandler) Handle(
	ctx context.Context,
	query ScanConsistencyQuery,
) (ScanConsistencyQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ScanConsistencyQueryResponse{}, err
	}

	orders, err := h.orders.List(ctx, ports.OrderFilter{})
	if err != nil {
		return ScanConsistencyQueryResponse{}, err
	}

	roster, err := h.fleet.ListShippers(ctx)
	if err != nil {
		return ScanConsistencyQueryResponse{}, err
	}

	resp := ScanConsistencyQueryResponse{
		OrdersScanned:   len(orders),
		ShippersScanned: len(roster),
		Findings:        make([]Finding, 0),
	}

	assignees := make(map[string]string, len(orders))
	for _, o := range orders {
		id := o.ID().String()
		assignee, _ := o.AssignedShipper()
		assignees[id] = assignee.String()

		for _, inc := range o.Inconsistencies() {
			resp.Findings = append(resp.Findings, Finding{
				Collection:    ports.CollectionOrders,
				DocumentID:    id,
				Inconsistency: inc,
			})
		}
	}

	for _, s := range roster {
		id := s.ID().String()
		for _, inc := range s.Inconsistencies() {
			resp.Findings = append(resp.Findings, Finding{
				Collection:    ports.CollectionUsers,
				DocumentID:    id,
				Inconsistency: inc,
			})
		}

		current, ok := s.Availability().CurrentOrder()
		if !ok {
			continue
		}
		assignee, known := assignees[current.String()]
		if known && assignee != id {
			resp.Findings = append(resp.Findings, Finding{
				Collection: ports.CollectionUsers,
				DocumentID: id,
				Inconsistency: kernel.Inconsistency{
					Field:   "currentOrder",
					Kept:    current.String(),
					Dropped: "orders/" + current.String() + ".assignedShipperId=" + orNull(assignee),
				},
			})
		}
	}

	return resp, nil
}

func orNull(s string) string {
	if s == "" {
		return "null"
	}
	return s
}
