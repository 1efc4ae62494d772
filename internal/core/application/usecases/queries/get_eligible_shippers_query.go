package queries

import (
	"context"
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

var (
	ErrGetEligibleShippersQueryIsNotConstructed = errors.New(
		"GetEligibleShippersQuery must be created via NewGetEligibleShippersQuery constructor",
	)
	ErrOrderIDIsRequired = errs.NewValueIsRequiredError("orderId")
)

// GetEligibleShippersQuery asks which shippers may be offered for an order's
// current stage.
type GetEligibleShippersQuery struct {
	orderID kernel.ID
	guard   guard.ConstructorGuard
}

// NewGetEligibleShippersQuery validates the order identifier.
func NewGetEligibleShippersQuery(orderID string) (GetEligibleShippersQuery, error) {
	id, err := kernel.IDFromString(orderID)
	if err != nil {
		return GetEligibleShippersQuery{}, ErrOrderIDIsRequired
	}
	return GetEligibleShippersQuery{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetEligibleShippersQuery) Validate() error {
	return q.guard.Validate(ErrGetEligibleShippersQueryIsNotConstructed)
}

// OrderID returns the order being assigned.
func (q GetEligibleShippersQuery) OrderID() kernel.ID {
	return q.orderID
}

// GetEligibleShippersQueryResponse is the choice offered to the operator.
type GetEligibleShippersQueryResponse struct {
	OrderID      string
	Stage        string
	RequiredType int
	// UsingFallback tells the operator that no type-matched shipper is free
	// and the list is a manual override.
	UsingFallback bool
	Shippers      []ShipperSummary
	// CanAssign is false when the list is empty or the order is completed.
	CanAssign bool
}

// GetEligibleShippersQueryHandler reads the order and the roster and runs the
// eligibility service.
type GetEligibleShippersQueryHandler struct {
	orders      ports.OrderReader
	fleet       ports.ShipperReader
	eligibility services.Eligibility
}

// NewGetEligibleShippersQueryHandler creates the handler.
func NewGetEligibleShippersQueryHandler(orders ports.OrderReader, fleet ports.ShipperReader) GetEligibleShippersQueryHandler {
	return GetEligibleShippersQueryHandler{
		orders:      orders,
		fleet:       fleet,
		eligibility: services.NewEligibility(),
	}
}

// Handle executes the query.
func (h GetEligibleShippersQueryHandler) Handle(
	ctx context.Context,
	query GetEligibleShippersQuery,
) (GetEligibleShippersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEligibleShippersQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetEligibleShippersQueryResponse{}, err
	}

	roster, err := h.fleet.ListShippers(ctx)
	if err != nil {
		return GetEligibleShippersQueryResponse{}, err
	}

	result, err := h.eligibility.Compute(o, roster)
	if err != nil {
		return GetEligibleShippersQueryResponse{}, err
	}

	return GetEligibleShippersQueryResponse{
		OrderID:       o.ID().String(),
		Stage:         o.Stage().String(),
		RequiredType:  result.RequiredType,
		UsingFallback: result.UsingFallback,
		Shippers:      newShipperSummaries(result.Eligible()),
		CanAssign:     !result.IsEmpty() && !o.IsCompleted(),
	}, nil
}
