package queries

import (
	"context"
	"errors"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/guard"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery reads one order with its progress.
type GetOrderDetailsQuery struct {
	orderID kernel.ID
	guard   guard.ConstructorGuard
}

// NewGetOrderDetailsQuery validates the order identifier.
func NewGetOrderDetailsQuery(orderID string) (GetOrderDetailsQuery, error) {
	id, err := kernel.IDFromString(orderID)
	if err != nil {
		return GetOrderDetailsQuery{}, ErrOrderIDIsRequired
	}
	return GetOrderDetailsQuery{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderDetailsQuery) OrderID() kernel.ID {
	return q.orderID
}

// TimelineStepView is one stage of the shipment timeline.
type TimelineStepView struct {
	Stage string
	Label string
	State string
}

// GetOrderDetailsQueryResponse is the order detail screen.
type GetOrderDetailsQueryResponse struct {
	Order         OrderSummary
	CustomerPhone string
	Note          string
	// QRCode is the payload to encode; the order id when none was stored.
	QRCode        string
	ActiveHandler string
	Timeline      []TimelineStepView
	Verification  []StageProgressView
	Warnings      []string
	CanUnassign   bool
	RefreshedAt   time.Time
}

// GetOrderDetailsQueryHandler joins an order with the roster names.
type GetOrderDetailsQueryHandler struct {
	orders ports.OrderReader
	fleet  ports.ShipperReader
	now    func() time.Time
}

// NewGetOrderDetailsQueryHandler creates the handler.
func NewGetOrderDetailsQueryHandler(orders ports.OrderReader, fleet ports.ShipperReader) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{orders: orders, fleet: fleet, now: time.Now}
}

// Handle executes the query.
func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (GetOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	roster, err := h.fleet.ListShippers(ctx)
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	names := services.NewDisplayNames(roster)

	timeline := make([]TimelineStepView, 0, 4)
	for _, step := range o.Timeline() {
		timeline = append(timeline, TimelineStepView{
			Stage: step.Stage.String(),
			Label: step.Label,
			State: step.State.String(),
		})
	}

	warnings := make([]string, 0, len(o.Inconsistencies()))
	for _, inc := range o.Inconsistencies() {
		warnings = append(warnings, inc.String())
	}

	details := o.Details()
	qr := details.QRCode
	if qr == "" {
		qr = o.ID().String()
	}

	_, assigned := o.AssignedShipper()

	return GetOrderDetailsQueryResponse{
		Order:         newOrderSummary(o),
		CustomerPhone: details.CustomerPhone,
		Note:          details.Note,
		QRCode:        qr,
		ActiveHandler: names.ActiveHandler(o),
		Timeline:      timeline,
		Verification:  newStageProgressViews(names.StageProgress(o)),
		Warnings:      warnings,
		CanUnassign:   assigned && !o.IsCompleted(),
		RefreshedAt:   h.now().UTC(),
	}, nil
}
