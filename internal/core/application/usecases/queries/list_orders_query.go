package queries

import (
	"context"
	"errors"
	"strings"

	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
	ErrStatusIsInvalid = errs.NewValueIsInvalidError("status")
)

// ListOrdersQuery lists orders newest first.
//
// Example:
//
//	query, err := NewListOrdersQuery("PENDING", "", 50)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status    order.Status
	warehouse string
	limit     int
	guard     guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. An empty status lists every status; a
// warehouse keeps orders leaving from or going to it; limit 0 means all.
func NewListOrdersQuery(status, warehouse string, limit int) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		warehouse: strings.TrimSpace(warehouse),
		guard:     guard.NewConstructorGuard(),
	}

	if strings.TrimSpace(status) != "" {
		q.status = order.ParseStatus(status)
		if q.status == order.Unknown {
			return ListOrdersQuery{}, ErrStatusIsInvalid
		}
	}

	if limit < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, nil)
	}
	q.limit = limit

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ListOrdersQueryHandler reads the order listing.
type ListOrdersQueryHandler struct {
	orders ports.OrderReader
}

// NewListOrdersQueryHandler creates the handler.
func NewListOrdersQueryHandler(orders ports.OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle executes the query.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := ports.OrderFilter{Status: query.status}
	if query.warehouse == "" {
		filter.Limit = query.limit
	}

	orders, err := h.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if query.warehouse != "" {
		orders = byWarehouse(orders, query.warehouse, query.limit)
	}

	return newOrderSummaries(orders), nil
}

func byWarehouse(orders []*order.Order, warehouse string, limit int) []*order.Order {
	out := make([]*order.Order, 0)
	for _, o := range orders {
		if o.Route().From() != warehouse && o.Route().To() != warehouse {
			continue
		}
		out = append(out, o)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
