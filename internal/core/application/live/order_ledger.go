package live

import (
	"context"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
)

// OrderLedger is the live list of every order, newest first. It serves the
// order reads of the dashboard from memory.
type OrderLedger struct {
	*Source[[]*order.Order]
}

// NewOrderLedger creates a ledger loading from orders.
func NewOrderLedger(orders ports.OrderReader, opts ...Option) *OrderLedger {
	load := func(ctx context.Context) ([]*order.Order, error) {
		return orders.List(ctx, ports.OrderFilter{})
	}
	size := func(v []*order.Order) int { return len(v) }

	return &OrderLedger{Source: NewSource("orders", ports.CollectionOrders, load, size, opts...)}
}

// Get returns the order from the current snapshot.
func (l *OrderLedger) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	snap, err := l.Current(ctx)
	if err != nil {
		return nil, err
	}

	for _, o := range snap.Value {
		if o.ID().IsEqual(id) {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", id)
}

// List filters the current snapshot.
func (l *OrderLedger) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	snap, err := l.Current(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*order.Order, 0, len(snap.Value))
	for _, o := range snap.Value {
		if filter.Status != order.Unknown && o.Status() != filter.Status {
			continue
		}
		out = append(out, o)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
