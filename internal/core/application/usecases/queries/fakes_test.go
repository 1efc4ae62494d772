package queries_test

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/inventory"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// fakeOrders serves a fixed, newest-first order list.
type fakeOrders struct {
	orders []*order.Order
	err    error
	lists  int
}

func (f *fakeOrders) Get(_ context.Context, id kernel.ID) (*order.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, o := range f.orders {
		if o.ID().IsEqual(id) {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", id)
}

func (f *fakeOrders) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*order.Order, 0)
	for _, o := range f.orders {
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

type fakeFleet struct {
	shippers []*shipper.Shipper
	err      error
}

func (f *fakeFleet) Get(_ context.Context, id kernel.ID) (*shipper.Shipper, error) {
	for _, s := range f.shippers {
		if s.ID().IsEqual(id) {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("shipper", id)
}

func (f *fakeFleet) ListShippers(context.Context) ([]*shipper.Shipper, error) {
	return f.shippers, f.err
}

type fakeLogs struct {
	entries []*activity.Entry
}

func (f *fakeLogs) Add(_ context.Context, e *activity.Entry) error {
	f.entries = append([]*activity.Entry{e}, f.entries...)
	return nil
}

func (f *fakeLogs) List(_ context.Context, limit int) ([]*activity.Entry, error) {
	if limit > 0 && limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

type fakeInventory struct {
	items []*inventory.Item
}

func (f *fakeInventory) List(context.Context) ([]*inventory.Item, error) {
	return f.items, nil
}

func mkOrder(t *testing.T, p order.RestoreParams) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(p)
	require.NoError(t, err)
	return o
}

func mkShipper(t *testing.T, id, name string, capability shipper.Capability, a shipper.Availability) *shipper.Shipper {
	t.Helper()
	s, err := shipper.RestoreShipper(shipper.RestoreParams{
		ID:           kernel.MustID(id),
		Name:         name,
		Capability:   capability,
		Availability: a,
		Role:         shipper.RoleShipper,
	})
	require.NoError(t, err)
	return s
}

func mkEntry(t *testing.T, id string, role shipper.Role, email, event, details string) *activity.Entry {
	t.Helper()
	e, err := activity.RestoreEntry(kernel.MustID(id), activity.Actor{ID: "U" + id, Email: email, Role: role},
		event, details, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), activity.StatusSuccess)
	require.NoError(t, err)
	return e
}

func mkItem(t *testing.T, id, sku, name, category string, qty, minQty int) *inventory.Item {
	t.Helper()
	item, err := inventory.RestoreItem(inventory.RestoreParams{
		ID:          kernel.MustID(id),
		SKU:         sku,
		Name:        name,
		Category:    category,
		Quantity:    qty,
		MinQuantity: minQty,
	})
	require.NoError(t, err)
	return item
}
