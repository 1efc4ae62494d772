package commands_test

import (
	"context"

	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateAssignment(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockShipperRepository struct{ mock.Mock }

func (m *MockShipperRepository) Add(ctx context.Context, s *shipper.Shipper) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipperRepository) Get(ctx context.Context, id kernel.ID) (*shipper.Shipper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipper.Shipper), args.Error(1)
}

func (m *MockShipperRepository) ListShippers(ctx context.Context) ([]*shipper.Shipper, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipper.Shipper), args.Error(1)
}

func (m *MockShipperRepository) UpdateAvailability(ctx context.Context, id kernel.ID, a shipper.Availability) error {
	args := m.Called(ctx, id, a)
	return args.Error(0)
}

func (m *MockShipperRepository) UpdateLock(ctx context.Context, s *shipper.Shipper) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ShipperRepository() ports.ShipperRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipperRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockShipperUoWFactory struct{ mock.Mock }

func (m *MockShipperUoWFactory) Create() commands.ShipperUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipperUoW)
}

type MockActivityLogger struct{ mock.Mock }

func (m *MockActivityLogger) LogActivity(ctx context.Context, actor activity.Actor, event, details string) {
	m.Called(ctx, actor, event, details)
}

var operator = activity.Actor{ID: "A1", Email: "ops@fleet.io", Role: shipper.RoleAdmin}
