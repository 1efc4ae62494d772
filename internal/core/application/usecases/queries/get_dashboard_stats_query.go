package queries

import (
	"context"
	"errors"
	"sort"
	"time"

	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/guard"

	"github.com/patrickmn/go-cache"
)

const (
	dashboardCacheKey = "dashboard"
	recentOrdersLimit = 5
)

var ErrGetDashboardStatsQueryIsNotConstructed = errors.New(
	"GetDashboardStatsQuery must be created via NewGetDashboardStatsQuery constructor",
)

// GetDashboardStatsQuery reads the headline numbers of the dashboard.
type GetDashboardStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDashboardStatsQuery creates the query.
func NewGetDashboardStatsQuery() GetDashboardStatsQuery {
	return GetDashboardStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardStatsQueryIsNotConstructed)
}

// WarehouseCount is the number of orders leaving one warehouse.
type WarehouseCount struct {
	Warehouse string
	Orders    int
}

// DashboardStats are the dashboard figures.
type DashboardStats struct {
	TotalOrders      int
	PendingOrders    int
	ProcessingOrders int
	CompletedOrders  int
	FreeShippers     int
	// BusyShippers counts shippers flagged busy or holding an order.
	BusyShippers      int
	OrdersByWarehouse []WarehouseCount
	RecentOrders      []OrderSummary
	ComputedAt        time.Time
}

// GetDashboardStatsQueryHandler computes dashboard figures and keeps them for
// a short time. The figures are recomputed on expiry or on Refresh.
type GetDashboardStatsQueryHandler struct {
	orders ports.OrderReader
	fleet  ports.ShipperReader
	cache  *cache.Cache
	now    func() time.Time
}

// NewGetDashboardStatsQueryHandler creates the handler. A ttl of zero disables
// caching.
func NewGetDashboardStatsQueryHandler(
	orders ports.OrderReader,
	fleet ports.ShipperReader,
	ttl time.Duration,
) GetDashboardStatsQueryHandler {
	h := GetDashboardStatsQueryHandler{
		orders: orders,
		fleet:  fleet,
		now:    time.Now,
	}
	if ttl > 0 {
		h.cache = cache.New(ttl, 2*ttl)
	}
	return h
}

// Handle returns cached figures when fresh, otherwise recomputes them.
func (h GetDashboardStatsQueryHandler) Handle(ctx context.Context, query GetDashboardStatsQuery) (DashboardStats, error) {
	if err := query.Validate(); err != nil {
		return DashboardStats{}, err
	}

	if h.cache != nil {
		if cached, ok := h.cache.Get(dashboardCacheKey); ok {
			return cached.(DashboardStats), nil
		}
	}

	return h.Refresh(ctx)
}

// Refresh recomputes the figures and replaces the cached copy.
func (h GetDashboardStatsQueryHandler) Refresh(ctx context.Context) (DashboardStats, error) {
	orders, err := h.orders.List(ctx, ports.OrderFilter{})
	if err != nil {
		return DashboardStats{}, err
	}

	roster, err := h.fleet.ListShippers(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		TotalOrders: len(orders),
		ComputedAt:  h.now().UTC(),
	}

	byWarehouse := make(map[string]int)
	for _, o := range orders {
		switch o.Status() {
		case order.Pending:
			stats.PendingOrders++
		case order.Processing:
			stats.ProcessingOrders++
		case order.Completed:
			stats.CompletedOrders++
		}
		if from := o.Route().From(); from != "" {
			byWarehouse[from]++
		}
	}

	for warehouse, n := range byWarehouse {
		stats.OrdersByWarehouse = append(stats.OrdersByWarehouse, WarehouseCount{Warehouse: warehouse, Orders: n})
	}
	sort.Slice(stats.OrdersByWarehouse, func(i, j int) bool {
		return stats.OrdersByWarehouse[i].Warehouse < stats.OrdersByWarehouse[j].Warehouse
	})

	for _, s := range roster {
		if s.Availability().IsOccupied() {
			stats.BusyShippers++
		}
	}
	stats.FreeShippers = len(roster) - stats.BusyShippers

	recent := orders
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}
	stats.RecentOrders = newOrderSummaries(recent)

	if h.cache != nil {
		h.cache.SetDefault(dashboardCacheKey, stats)
	}

	return stats, nil
}

// Invalidate drops the cached figures.
func (h GetDashboardStatsQueryHandler) Invalidate() {
	if h.cache != nil {
		h.cache.Delete(dashboardCacheKey)
	}
}
