package http

import (
	"log/slog"
	"net/http"
	"time"

	"fleetops/internal/adapters/in/http/api"
	"fleetops/internal/adapters/in/http/auth"
	"fleetops/internal/core/application/live"
	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/application/usecases/queries"
	"fleetops/internal/core/domain/model/activity"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// CommandHandlers are the write use cases served over HTTP.
type CommandHandlers struct {
	Assign          commands.AssignShipperCommandHandler
	Unassign        commands.UnassignShipperCommandHandler
	Register        commands.RegisterShipperCommandHandler
	SetLock         commands.SetShipperLockCommandHandler
	DashboardAction commands.RecordDashboardActionCommandHandler
}

// QueryHandlers are the read use cases served over HTTP.
type QueryHandlers struct {
	ListOrders       queries.ListOrdersQueryHandler
	OrderDetails     queries.GetOrderDetailsQueryHandler
	EligibleShippers queries.GetEligibleShippersQueryHandler
	ListShippers     queries.ListShippersQueryHandler
	ActivityLogs     queries.ListActivityLogsQueryHandler
	Inventory        queries.ListInventoryQueryHandler
	DashboardStats   queries.GetDashboardStatsQueryHandler
}

// Streams are the live views pushed to server-sent event clients.
type Streams struct {
	Orders *live.OrderLedger
	Fleet  *live.FleetDirectory
	// Heartbeat is the keep-alive comment interval.
	Heartbeat time.Duration
}

// Server implements api.ServerInterface on the application use cases.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
	streams  Streams
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	commandHandlers CommandHandlers,
	queryHandlers QueryHandlers,
	streams Streams,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Server {
	if streams.Heartbeat <= 0 {
		streams.Heartbeat = 15 * time.Second
	}
	return &Server{
		commands: commandHandlers,
		queries:  queryHandlers,
		streams:  streams,
		metrics:  m,
		logger:   logger.With("component", "http"),
	}
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params api.ListOrdersParams) error {
	query, err := queries.NewListOrdersQuery(deref(params.Status), deref(params.Warehouse), deref(params.Limit))
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.queries.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderSummaries(orders))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID string) error {
	query, err := queries.NewGetOrderDetailsQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	details, err := s.queries.OrderDetails.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetails(details))
}

// GetEligibleShippers handles GET /api/v1/orders/{orderId}/eligible-shippers.
func (s *Server) GetEligibleShippers(ctx echo.Context, orderID string) error {
	query, err := queries.NewGetEligibleShippersQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	eligible, err := s.queries.EligibleShippers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	shippers := make([]api.Shipper, 0, len(eligible.Shippers))
	for _, sh := range eligible.Shippers {
		shippers = append(shippers, toShipper(sh))
	}
	return ctx.JSON(http.StatusOK, api.EligibleShippers{
		OrderId:       eligible.OrderID,
		Stage:         eligible.Stage,
		RequiredType:  eligible.RequiredType,
		UsingFallback: eligible.UsingFallback,
		CanAssign:     eligible.CanAssign,
		Shippers:      shippers,
	})
}

// AssignShipper handles PUT /api/v1/orders/{orderId}/assignment.
func (s *Server) AssignShipper(ctx echo.Context, orderID string) error {
	var body api.AssignShipperRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignShipperCommand(orderID, body.ShipperId, actorOf(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	err = s.commands.Assign.Handle(ctx.Request().Context(), cmd)
	s.metrics.ObserveAssignment("assign", err)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.queries.DashboardStats.Invalidate()
	return ctx.NoContent(http.StatusNoContent)
}

// UnassignShipper handles DELETE /api/v1/orders/{orderId}/assignment.
func (s *Server) UnassignShipper(ctx echo.Context, orderID string) error {
	cmd, err := commands.NewUnassignShipperCommand(orderID, actorOf(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	err = s.commands.Unassign.Handle(ctx.Request().Context(), cmd)
	s.metrics.ObserveAssignment("unassign", err)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.queries.DashboardStats.Invalidate()
	return ctx.NoContent(http.StatusNoContent)
}

// ListShippers handles GET /api/v1/shippers.
func (s *Server) ListShippers(ctx echo.Context) error {
	roster, err := s.queries.ListShippers.Handle(ctx.Request().Context(), queries.NewListShippersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRoster(roster))
}

// RegisterShipper handles POST /api/v1/shippers.
func (s *Server) RegisterShipper(ctx echo.Context) error {
	var body api.RegisterShipperRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRegisterShipperCommand(
		body.Name,
		body.Type,
		shipper.Contact{Email: body.Email, Phone: body.Phone},
		body.Password,
		actorOf(ctx),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.commands.Register.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.queries.DashboardStats.Invalidate()
	return ctx.JSON(http.StatusCreated, api.Created{Id: id.String()})
}

// SetShipperLock handles PUT /api/v1/shippers/{shipperId}/lock.
func (s *Server) SetShipperLock(ctx echo.Context, shipperID string) error {
	var body api.SetLockRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetShipperLockCommand(shipperID, body.Locked, actorOf(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.commands.SetLock.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListActivityLogs handles GET /api/v1/logs.
func (s *Server) ListActivityLogs(ctx echo.Context, params api.ListActivityLogsParams) error {
	query := queries.NewListActivityLogsQuery(deref(params.Tab), deref(params.Search), deref(params.Limit))

	entries, err := s.queries.ActivityLogs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.ActivityLog, len(entries))
	for i, e := range entries {
		response[i] = api.ActivityLog{
			Id:        e.ID,
			UserId:    e.UserID,
			UserEmail: e.UserEmail,
			Role:      e.Role,
			Event:     e.Event,
			Details:   e.Details,
			Status:    e.Status,
			Timestamp: e.At,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListInventory handles GET /api/v1/inventory.
func (s *Server) ListInventory(ctx echo.Context, params api.ListInventoryParams) error {
	query := queries.NewListInventoryQuery(deref(params.Category), deref(params.Search))

	inventory, err := s.queries.Inventory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	items := make([]api.InventoryItem, len(inventory.Items))
	for i, item := range inventory.Items {
		items[i] = api.InventoryItem{
			Id:          item.ID,
			Sku:         item.SKU,
			Name:        item.Name,
			Category:    item.Category,
			Quantity:    item.Quantity,
			MinQuantity: item.MinQuantity,
			Unit:        item.Unit,
			Warehouse:   item.Warehouse,
			Zone:        item.Zone,
			LowStock:    item.LowStock,
			LastUpdated: timeOrNil(item.LastUpdated),
		}
	}
	return ctx.JSON(http.StatusOK, api.Inventory{
		Items:      items,
		Categories: inventory.Categories,
		LowStock:   inventory.LowStock,
	})
}

// GetDashboardStats handles GET /api/v1/dashboard/stats.
func (s *Server) GetDashboardStats(ctx echo.Context) error {
	stats, err := s.queries.DashboardStats.Handle(ctx.Request().Context(), queries.NewGetDashboardStatsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	byWarehouse := make([]api.WarehouseCount, len(stats.OrdersByWarehouse))
	for i, w := range stats.OrdersByWarehouse {
		byWarehouse[i] = api.WarehouseCount{Warehouse: w.Warehouse, Orders: w.Orders}
	}
	return ctx.JSON(http.StatusOK, api.DashboardStats{
		TotalOrders:       stats.TotalOrders,
		PendingOrders:     stats.PendingOrders,
		ProcessingOrders:  stats.ProcessingOrders,
		CompletedOrders:   stats.CompletedOrders,
		FreeShippers:      stats.FreeShippers,
		BusyShippers:      stats.BusyShippers,
		OrdersByWarehouse: byWarehouse,
		RecentOrders:      toOrderSummaries(stats.RecentOrders),
		ComputedAt:        stats.ComputedAt,
	})
}

// RecordDashboardAction handles POST /api/v1/dashboard/actions.
func (s *Server) RecordDashboardAction(ctx echo.Context) error {
	var body api.DashboardActionRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordDashboardActionCommand(body.Action, actorOf(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.commands.DashboardAction.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

func actorOf(ctx echo.Context) activity.Actor {
	p, ok := auth.FromContext(ctx.Request().Context())
	if !ok {
		return activity.Actor{}
	}
	return p.Actor()
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
