package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// ServerInterface is implemented by the HTTP server.
type ServerInterface interface {
	// (GET /orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderID string) error
	// (GET /orders/{orderId}/eligible-shippers)
	GetEligibleShippers(ctx echo.Context, orderID string) error
	// (PUT /orders/{orderId}/assignment)
	AssignShipper(ctx echo.Context, orderID string) error
	// (DELETE /orders/{orderId}/assignment)
	UnassignShipper(ctx echo.Context, orderID string) error
	// (GET /shippers)
	ListShippers(ctx echo.Context) error
	// (POST /shippers)
	RegisterShipper(ctx echo.Context) error
	// (PUT /shippers/{shipperId}/lock)
	SetShipperLock(ctx echo.Context, shipperID string) error
	// (GET /logs)
	ListActivityLogs(ctx echo.Context, params ListActivityLogsParams) error
	// (GET /inventory)
	ListInventory(ctx echo.Context, params ListInventoryParams) error
	// (GET /dashboard/stats)
	GetDashboardStats(ctx echo.Context) error
	// (POST /dashboard/actions)
	RecordDashboardAction(ctx echo.Context) error
	// (GET /stream/orders)
	StreamOrders(ctx echo.Context) error
	// (GET /stream/shippers)
	StreamShippers(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return badParameter("status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "warehouse", ctx.QueryParams(), &params.Warehouse); err != nil {
		return badParameter("warehouse", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return badParameter("limit", err)
	}

	return w.Handler.ListOrders(ctx, params)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := pathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

// GetEligibleShippers converts echo context to params.
func (w *ServerInterfaceWrapper) GetEligibleShippers(ctx echo.Context) error {
	orderID, err := pathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetEligibleShippers(ctx, orderID)
}

// AssignShipper converts echo context to params.
func (w *ServerInterfaceWrapper) AssignShipper(ctx echo.Context) error {
	orderID, err := pathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.AssignShipper(ctx, orderID)
}

// UnassignShipper converts echo context to params.
func (w *ServerInterfaceWrapper) UnassignShipper(ctx echo.Context) error {
	orderID, err := pathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.UnassignShipper(ctx, orderID)
}

// ListShippers converts echo context to params.
func (w *ServerInterfaceWrapper) ListShippers(ctx echo.Context) error {
	return w.Handler.ListShippers(ctx)
}

// RegisterShipper converts echo context to params.
func (w *ServerInterfaceWrapper) RegisterShipper(ctx echo.Context) error {
	return w.Handler.RegisterShipper(ctx)
}

// SetShipperLock converts echo context to params.
func (w *ServerInterfaceWrapper) SetShipperLock(ctx echo.Context) error {
	shipperID, err := pathParameter(ctx, "shipperId")
	if err != nil {
		return err
	}
	return w.Handler.SetShipperLock(ctx, shipperID)
}

// ListActivityLogs converts echo context to params.
func (w *ServerInterfaceWrapper) ListActivityLogs(ctx echo.Context) error {
	var params ListActivityLogsParams

	if err := runtime.BindQueryParameter("form", true, false, "tab", ctx.QueryParams(), &params.Tab); err != nil {
		return badParameter("tab", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "search", ctx.QueryParams(), &params.Search); err != nil {
		return badParameter("search", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return badParameter("limit", err)
	}

	return w.Handler.ListActivityLogs(ctx, params)
}

// ListInventory converts echo context to params.
func (w *ServerInterfaceWrapper) ListInventory(ctx echo.Context) error {
	var params ListInventoryParams

	if err := runtime.BindQueryParameter("form", true, false, "category", ctx.QueryParams(), &params.Category); err != nil {
		return badParameter("category", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "search", ctx.QueryParams(), &params.Search); err != nil {
		return badParameter("search", err)
	}

	return w.Handler.ListInventory(ctx, params)
}

// GetDashboardStats converts echo context to params.
func (w *ServerInterfaceWrapper) GetDashboardStats(ctx echo.Context) error {
	return w.Handler.GetDashboardStats(ctx)
}

// RecordDashboardAction converts echo context to params.
func (w *ServerInterfaceWrapper) RecordDashboardAction(ctx echo.Context) error {
	return w.Handler.RecordDashboardAction(ctx)
}

// StreamOrders converts echo context to params.
func (w *ServerInterfaceWrapper) StreamOrders(ctx echo.Context) error {
	return w.Handler.StreamOrders(ctx)
}

// StreamShippers converts echo context to params.
func (w *ServerInterfaceWrapper) StreamShippers(ctx echo.Context) error {
	return w.Handler.StreamShippers(ctx)
}

// EchoRouter is the part of echo.Echo and echo.Group used for routing.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// Middlewares are applied per route class.
type Middlewares struct {
	// Read guards every route.
	Read []echo.MiddlewareFunc
	// Write additionally guards routes that change data.
	Write []echo.MiddlewareFunc
}

// RegisterHandlers adds every API route under BasePath.
func RegisterHandlers(router EchoRouter, si ServerInterface, m Middlewares) {
	w := &ServerInterfaceWrapper{Handler: si}
	read := m.Read
	write := append(append([]echo.MiddlewareFunc{}, m.Read...), m.Write...)

	router.GET(BasePath+"/orders", w.ListOrders, read...)
	router.GET(BasePath+"/orders/:orderId", w.GetOrder, read...)
	router.GET(BasePath+"/orders/:orderId/eligible-shippers", w.GetEligibleShippers, read...)
	router.PUT(BasePath+"/orders/:orderId/assignment", w.AssignShipper, write...)
	router.DELETE(BasePath+"/orders/:orderId/assignment", w.UnassignShipper, write...)
	router.GET(BasePath+"/shippers", w.ListShippers, read...)
	router.POST(BasePath+"/shippers", w.RegisterShipper, write...)
	router.PUT(BasePath+"/shippers/:shipperId/lock", w.SetShipperLock, write...)
	router.GET(BasePath+"/logs", w.ListActivityLogs, read...)
	router.GET(BasePath+"/inventory", w.ListInventory, read...)
	router.GET(BasePath+"/dashboard/stats", w.GetDashboardStats, read...)
	router.POST(BasePath+"/dashboard/actions", w.RecordDashboardAction, write...)
	router.GET(BasePath+"/stream/orders", w.StreamOrders, read...)
	router.GET(BasePath+"/stream/shippers", w.StreamShippers, read...)
}

func pathParameter(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", badParameter(name, err)
	}
	return value, nil
}

func badParameter(name string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
}
