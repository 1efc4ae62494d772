package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fleetops/internal/adapters/in/http/api"
	"fleetops/internal/core/application/live"
	"fleetops/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// StreamOrders handles GET /api/v1/stream/orders. Every reload of the order
// ledger sends an "orders" event with the full order list.
func (s *Server) StreamOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	if _, err := s.streams.Orders.Current(reqCtx); err != nil {
		return s.fail(ctx, err)
	}

	return streamSnapshots(ctx, s, "orders", s.streams.Orders.Subscribe(reqCtx), func(c context.Context) (any, error) {
		query, err := queries.NewListOrdersQuery("", "", 0)
		if err != nil {
			return nil, err
		}
		orders, err := s.queries.ListOrders.Handle(c, query)
		if err != nil {
			return nil, err
		}
		return toOrderSummaries(orders), nil
	})
}

// StreamShippers handles GET /api/v1/stream/shippers. Every reload of the
// fleet directory sends a "shippers" event with the roster.
func (s *Server) StreamShippers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	if _, err := s.streams.Fleet.Current(reqCtx); err != nil {
		return s.fail(ctx, err)
	}

	return streamSnapshots(ctx, s, "shippers", s.streams.Fleet.Subscribe(reqCtx), func(c context.Context) (any, error) {
		roster, err := s.queries.ListShippers.Handle(c, queries.NewListShippersQuery())
		if err != nil {
			return nil, err
		}
		return toRoster(roster), nil
	})
}

func streamSnapshots[T any](
	ctx echo.Context,
	s *Server,
	event string,
	updates <-chan live.Snapshot[T],
	render func(context.Context) (any, error),
) error {
	reqCtx := ctx.Request().Context()
	w := ctx.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	heartbeat := time.NewTicker(s.streams.Heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-reqCtx.Done():
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			payload, err := render(reqCtx)
			if err != nil {
				s.logger.WarnContext(reqCtx, "render stream event failed", "event", event, "error", err)
				payload = api.Error{Code: http.StatusInternalServerError, Message: "refresh failed"}
			}
			data, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", snap.Version, event, data); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
