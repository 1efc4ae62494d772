package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "fleetops/internal/adapters/in/http"
	"fleetops/internal/adapters/in/http/api"
	"fleetops/internal/adapters/in/http/auth"
	"fleetops/internal/adapters/out/docrepo"
	"fleetops/internal/adapters/out/docrepo/logrepo"
	"fleetops/internal/adapters/out/docstore"
	"fleetops/internal/adapters/out/docstore/memstore"
	"fleetops/internal/core/application/audit"
	"fleetops/internal/core/application/live"
	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/application/usecases/queries"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin    = auth.Principal{ID: "A1", Email: "ops@fleet.io", Role: shipper.RoleAdmin}
	operator = auth.Principal{ID: "U1", Email: "desk@fleet.io", Role: shipper.RoleUser}
)

type assignmentUoWs struct{ f *docrepo.UnitOfWorkFactory }

func (a assignmentUoWs) Create() commands.UoW { return a.f.Create() }

type shipperUoWs struct{ f *docrepo.UnitOfWorkFactory }

func (s shipperUoWs) Create() commands.ShipperUoW { return s.f.Create() }

type harness struct {
	factory  *docrepo.UnitOfWorkFactory
	recorder *audit.Recorder
	verifier *auth.Verifier
	router   *echo.Echo
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memstore.New()
	notifier := docstore.NewLocalNotifier()
	factory := docrepo.NewUnitOfWorkFactory(store, notifier, false, logger)
	recorder := audit.NewRecorder(logrepo.NewRepository(store, notifier), logger)

	orders := factory.OrderReader()
	fleet := factory.ShipperReader()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	server := httpadapter.NewServer(
		httpadapter.CommandHandlers{
			Assign:          commands.NewAssignShipperCommandHandler(assignmentUoWs{factory}, recorder),
			Unassign:        commands.NewUnassignShipperCommandHandler(assignmentUoWs{factory}, recorder),
			Register:        commands.NewRegisterShipperCommandHandler(shipperUoWs{factory}, recorder),
			SetLock:         commands.NewSetShipperLockCommandHandler(shipperUoWs{factory}, recorder),
			DashboardAction: commands.NewRecordDashboardActionCommandHandler(recorder),
		},
		httpadapter.QueryHandlers{
			ListOrders:       queries.NewListOrdersQueryHandler(orders),
			OrderDetails:     queries.NewGetOrderDetailsQueryHandler(orders, fleet),
			EligibleShippers: queries.NewGetEligibleShippersQueryHandler(orders, fleet),
			ListShippers:     queries.NewListShippersQueryHandler(orders, fleet),
			ActivityLogs:     queries.NewListActivityLogsQueryHandler(logrepo.NewRepository(store, notifier)),
			DashboardStats:   queries.NewGetDashboardStatsQueryHandler(orders, fleet, time.Minute),
		},
		httpadapter.Streams{
			Orders: live.NewOrderLedger(orders),
			Fleet:  live.NewFleetDirectory(fleet),
		},
		m,
		logger,
	)

	verifier, err := auth.NewVerifier("test-secret", "fleetops")
	require.NoError(t, err)

	router, err := httpadapter.NewRouter(server, httpadapter.RouterConfig{
		Verifier: verifier,
		Metrics:  m,
		Gatherer: reg,
		Logger:   logger,
	})
	require.NoError(t, err)

	return &harness{factory: factory, recorder: recorder, verifier: verifier, router: router}
}

func (h *harness) seedOrder(t *testing.T, p order.RestoreParams) {
	t.Helper()
	ctx := context.Background()
	p.Route = kernel.NewRoute("Hub A", "Hub B")
	o, err := order.RestoreOrder(p)
	require.NoError(t, err)

	uow := h.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Commit(ctx))
}

func (h *harness) seedShipper(t *testing.T, id, name string, capability shipper.Capability) {
	t.Helper()
	ctx := context.Background()
	s, err := shipper.NewShipper(kernel.MustID(id), name, capability, shipper.Contact{}, "", time.Now())
	require.NoError(t, err)

	uow := h.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ShipperRepository().Add(ctx, s))
	require.NoError(t, uow.Commit(ctx))
}

func (h *harness) do(t *testing.T, p auth.Principal, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := h.verifier.Issue(p, time.Hour)
	require.NoError(t, err)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestServer_ListOrders(t *testing.T) {
	// Given
	h := newHarness(t)
	h.seedOrder(t, order.RestoreParams{ID: kernel.MustID("O1"), Status: order.Pending, Stage: order.StagePickup})
	h.seedOrder(t, order.RestoreParams{ID: kernel.MustID("O2"), Status: order.Completed, Stage: order.StageDelivered})

	// When
	rec := h.do(t, operator, http.MethodGet, "/api/v1/orders?status=PENDING", "")

	// Then
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]api.OrderSummary](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, "O1", orders[0].Id)
	assert.Equal(t, "PENDING", orders[0].Status)
	assert.Nil(t, orders[0].AssignedShipperId)
}

func TestServer_RequiresToken(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_GetOrder_NotFound(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, operator, http.MethodGet, "/api/v1/orders/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[api.Error](t, rec)
	assert.Equal(t, http.StatusNotFound, body.Code)
}

func TestServer_AssignShipper(t *testing.T) {
	t.Run("assigns_current_stage", func(t *testing.T) {
		// Given
		h := newHarness(t)
		h.seedOrder(t, order.RestoreParams{ID: kernel.MustID("O1"), Status: order.Pending, Stage: order.StageWarehouse})
		h.seedShipper(t, "S1", "Alice", shipper.CapabilityWarehouse)

		// When
		rec := h.do(t, admin, http.MethodPut, "/api/v1/orders/O1/assignment", `{"shipperId":"S1"}`)

		// Then
		require.Equal(t, http.StatusNoContent, rec.Code)

		ctx := context.Background()
		o, err := h.factory.OrderReader().Get(ctx, kernel.MustID("O1"))
		require.NoError(t, err)
		assert.Equal(t, order.Processing, o.Status())
		assert.Equal(t, "Alice", o.ShipperName())
		binding, ok := o.Binding(2)
		require.True(t, ok)
		id, _ := binding.ShipperID()
		assert.Equal(t, "S1", id.String())

		s, err := h.factory.ShipperReader().Get(ctx, kernel.MustID("S1"))
		require.NoError(t, err)
		current, busy := s.Availability().CurrentOrder()
		require.True(t, busy)
		assert.Equal(t, "O1", current.String())

		require.NoError(t, h.recorder.Wait(ctx))
		logs := h.do(t, admin, http.MethodGet, "/api/v1/logs", "")
		require.Equal(t, http.StatusOK, logs.Code)
		entries := decode[[]api.ActivityLog](t, logs)
		require.Len(t, entries, 1)
		assert.Equal(t, "A1", entries[0].UserId)
	})

	t.Run("completed_order_conflicts", func(t *testing.T) {
		h := newHarness(t)
		h.seedOrder(t, order.RestoreParams{ID: kernel.MustID("O1"), Status: order.Completed, Stage: order.StageDelivered})
		h.seedShipper(t, "S1", "Alice", shipper.CapabilityShipping)

		rec := h.do(t, admin, http.MethodPut, "/api/v1/orders/O1/assignment", `{"shipperId":"S1"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		s, err := h.factory.ShipperReader().Get(context.Background(), kernel.MustID("S1"))
		require.NoError(t, err)
		assert.True(t, s.IsFree())
	})

	t.Run("missing_shipper_id_is_bad_request", func(t *testing.T) {
		h := newHarness(t)
		h.seedOrder(t, order.RestoreParams{ID: kernel.MustID("O1"), Status: order.Pending, Stage: order.StagePickup})

		rec := h.do(t, admin, http.MethodPut, "/api/v1/orders/O1/assignment", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non_admin_is_forbidden", func(t *testing.T) {
		h := newHarness(t)
		h.seedOrder(t, order.RestoreParams{ID: kernel.MustID("O1"), Status: order.Pending, Stage: order.StagePickup})

		rec := h.do(t, operator, http.MethodPut, "/api/v1/orders/O1/assignment", `{"shipperId":"S1"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		o, err := h.factory.OrderReader().Get(context.Background(), kernel.MustID("O1"))
		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestServer_UnassignShipper(t *testing.T) {
	t.Run("releases_shipper", func(t *testing.T) {
		// Given
		h := newHarness(t)
		h.seedOrder(t, order.RestoreParams{ID: kernel.MustID("O1"), Status: order.Pending, Stage: order.StagePickup})
		h.seedShipper(t, "S1", "Alice", shipper.CapabilityPickup)
		require.Equal(t, http.StatusNoContent,
			h.do(t, admin, http.MethodPut, "/api/v1/orders/O1/assignment", `{"shipperId":"S1"}`).Code)

		// When
		rec := h.do(t, admin, http.MethodDelete, "/api/v1/orders/O1/assignment", "")

		// Then
		require.Equal(t, http.StatusNoContent, rec.Code)
		ctx := context.Background()
		o, err := h.factory.OrderReader().Get(ctx, kernel.MustID("O1"))
		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		s, err := h.factory.ShipperReader().Get(ctx, kernel.MustID("S1"))
		require.NoError(t, err)
		assert.True(t, s.IsFree())
		require.NoError(t, h.recorder.Wait(ctx))
	})

	t.Run("without_assignee_conflicts", func(t *testing.T) {
		h := newHarness(t)
		h.seedOrder(t, order.RestoreParams{ID: kernel.MustID("O1"), Status: order.Pending, Stage: order.StagePickup})

		rec := h.do(t, admin, http.MethodDelete, "/api/v1/orders/O1/assignment", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestServer_RegisterShipper(t *testing.T) {
	// Given
	h := newHarness(t)

	// When
	rec := h.do(t, admin, http.MethodPost, "/api/v1/shippers",
		`{"name":"Lan Nguyen","type":2,"email":"lan@fleet.io","password":"s3cret!"}`)

	// Then
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[api.Created](t, rec)
	require.NotEmpty(t, created.Id)

	roster := h.do(t, operator, http.MethodGet, "/api/v1/shippers", "")
	require.Equal(t, http.StatusOK, roster.Code)
	body := decode[api.Roster](t, roster)
	require.Len(t, body.Shippers, 1)
	assert.Equal(t, "Lan Nguyen", body.Shippers[0].Name)
	assert.Equal(t, 2, body.Shippers[0].Type)
	require.NoError(t, h.recorder.Wait(context.Background()))
}

func TestServer_Health(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Metrics(t *testing.T) {
	h := newHarness(t)
	h.do(t, operator, http.MethodGet, "/api/v1/orders", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fleetops_")
}
