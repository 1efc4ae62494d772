package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	httpadapter "fleetops/internal/adapters/in/http"
	"fleetops/internal/adapters/in/http/auth"
	"fleetops/internal/adapters/out/docrepo"
	"fleetops/internal/adapters/out/docrepo/inventoryrepo"
	"fleetops/internal/adapters/out/docrepo/logrepo"
	"fleetops/internal/adapters/out/docstore"
	"fleetops/internal/adapters/out/docstore/memstore"
	"fleetops/internal/adapters/out/kafka"
	"fleetops/internal/adapters/out/postgres"
	"fleetops/internal/adapters/out/redisfeed"
	"fleetops/internal/core/application/audit"
	"fleetops/internal/core/application/live"
	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/application/usecases/queries"
	"fleetops/internal/core/ports"
	"fleetops/internal/jobs"
	"fleetops/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	store      docstore.Store
	feed       ports.ChangeFeed
	publisher  ports.ChangePublisher
	pgNotifier *postgres.PgNotifier
	uowFactory *docrepo.UnitOfWorkFactory

	orders   *live.OrderLedger
	fleet    *live.FleetDirectory
	logs     *logrepo.Repository
	recorder *audit.Recorder
	stats    queries.GetDashboardStatsQueryHandler

	closers []func() error
	wg      sync.WaitGroup
}

// NewCompositionRoot opens the configured store, change feed and audit
// stream. Close releases them.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	c.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	c.metrics = metrics.New(c.registry)

	if err := c.openStore(ctx); err != nil {
		return nil, errors.Join(err, c.Close(ctx))
	}
	if err := c.openFeed(ctx); err != nil {
		return nil, errors.Join(err, c.Close(ctx))
	}

	c.uowFactory = docrepo.NewUnitOfWorkFactory(c.store, c.publisher, cfg.Store.Transactional, logger)
	c.orders = live.NewOrderLedger(c.uowFactory.OrderReader(), live.WithLogger(logger), live.WithMetrics(c.metrics))
	c.fleet = live.NewFleetDirectory(c.uowFactory.ShipperReader(), live.WithLogger(logger), live.WithMetrics(c.metrics))
	c.logs = logrepo.NewRepository(c.store, c.publisher)
	c.stats = queries.NewGetDashboardStatsQueryHandler(c.orders, c.fleet, cfg.StatsTTL())

	opts := []audit.Option{audit.WithMetrics(c.metrics)}
	if len(cfg.Kafka.Brokers) > 0 {
		stream := kafka.NewAuditPublisher(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		c.closers = append(c.closers, stream.Close)
		opts = append(opts, audit.WithStream(stream))
	}
	c.recorder = audit.NewRecorder(c.logs, logger, opts...)

	logger.InfoContext(ctx, "composition root ready",
		"store", cfg.Store.Driver,
		"feed", cfg.Feed.Driver,
		"transactional", c.uowFactory.Transactional(),
		"audit_stream", len(cfg.Kafka.Brokers) > 0,
	)
	return c, nil
}

func (c *CompositionRoot) openStore(ctx context.Context) error {
	switch c.cfg.Store.Driver {
	case StorePostgres:
		db, err := postgres.Connect(ctx, c.cfg.Database.DSN(), c.cfg.ConnectTimeout(), c.logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		c.closers = append(c.closers, sqlDB.Close)
		c.store = postgres.NewGormStore(db)
	default:
		c.store = memstore.New()
	}
	return nil
}

func (c *CompositionRoot) openFeed(ctx context.Context) error {
	switch c.cfg.Feed.Driver {
	case FeedRedis:
		n := redisfeed.New(c.cfg.Redis.Addr, c.logger)
		c.closers = append(c.closers, n.Close)
		if err := n.Ping(ctx); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		c.feed, c.publisher = n, n
	case FeedPostgres:
		n := postgres.NewPgNotifier(c.cfg.Database.DSN(), c.logger)
		c.pgNotifier = n
		c.feed, c.publisher = n, n
	default:
		n := docstore.NewLocalNotifier()
		c.feed, c.publisher = n, n
	}
	return nil
}

// Start runs the change feed listener and keeps the live views loaded until
// ctx is done.
func (c *CompositionRoot) Start(ctx context.Context) {
	if c.pgNotifier != nil {
		c.goRun(ctx, "pg_notifier", c.pgNotifier.Listen)
	}
	c.goRun(ctx, c.orders.Name(), func(ctx context.Context) error { return c.orders.Run(ctx, c.feed) })
	c.goRun(ctx, c.fleet.Name(), func(ctx context.Context) error { return c.fleet.Run(ctx, c.feed) })
}

func (c *CompositionRoot) goRun(ctx context.Context, name string, run func(context.Context) error) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := run(ctx); err != nil {
			c.logger.ErrorContext(ctx, "background loop stopped", "loop", name, "error", err)
		}
	}()
}

// Close waits for background loops and pending audit writes, then releases
// connections. Background loops stop when the context given to Start is done.
func (c *CompositionRoot) Close(ctx context.Context) error {
	c.wg.Wait()

	var errs []error
	if c.recorder != nil {
		errs = append(errs, c.recorder.Wait(ctx))
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) CreateAssignShipperCommandHandler() commands.AssignShipperCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignShipperCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateUnassignShipperCommandHandler() commands.UnassignShipperCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUnassignShipperCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateRegisterShipperCommandHandler() commands.RegisterShipperCommandHandler {
	var f commands.ShipperUoWFactory = FuncShipperUoWFactory(func() commands.ShipperUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterShipperCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateSetShipperLockCommandHandler() commands.SetShipperLockCommandHandler {
	var f commands.ShipperUoWFactory = FuncShipperUoWFactory(func() commands.ShipperUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetShipperLockCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateRecordDashboardActionCommandHandler() commands.RecordDashboardActionCommandHandler {
	return commands.NewRecordDashboardActionCommandHandler(c.recorder)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.orders, c.fleet)
}

func (c *CompositionRoot) CreateGetEligibleShippersQueryHandler() queries.GetEligibleShippersQueryHandler {
	return queries.NewGetEligibleShippersQueryHandler(c.orders, c.fleet)
}

func (c *CompositionRoot) CreateListShippersQueryHandler() queries.ListShippersQueryHandler {
	return queries.NewListShippersQueryHandler(c.orders, c.fleet)
}

func (c *CompositionRoot) CreateListActivityLogsQueryHandler() queries.ListActivityLogsQueryHandler {
	return queries.NewListActivityLogsQueryHandler(c.logs)
}

func (c *CompositionRoot) CreateListInventoryQueryHandler() queries.ListInventoryQueryHandler {
	return queries.NewListInventoryQueryHandler(inventoryrepo.NewRepository(c.store))
}

// CreateScanConsistencyQueryHandler reads straight from the store so a
// one-shot scan does not need the live views running.
func (c *CompositionRoot) CreateScanConsistencyQueryHandler() queries.ScanConsistencyQueryHandler {
	return queries.NewScanConsistencyQueryHandler(c.uowFactory.OrderReader(), c.uowFactory.ShipperReader())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateScanConsistencyQueryHandler(),
		c.stats,
		jobs.Schedules{
			ConsistencyScan: c.cfg.Jobs.ConsistencyScan,
			StatsWarmup:     c.cfg.Jobs.StatsWarmup,
		},
		c.logger,
	)
}

func (c *CompositionRoot) CreateVerifier() (*auth.Verifier, error) {
	return auth.NewVerifier(c.cfg.Auth.JWTSecret, c.cfg.Auth.Issuer)
}

// CreateRouter builds the HTTP server and its router.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	verifier, err := c.CreateVerifier()
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(
		httpadapter.CommandHandlers{
			Assign:          c.CreateAssignShipperCommandHandler(),
			Unassign:        c.CreateUnassignShipperCommandHandler(),
			Register:        c.CreateRegisterShipperCommandHandler(),
			SetLock:         c.CreateSetShipperLockCommandHandler(),
			DashboardAction: c.CreateRecordDashboardActionCommandHandler(),
		},
		httpadapter.QueryHandlers{
			ListOrders:       c.CreateListOrdersQueryHandler(),
			OrderDetails:     c.CreateGetOrderDetailsQueryHandler(),
			EligibleShippers: c.CreateGetEligibleShippersQueryHandler(),
			ListShippers:     c.CreateListShippersQueryHandler(),
			ActivityLogs:     c.CreateListActivityLogsQueryHandler(),
			Inventory:        c.CreateListInventoryQueryHandler(),
			DashboardStats:   c.stats,
		},
		httpadapter.Streams{
			Orders:    c.orders,
			Fleet:     c.fleet,
			Heartbeat: time.Duration(c.cfg.HTTP.HeartbeatSeconds) * time.Second,
		},
		c.metrics,
		c.logger,
	)

	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		Verifier:     verifier,
		Metrics:      c.metrics,
		Gatherer:     c.registry,
		AllowOrigins: c.cfg.HTTP.AllowOrigins,
		Logger:       c.logger,
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncShipperUoWFactory func() commands.ShipperUoW

func (f FuncShipperUoWFactory) Create() commands.ShipperUoW {
	return f()
}
