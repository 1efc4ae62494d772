package http

import (
	"log/slog"
	"net/http"
	"time"

	"fleetops/internal/adapters/in/http/api"
	"fleetops/internal/adapters/in/http/auth"
	"fleetops/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries what the router needs besides the API server.
type RouterConfig struct {
	Verifier *auth.Verifier
	Metrics  *metrics.Metrics
	// Gatherer backs /metrics. Nil leaves the endpoint out.
	Gatherer prometheus.Gatherer
	// AllowOrigins lists CORS origins. Empty allows any origin.
	AllowOrigins []string
	Logger       *slog.Logger
}

// NewRouter builds the echo instance serving the API, health, metrics and
// the interactive API docs.
func NewRouter(s *Server, cfg RouterConfig) (*echo.Echo, error) {
	if err := api.RegisterSwagger(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)

	cors := middleware.DefaultCORSConfig
	if len(cfg.AllowOrigins) > 0 {
		cors.AllowOrigins = cfg.AllowOrigins
	}

	e.Use(
		middleware.RequestID(),
		middleware.Recover(),
		middleware.CORSWithConfig(cors),
		requestLogger(cfg.Logger),
		Metrics(cfg.Metrics),
	)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
			"ts":     time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api.RegisterHandlers(e, s, api.Middlewares{
		Read:  []echo.MiddlewareFunc{auth.Authenticate(cfg.Verifier)},
		Write: []echo.MiddlewareFunc{auth.RequireAdmin()},
	})

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/health", "/metrics":
				return true
			}
			return false
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}
