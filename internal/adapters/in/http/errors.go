package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fleetops/internal/adapters/in/http/api"
	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// AssignmentFailedMessage is shown when an assignment change could not be
// saved. The operator must look at the order and the shipper before trying
// again because one of the two documents may already be updated.
const AssignmentFailedMessage = "The assignment could not be saved. Reload the order and check the shipper before retrying."

// statusOf maps application errors to HTTP status codes and operator messages.
func statusOf(err error) (int, string) {
	var assignmentErr *commands.AssignmentError
	switch {
	case errors.As(err, &assignmentErr):
		return http.StatusBadGateway, AssignmentFailedMessage
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, order.ErrOrderIsCompleted),
		errors.Is(err, order.ErrNoShipperAssigned):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code, message := statusOf(err)
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "status", code, "error", err)
	}
	return ctx.JSON(code, api.Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, api.Error{Code: http.StatusBadRequest, Message: message})
}

// ErrorHandler renders echo errors (routing, middleware, binding) with the
// API error body.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal server error"
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "unhandled error", "path", ctx.Path(), "error", err)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(code)
		} else {
			writeErr = ctx.JSON(code, api.Error{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.WarnContext(ctx.Request().Context(), "write error response failed", "error", writeErr)
		}
	}
}
