package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"textile/internal/adapters/out/postgres/pgerr"
	"textile/internal/generated/servers"
	"textile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy onto HTTP status codes. A conflict is checked
// first: a stale version carries both a conflict and a version error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrStorageUnavailable) && isUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func isUnavailable(err error) bool {
	return pgerr.IsConnectionFailure(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

// fail writes err as a servers.Error. Server-side failures are logged with the
// cause and answered with a generic message.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
		message = http.StatusText(status)
	}
	s.logger.Log(ctx.Request().Context(), level, "Request failed",
		"method", ctx.Request().Method,
		"path", ctx.Path(),
		"status", status,
		"error", err,
	)

	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
