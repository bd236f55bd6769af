package http

import (
	"log/slog"

	_ "textile/internal/generated/docs"
	"textile/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig holds the knobs of the HTTP stack.
type RouterConfig struct {
	// JWTSecret enables bearer tokens for the audit actor. Empty disables them and
	// every request acts as the default actor.
	JWTSecret string

	Logger *slog.Logger
}

// NewRouter builds the echo instance: recovery, request logging, optional actor
// tokens, contract validation, the API routes and the swagger UI.
func NewRouter(server servers.ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(cfg.Logger.With("component", "http")))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.JWTSecret != "" {
		e.Use(ActorMiddleware(cfg.JWTSecret))
	}
	e.Use(validator)
	servers.RegisterHandlers(e, server)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.RequestID != "" {
				attrs = append(attrs, slog.String("request_id", v.RequestID))
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				logger.LogAttrs(c.Request().Context(), slog.LevelError, "Request error", attrs...)
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "Request", attrs...)
			return nil
		},
	})
}
