package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/slobodan-ilic/ggrc-core/internal/adapter/handler/http"
	"github.com/slobodan-ilic/ggrc-core/internal/config"
	"github.com/slobodan-ilic/ggrc-core/internal/infrastructure/metrics"
	"github.com/slobodan-ilic/ggrc-core/pkg/logger"
)

type Server struct {
	config  *config.Config
	logger  *zap.Logger
	echo    *echo.Echo
	handler *handlers.CustomAttributeHandler
	metrics *metrics.Metrics
}

func NewServer(cfg *config.Config, log *zap.Logger, handler *handlers.CustomAttributeHandler, m *metrics.Metrics) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = logger.NewEchoZapLogger(log)
	e.Validator = handlers.NewRequestValidator()
	e.HTTPErrorHandler = handlers.NewErrorHandler(log)

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  m.Namespace(),
		Subsystem:  "http",
		Registerer: m.Registerer(),
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/health" || p == "/metrics"
		},
	}))

	s := &Server{
		config:  cfg,
		logger:  log,
		echo:    e,
		handler: handler,
		metrics: m,
	}
	s.setupRoutes()
	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	// API v1 routes
	s.handler.Register(s.echo.Group("/api/v1"))
}
