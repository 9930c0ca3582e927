// Package http hosts the operational endpoints of the basket service:
// liveness, readiness and Prometheus metrics. Basket operations are not exposed here.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// healthResponse is the body of the health endpoints.
type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Server wires the operational routes onto an echo instance.
type Server struct {
	echo    *echo.Echo
	db      Pinger
	metrics http.Handler
	logger  *slog.Logger
}

// NewServer creates the echo host. metrics is typically promhttp.HandlerFor(registry, ...).
func NewServer(db Pinger, metrics http.Handler, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		db:      db,
		metrics: metrics,
		logger:  logger.With("component", "http"),
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"error", v.Error)
			return nil
		},
	}))

	e.GET("/health", s.Health)
	e.GET("/ready", s.Ready)
	e.GET("/metrics", echo.WrapHandler(metrics))

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Health handles GET /health - the process is up.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// Ready handles GET /ready - the database answers within a second.
func (s *Server) Ready(ctx echo.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), time.Second)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		s.logger.Warn("readiness check failed", "error", err)
		return ctx.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server starting", "addr", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
