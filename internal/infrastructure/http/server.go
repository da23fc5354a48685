package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/config"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/middleware/auth"
	"github.com/fpcgarcias/site-ticketwise-sub000/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// webhookPath is read raw by its handler and bypasses the global body limit
const webhookPath = "/api/stripe/webhook"

// HealthChecker reports whether a dependency answers
type HealthChecker func(ctx context.Context) error

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	handlers Handlers
	jwt      auth.JWTConfig
	dbHealth HealthChecker
}

func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers, jwt auth.JWTConfig, dbHealth HealthChecker) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		echo:     newEcho(cfg, logger),
		handlers: handlers,
		jwt:      jwt,
		dbHealth: dbHealth,
	}
	s.setupRoutes()
	return s
}

func newEcho(cfg *config.Config, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	logger.WithEchoLogger(e, log)
	e.Validator = newRequestValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddleware("ticketwise"))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins(cfg),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	bodyLimit := cfg.Server.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "1M"
	}
	e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == webhookPath
		},
		Limit: bodyLimit,
	}))

	return e
}

func corsOrigins(cfg *config.Config) []string {
	if len(cfg.Server.CORSOrigins) > 0 {
		return cfg.Server.CORSOrigins
	}
	if cfg.Service.FrontendURL != "" {
		return []string{strings.TrimRight(cfg.Service.FrontendURL, "/")}
	}
	return []string{"*"}
}

// Echo exposes the router for tests
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start() error {
	addr := s.config.Server.Address()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	status := http.StatusOK
	body := map[string]string{
		"status":   "ok",
		"service":  s.config.Service.Name,
		"database": "ok",
	}
	if s.dbHealth != nil {
		if err := s.dbHealth(c.Request().Context()); err != nil {
			s.logger.Warn("Database health check failed", zap.Error(err))
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = "unavailable"
		}
	}
	return c.JSON(status, body)
}
