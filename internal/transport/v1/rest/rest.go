package rest

import (
	"context"
	"fmt"
	"time"

	"autovalue/internal/config"
	"autovalue/internal/metrics"
	valuationcntrl "autovalue/internal/transport/v1/rest/valuation"
	"autovalue/pkg/valuation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type Server struct {
	app *fiber.App
}

// New wires every route. s may be nil, in which case the service runs
// degraded.
func New(s *valuation.ServingContext, m *metrics.Registry) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	api := app.Group("/api/v1")
	valuationcntrl.RegisterValuationRoutes(api, s, m, time.Now)

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	return &Server{app: app}
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Start(_ context.Context, config *config.Config) error {
	if err := s.app.Listen(fmt.Sprintf(":%s", config.Server.Port)); err != nil {
		return fmt.Errorf("server start: %w", err)
	}

	return nil
}

func (s *Server) Shutdown() error { return s.app.Shutdown() }
