package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/papercomputeco/arenito/api/mcp"
	"github.com/papercomputeco/arenito/pkg/catalog"
	"github.com/papercomputeco/arenito/pkg/conversation"
	"github.com/papercomputeco/arenito/pkg/orchestrator"
)

// TurnProcessor answers one chat turn.
type TurnProcessor interface {
	ProcessTurn(ctx context.Context, message string, history conversation.History) (orchestrator.Answer, error)
	Provider() string
}

// Server is the arenito API server.
type Server struct {
	config       Config
	catalog      *catalog.Store
	orchestrator TurnProcessor
	validate     *validator.Validate
	now          func() time.Time
	logger       *slog.Logger
	app          *fiber.App
}

// NewServer creates a new API server.
// The catalog and orchestrator are injected so the serve command owns their
// construction and configuration.
func NewServer(config Config, store *catalog.Store, orch TurnProcessor, logger *slog.Logger) (*Server, error) {
	if store == nil {
		return nil, errors.New("catalog is required")
	}
	if orch == nil {
		return nil, errors.New("orchestrator is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	s := &Server{
		config:       config,
		catalog:      store,
		orchestrator: orch,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		now:          time.Now,
		logger:       logger,
		app:          app,
	}

	mcpServer, err := mcp.NewServer(mcp.Config{
		Catalog: store,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New())
	app.Use(s.logRequests)

	app.Get("/health", s.handleHealth)
	app.Get("/api/catalog", s.handleCatalog)
	app.Get("/api/catalog/:weightKg", s.handleProduct)
	app.Post("/api/chat", s.handleChat)
	app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
		"provider", s.orchestrator.Provider(),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// logRequests logs one line per request once the handler has run.
func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		status = ferr.Code
	}

	s.logger.Debug("request",
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration", time.Since(start),
	)

	return err
}

// errorHandler renders fiber routing errors (404, 405) in the detail shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	return c.Status(code).JSON(ErrorResponse{Detail: err.Error()})
}
