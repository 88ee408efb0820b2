package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tiyasha05/Dental-Art-api/internal/config"
	"github.com/tiyasha05/Dental-Art-api/internal/metrics"
	"github.com/tiyasha05/Dental-Art-api/internal/models"
	"github.com/tiyasha05/Dental-Art-api/internal/notify"
	"github.com/tiyasha05/Dental-Art-api/internal/validate"
)

const (
	invalidBodyMessage = "Invalid request body"
	serverErrorMessage = "Server error"
)

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	sender  notify.Sender
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewServer(cfg *config.Config, sender notify.Sender) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "dental-art-api",
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: cfg.Server.Environment == "production",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status}\n",
	}))
	app.Use(originGuard(cfg.CORS.AllowedOrigins))
	app.Use(corsHeaders(cfg.CORS.AllowedOrigins))

	server := &Server{
		app:     app,
		cfg:     cfg,
		sender:  sender,
		metrics: metrics.New(),
		now:     time.Now,
	}

	// Routes
	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	api := s.app.Group("/api")
	api.Post("/appointment", s.handleAppointment)
	api.Post("/contact", s.handleContact)

	// Registered last so API routes always win.
	s.setupStatic()
}

func (s *Server) Start() error {
	slog.Info("🚀 Server running", "addr", s.cfg.Addr(), "provider", s.cfg.Email.Provider)
	return s.app.Listen(s.cfg.Addr())
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(models.APIResponse{Success: true})
}

// send delivers n within the configured timeout and records how long it took.
func (s *Server) send(c *fiber.Ctx, kind string, n models.Notification) error {
	ctx := c.UserContext()
	if s.cfg.Email.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Email.SendTimeout)
		defer cancel()
	}

	start := time.Now()
	err := s.sender.Send(ctx, n)
	s.metrics.ObserveSend(kind, time.Since(start))
	return err
}

func (s *Server) succeed(c *fiber.Ctx, kind string) error {
	s.metrics.Submission(kind, metrics.OutcomeSent)
	return c.JSON(models.APIResponse{Success: true})
}

// reject answers 400 for an unreadable body or a missing field.
func (s *Server) reject(c *fiber.Ctx, kind string, err error) error {
	var verr *validate.ValidationError
	if !errors.As(err, &verr) {
		slog.Warn("Invalid request body", "kind", kind, "error", err)
		s.metrics.Submission(kind, metrics.OutcomeInvalid)
		return c.Status(fiber.StatusBadRequest).JSON(models.APIResponse{Message: invalidBodyMessage})
	}

	slog.Warn("Rejected incomplete submission", "kind", kind, "missing", verr.Fields)
	s.metrics.Submission(kind, metrics.OutcomeInvalid)
	return c.Status(fiber.StatusBadRequest).JSON(models.APIResponse{Message: validate.MissingFieldsMessage})
}

// fail answers 500. Provider rejections keep the provider's own wording.
func (s *Server) fail(c *fiber.Ctx, kind string, err error) error {
	slog.Error("❌ Failed to deliver submission", "kind", kind, "error", err)
	s.metrics.Submission(kind, metrics.OutcomeFailed)

	message := serverErrorMessage
	var perr *notify.ProviderError
	if errors.As(err, &perr) && perr.Message != "" {
		message = perr.Message
	}
	return c.Status(fiber.StatusInternalServerError).JSON(models.APIResponse{Message: message})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := serverErrorMessage

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("Unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(models.APIResponse{Message: message})
}
