package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tiyasha05/Dental-Art-api/internal/metrics"
	"github.com/tiyasha05/Dental-Art-api/internal/models"
	"github.com/tiyasha05/Dental-Art-api/internal/notify"
	"github.com/tiyasha05/Dental-Art-api/internal/validate"
)

func (s *Server) handleContact(c *fiber.Ctx) error {
	const kind = metrics.KindContact

	var req models.ContactSubmission
	if err := c.BodyParser(&req); err != nil {
		return s.reject(c, kind, err)
	}

	if err := validate.Struct(req); err != nil {
		return s.reject(c, kind, err)
	}

	n, err := notify.ContactNotification(s.cfg.Email, req)
	if err != nil {
		return s.fail(c, kind, err)
	}

	if err := s.send(c, kind, n); err != nil {
		return s.fail(c, kind, err)
	}

	slog.Info("✅ Contact form email sent", "name", req.Name)
	return s.succeed(c, kind)
}
