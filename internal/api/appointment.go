package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tiyasha05/Dental-Art-api/internal/metrics"
	"github.com/tiyasha05/Dental-Art-api/internal/models"
	"github.com/tiyasha05/Dental-Art-api/internal/notify"
	"github.com/tiyasha05/Dental-Art-api/internal/spreadsheet"
	"github.com/tiyasha05/Dental-Art-api/internal/validate"
)

// handleAppointment handles POST /api/appointment: validate, build the
// workbook, and email both to staff.
func (s *Server) handleAppointment(c *fiber.Ctx) error {
	const kind = metrics.KindAppointment

	var req models.AppointmentSubmission
	if err := c.BodyParser(&req); err != nil {
		return s.reject(c, kind, err)
	}
	slog.Info("📥 Received appointment request", "name", req.Name, "treatment", req.Treatment, "doctor", req.Doctor, "date", req.Date)

	if err := validate.Struct(req); err != nil {
		return s.reject(c, kind, err)
	}

	xlsx, err := spreadsheet.BuildAppointment(req, s.now())
	if err != nil {
		return s.fail(c, kind, err)
	}

	n, err := notify.AppointmentNotification(s.cfg.Email, req, xlsx)
	if err != nil {
		return s.fail(c, kind, err)
	}

	if err := s.send(c, kind, n); err != nil {
		return s.fail(c, kind, err)
	}

	slog.Info("✅ Appointment email sent", "name", req.Name)
	return s.succeed(c, kind)
}
