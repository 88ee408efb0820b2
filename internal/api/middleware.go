package api

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/tiyasha05/Dental-Art-api/internal/models"
)

const originRejectedMessage = "Not allowed by CORS"

// originSet matches origins case-insensitively and ignores a trailing slash.
type originSet map[string]struct{}

func newOriginSet(origins []string) originSet {
	set := make(originSet, len(origins))
	for _, o := range origins {
		set[normalizeOrigin(o)] = struct{}{}
	}
	return set
}

func (s originSet) allows(origin string) bool {
	_, ok := s[normalizeOrigin(origin)]
	return ok
}

func normalizeOrigin(origin string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))
}

// originGuard rejects requests from browsers on origins outside the
// allow-list. Requests without an Origin header (curl, same-origin
// navigation) pass.
func originGuard(origins []string) fiber.Handler {
	allowed := newOriginSet(origins)
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" || allowed.allows(origin) {
			return c.Next()
		}

		slog.Warn("Rejected request from disallowed origin", "origin", origin, "method", c.Method(), "path", c.Path())
		return c.Status(fiber.StatusForbidden).JSON(models.APIResponse{Message: originRejectedMessage})
	}
}

// corsHeaders answers preflights and echoes allowed origins with credentials.
func corsHeaders(origins []string) fiber.Handler {
	allowed := newOriginSet(origins)
	return cors.New(cors.Config{
		AllowOriginsFunc: allowed.allows,
		AllowMethods:     "GET,POST,HEAD,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	})
}
