package api

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// setupStatic serves the frontend bundle and hands every other GET to
// index.html so the client-side router can resolve it.
func (s *Server) setupStatic() {
	dir := s.cfg.Server.StaticDir
	index := filepath.Join(dir, "index.html")

	s.app.Static("/", dir)
	s.app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile(index)
	})
}
