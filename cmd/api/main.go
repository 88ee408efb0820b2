package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tiyasha05/Dental-Art-api/internal/api"
	"github.com/tiyasha05/Dental-Art-api/internal/config"
	"github.com/tiyasha05/Dental-Art-api/internal/notify"
)

func main() {
	// A missing .env is fine; the process environment still applies.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	// Load configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize email sender
	sender, err := notify.New(cfg)
	if err != nil {
		slog.Error("Failed to create email sender", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Email sender ready", "provider", cfg.Email.Provider, "recipient", cfg.Email.Recipient)

	server := api.NewServer(cfg, sender)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server error", "error", err)
		os.Exit(1)
	case <-quit:
	}

	slog.Info("🛑 Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("👋 Server stopped")
}
