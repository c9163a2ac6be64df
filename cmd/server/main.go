package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/cardsort/internal/config"
	"github.com/JonMunkholm/cardsort/internal/core"
	_ "github.com/JonMunkholm/cardsort/internal/core/variants" // Register all variants
	"github.com/JonMunkholm/cardsort/internal/logging"
	"github.com/JonMunkholm/cardsort/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"upload_max_file_size", cfg.Upload.MaxFileSize,
		"sort_max_keys", cfg.Sort.MaxKeys,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Create service with config
	service, err := core.NewService(cfg)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	slog.Info("variants registered",
		"count", core.VariantCount(),
		"keys", core.Keys(),
		"locale", service.Locale().String(),
	)

	// Create server with config
	server := web.NewServer(service, cfg)

	// Background jobs stop when the server shuts down.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	service.StartSessionJanitor(jobCtx)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Let in-flight parses finish before closing connections
		if active := service.Limiter().Active(); active > 0 {
			slog.Info("waiting for uploads to complete", "active", active)
			if err := service.Limiter().WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("uploads did not complete in time", "error", err)
			} else {
				slog.Info("all uploads completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
