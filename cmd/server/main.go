package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/painel/internal/application"
	"github.com/JonMunkholm/painel/internal/config"
	"github.com/JonMunkholm/painel/internal/core"
	"github.com/JonMunkholm/painel/internal/logging"
	"github.com/JonMunkholm/painel/internal/web"
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

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"dataset", cfg.Dataset.Path,
		"blocks", len(cfg.Dataset.Blocks),
		"render_ttl", cfg.Cache.RenderTTL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// The dataset is loaded once; a missing or corrupt file is fatal.
	service, err := application.Open(context.Background(), cfg)
	if err != nil {
		msg := core.MapError(err)
		slog.Error("failed to load dataset",
			"path", cfg.Dataset.Path,
			"error", err,
			"code", msg.Code,
			"action", msg.Action,
		)
		os.Exit(1)
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		defer close(idle)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.RenderStatus(); status.Active > 0 {
			slog.Info("waiting for chart renders to complete", "active", status.Active)
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-idle
	slog.Info("server stopped")
}
