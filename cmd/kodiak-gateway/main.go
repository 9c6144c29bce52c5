// Package main is the entry point for the Ask Kodiak gateway.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/acl"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/pipeline"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http/handlers"
	"github.com/jsamuelsen/askkodiak-gateway/internal/app"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/config"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/logging"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/telemetry"
	"github.com/jsamuelsen/askkodiak-gateway/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the gateway.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// A local .env is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			Level:      cfg.Log.File.Level,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting gateway",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("upstream", cfg.Kodiak.BaseURL),
		slog.String("naics_edition", cfg.Kodiak.NaicsEdition),
		slog.Bool("authenticated", cfg.Kodiak.HasCredentials()),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.App.Environment == "local" || cfg.App.Environment == "test",
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	kodiak, err := acl.NewFromConfig(cfg, acl.Options{
		Steps:  []pipeline.Step{pipeline.Header("User-Agent", cfg.App.Name+"/"+Version)},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("creating ask kodiak client: %w", err)
	}

	healthRegistry := ports.NewHealthRegistry(ports.DefaultCheckTimeout)
	if err := healthRegistry.Register(kodiak); err != nil {
		return fmt.Errorf("registering ask kodiak health check: %w", err)
	}

	service := app.NewClassificationService(app.ClassificationServiceConfig{
		Client:         kodiak,
		Logger:         logger,
		MaxConcurrency: cfg.Gateway.MaxConcurrency,
		MaxCodes:       cfg.Gateway.MaxCodes,
	})

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	buildInfo.NaicsEdition = cfg.Kodiak.NaicsEdition
	buildInfo.Upstream = cfg.Kodiak.BaseURL

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.NewRouterConfig(
		cfg,
		logger,
		handlers.NewHealthHandler(healthRegistry, buildInfo),
		handlers.NewClassificationHandler(service),
	))

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a signal arrives or the server fails, then
// drains in-flight requests.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if !ok {
			return nil
		}

		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
