package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/orevein/internal/api"
	"github.com/VoidMesh/orevein/internal/config"
	"github.com/VoidMesh/orevein/internal/logging"
	"github.com/VoidMesh/orevein/services/vein"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logging
	setupLogging(cfg.Logging)
	logger := logging.GetLogger()
	logger.Debug("Configuration loaded", "server_port", cfg.Server.Port, "profile", cfg.Generator.ProfilePath, "log_level", cfg.Logging.Level)

	// Build the generator
	veinCfg, err := cfg.Generator.VeinConfig()
	if err != nil {
		logger.Fatal("Failed to load generator profile", "error", err, "path", cfg.Generator.ProfilePath)
	}
	generator, err := vein.NewGenerator(veinCfg, vein.NewLoggerAdapter(logger))
	if err != nil {
		logger.Fatal("Failed to create vein generator", "error", err)
	}
	logger.Info("Vein generator ready", "seed", veinCfg.Seed, "primitive", veinCfg.Primitive, "octaves", veinCfg.Octaves)

	// Initialize API handlers
	handler := api.NewHandler(generator, cfg.Generator.Workers, cfg.Generator.MaxTileSize)
	router := api.SetupRoutes(handler)
	logger.Debug("API routes configured")

	logger.Debug("Creating HTTP server", "port", cfg.Server.Port, "read_timeout", cfg.Server.ReadTimeout, "write_timeout", cfg.Server.WriteTimeout, "idle_timeout", cfg.Server.IdleTimeout)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting orevein tile server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
		logger.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("Shutting down server...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	} else {
		logger.Debug("Server shutdown completed gracefully")
	}

	logger.Info("Server exited")
}

func setupLogging(cfg config.LoggingConfig) {
	logging.InitLogger()
	logger := logging.GetLogger()

	switch cfg.Level {
	case "debug", "info", "warn", "error":
		logging.SetLevel(logging.ParseLevel(cfg.Level))
	default:
		logger.Warn("Invalid log level, using info", "level", cfg.Level)
		logging.SetLevel(logging.InfoLevel)
	}

	switch cfg.Format {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	}

	if cfg.Format == "pretty" || !cfg.Structured {
		logger.SetReportCaller(true)
		logger.SetReportTimestamp(true)
	}

	logger.SetPrefix("[orevein] ")
}
