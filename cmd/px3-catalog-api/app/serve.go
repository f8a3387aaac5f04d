package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nationalmap/px3-catalog-server/internal/api"
	"github.com/nationalmap/px3-catalog-server/internal/config"
	"github.com/nationalmap/px3-catalog-server/internal/logger"
	"github.com/nationalmap/px3-catalog-server/internal/service"
	"github.com/nationalmap/px3-catalog-server/internal/telemetry"
	"github.com/nationalmap/px3-catalog-server/internal/versions"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog API server",
	Long: `Start the catalog API server to serve Px3 catalog data.

The server requires a configuration file (--config) that specifies:
- The Px3 JSON document source (local file or HTTP endpoint)
- Layer build settings and reload policy
- All other operational settings

See examples/ directory for sample configurations.`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second // Kubernetes-friendly shutdown time
	serverRequestTimeout   = 30 * time.Second // Background layer builds fetch upstream capabilities
	serverReadTimeout      = 10 * time.Second // Enough for headers and small requests
	serverWriteTimeout     = 35 * time.Second // Must be > serverRequestTimeout to let middleware handle timeout
	serverIdleTimeout      = 60 * time.Second // Keep connections alive for reuse
)

func init() {
	serveCmd.Flags().String("address", ":8080", "Address to listen on")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address"))
	if err != nil {
		logger.Fatalf("Failed to bind address flag: %v", err)
	}
	err = viper.BindPFlag("config", serveCmd.Flags().Lookup("config"))
	if err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}

	// Mark config as required
	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatalf("Failed to mark config flag as required: %v", err)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	address := viper.GetString("address")

	logger.Infof("Starting catalog API server on %s", address)

	// Load and validate configuration (required)
	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Infof("Loaded configuration from %s (catalog: %s, source: %s)",
		configPath, cfg.GetCatalogName(), cfg.Catalog.GetType())

	// Initialize telemetry
	telCfg := cfg.Telemetry
	if telCfg != nil && telCfg.ServiceVersion == "" {
		telCfg.ServiceVersion = versions.GetVersionInfo().Version
	}
	tel, err := telemetry.New(ctx, telemetry.WithTelemetryConfig(telCfg))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Failed to shutdown telemetry: %v", err)
		}
	}()

	catalogMetrics, err := telemetry.NewCatalogMetrics(tel.MeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create catalog metrics: %w", err)
	}
	fetchMetrics, err := telemetry.NewFetchMetrics(tel.MeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create fetch metrics: %w", err)
	}

	// Create the catalog service and load the initial document. The document
	// loader already retries transient HTTP failures with backoff, so a failure
	// here means the catalog source is genuinely broken.
	svc, err := service.NewCatalogService(cfg,
		service.WithCatalogMetrics(catalogMetrics),
		service.WithFetchMetrics(fetchMetrics),
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog service: %w", err)
	}
	if err := svc.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Start periodic reloads when a reload policy is configured
	reloadCtx, reloadCancel := context.WithCancel(context.Background())
	defer reloadCancel()
	if interval := cfg.GetReloadInterval(); interval > 0 {
		logger.Infof("Reloading catalog every %s", interval)
		go runReloadLoop(reloadCtx, svc, interval)
	}

	metricsMiddleware, err := telemetry.MetricsMiddleware(tel.MeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create metrics middleware: %w", err)
	}

	// Create the catalog server with middleware
	router := api.NewServer(svc,
		api.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			api.LoggingMiddleware,
			metricsMiddleware,
		),
	)

	// The Prometheus exporter registers with the default registry
	router.Handle("/metrics", promhttp.Handler())

	// Create HTTP server
	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Server listening on %s", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Stop periodic reloads
	reloadCancel()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logger.Info("Server shutdown complete")
	return nil
}

// runReloadLoop reloads the catalog on a fixed interval until ctx is done.
// A failed reload keeps the previous catalog serving.
func runReloadLoop(ctx context.Context, svc service.CatalogService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.Reload(ctx); err != nil {
				logger.Errorf("Periodic catalog reload failed: %v", err)
			}
		}
	}
}
