package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/backend"
	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/config"
	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/server"
	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/telemetry/logging"
	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/telemetry/metrics"
	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/telemetry/tracing"
)

var runFlags struct {
	listenAddress string
	backendURL    string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the gateway server",
	Long: `Start the gateway server with the specified configuration.

The server listens on the configured address and forwards chat completion
requests to the configured backend.

Examples:
  # Start with default config
  gateway run

  # Start with custom config
  gateway run --config /etc/gateway/config.yaml

  # Override listen address and backend
  gateway run --listen 0.0.0.0:8080 --backend-url http://litellm:4000

  # Validate config without starting server
  gateway run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.backendURL, "backend-url", "", "override backend base URL")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	if err := config.Initialize(cfgFile); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Proxy.ListenAddress = runFlags.listenAddress
	}
	if runFlags.backendURL != "" {
		cfg.Backend.BaseURL = runFlags.backendURL
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	// Initialize tracing (noop when disabled)
	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown failed", "error", err)
		}
	}()

	// Metrics collector
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	// Backend invoker, traced when tracing is enabled
	invoker := tracing.Instrument(backend.NewClient(cfg.Backend.BaseURL), tracer)

	slog.Info("gateway configured",
		"listen_address", cfg.Proxy.ListenAddress,
		"backend_url", cfg.Backend.BaseURL,
		"metrics_enabled", cfg.Telemetry.Metrics.Enabled,
		"tracing_enabled", cfg.Telemetry.Tracing.Enabled,
	)

	srv := server.NewServer(cfg, invoker, collector)

	// Start blocks until SIGINT/SIGTERM or a listener failure.
	return srv.Start(cmd.Context())
}
