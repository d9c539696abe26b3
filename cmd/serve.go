package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexiusacademia/goshaft/internal/api"
	"github.com/alexiusacademia/goshaft/internal/config"
	"github.com/alexiusacademia/goshaft/internal/fatigue"
	"github.com/alexiusacademia/goshaft/internal/logger"
	"github.com/alexiusacademia/goshaft/internal/version"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	serveEnvFile string
	serveAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the fatigue calculation over HTTP",
	Long: `Start the HTTP API.

Endpoints:
  POST /api/fatigue/compute  - one case (JSON inputs, omitted fields default)
  POST /api/fatigue/batch    - {"cases": [...]} of case objects
  POST /api/fatigue/export   - same body as batch, returns a CSV download
  POST /api/fatigue/import   - multipart "file" (.csv or .xlsx)
  GET  /api/finishes         - surface-finish table
  GET  /api/health           - status and version

Settings come from the environment, optionally seeded from a .env file:
  GOSHAFT_ADDR, GOSHAFT_RATE, GOSHAFT_BURST, GOSHAFT_CACHE_SIZE,
  GOSHAFT_MAX_BATCH, GOSHAFT_CORS_ORIGIN, GOSHAFT_LOG_LEVEL,
  GOSHAFT_LOG_FORMAT, GOSHAFT_SHUTDOWN_TIMEOUT

Examples:
  goshaft serve
  goshaft serve --addr :9090 --env-file deploy/.env`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveEnvFile, "env-file", ".env", "Environment file to load (ignored if missing)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides GOSHAFT_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveEnvFile)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	log, err := logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cache := fatigue.NewCache(cfg.CacheSize)
	handler := api.NewRouter(api.Deps{
		Cache:      cache,
		Logger:     log,
		Rate:       rate.Limit(cfg.Rate),
		Burst:      cfg.Burst,
		MaxBatch:   cfg.MaxBatch,
		CORSOrigin: cfg.CORSOrigin,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server.start", "addr", cfg.Addr, "version", version.Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server.shutdown", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	hits, misses := cache.Stats()
	log.Info("server.stopped", "cache_hits", hits, "cache_misses", misses)
	return nil
}
