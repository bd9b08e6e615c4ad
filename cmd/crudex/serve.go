package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/crudex/internal/app"
	"github.com/kailas-cloud/crudex/internal/config"
	"github.com/kailas-cloud/crudex/internal/db"
	"github.com/kailas-cloud/crudex/internal/metrics"
	"github.com/kailas-cloud/crudex/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		return serve(cmd.Context(), cfg, logger)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the resource tables when missing and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		d, err := connect(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = d.Close() }()

		if err := app.EnsureSchema(cmd.Context(), d); err != nil {
			return err
		}
		logger.Info("Schema is up to date", zap.String("db_driver", d.Driver()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// connect opens the pool and blocks until the database answers.
func connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*db.DB, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	d, err := db.Open(cfg.Database.Pool())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := d.WaitForReady(ctx, timeout); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database", zap.String("db_driver", d.Driver()))
	return d, nil
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info("Starting crudex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", envName),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("base_path", cfg.HTTP.BasePath),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.MustRegister(prometheus.DefaultRegisterer)

	d, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = d.Close() }()

	if cfg.Database.EnsureSchema {
		if err := app.EnsureSchema(ctx, d); err != nil {
			return err
		}
		logger.Info("Schema ensured")
	}

	handler := app.Handler(d, logger, app.Options{
		BasePath: cfg.HTTP.BasePath,
		Limits:   cfg.Paging.Limits(),
		Gatherer: prometheus.DefaultGatherer,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout(),
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout(),
		WriteTimeout:      cfg.HTTP.WriteTimeout(),
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
