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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lasr/internal/config"
	"github.com/kailas-cloud/lasr/internal/db"
	dbRedis "github.com/kailas-cloud/lasr/internal/db/redis"
	logpkg "github.com/kailas-cloud/lasr/internal/logger"
	"github.com/kailas-cloud/lasr/internal/metrics"
	"github.com/kailas-cloud/lasr/internal/repository/record"
	chiTransport "github.com/kailas-cloud/lasr/internal/transport/chi"
	healthuc "github.com/kailas-cloud/lasr/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lasr/internal/usecase/search"
	"github.com/kailas-cloud/lasr/internal/version"
)

func newServeCmd() *cobra.Command {
	var env string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), env)
		},
	}
	cmd.Flags().StringVar(&env, "env", config.GetEnv(), "config environment (reads config/<env>.yaml)")
	return cmd
}

func serve(ctx context.Context, env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lasr API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()

	// Record store is optional: without it only inline searches are served.
	var (
		source searchuc.RecordSource
		pinger healthuc.DBPinger
	)
	if cfg.Database.Enabled() {
		store, err := openStore(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("Connected to database")

		repo, err := record.New(store, cfg.Storage.KeyPrefix, cfg.Storage.RecordFormat)
		if err != nil {
			return fmt.Errorf("create record repository: %w", err)
		}
		source, pinger = repo, store
	} else {
		logger.Warn("No database configured, collection search disabled")
	}

	searchSvc := searchuc.New(source).WithParallelism(cfg.Search.Workers, cfg.Search.ParallelThreshold)
	healthSvc := healthuc.New(pinger, searchSvc)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger, chiTransport.Limits{
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxItems:     cfg.Search.MaxItems,
		MaxBodyBytes: int64(cfg.HTTP.MaxBodyBytes),
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(server, logger, cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// openStore connects to Redis or Valkey and waits until it answers.
// Both drivers speak RESP, so they share the rueidis store.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Addrs,
		Password:   cfg.Password,
		Standalone: cfg.Standalone,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	return store, nil
}

func newRouter(server *chiTransport.Server, logger *zap.Logger, apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)
	return r
}
