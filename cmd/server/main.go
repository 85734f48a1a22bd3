package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/oakpos/paygate/internal/config"
	"github.com/oakpos/paygate/internal/migrations/postgres"
	xredis "github.com/oakpos/paygate/internal/redis"
	"github.com/oakpos/paygate/internal/server/handler"
	servermw "github.com/oakpos/paygate/internal/server/middleware"
	"github.com/oakpos/paygate/internal/service/webhook"
	"github.com/oakpos/paygate/internal/storage"
	"github.com/oakpos/paygate/internal/version"
	"github.com/oakpos/paygate/internal/xhttp/middleware"
	"github.com/oakpos/paygate/internal/xslog"
)

const keyPort = "port"

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if cfg.Webhook.Secret == "" {
		// Fail closed, not fatal: the server runs and rejects everything
		// until an operator configures WEBHOOK_SECRET and restarts.
		logger.WarnContext(ctx, "WEBHOOK_SECRET not set, all webhooks will be rejected")
	}

	events, err := initEventStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event store: %w", err)
	}
	defer func() {
		if err := events.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close event store", xslog.Error(err))
		}
	}()

	ledger, limiter, err := initRedisCollaborators(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}

	secret := webhook.NewSecret(cfg.Webhook.Secret)
	webhookService := webhook.NewGateway(secret,
		webhook.WithTolerance(cfg.Webhook.Tolerance),
		webhook.WithEventStore(events),
		webhook.WithReplayLedger(ledger),
	)

	webhookHandler := handler.NewWebhook(webhookService)

	mux := http.NewServeMux()

	webhookMux := http.NewServeMux()
	webhookMux.HandleFunc("POST /webhooks/payments", webhookHandler.HandleWebhook)
	mux.Handle("/webhooks/", middleware.Chain(webhookMux,
		servermw.RateLimit(limiter),
	))

	mux.HandleFunc("GET /health", handler.HandleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	wrapped := middleware.Chain(mux,
		middleware.Recovery,
		middleware.Logging,
		middleware.Logger(logger),
		middleware.RequestID(),
		middleware.SecurityHeaders,
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "starting server",
			slog.String("version", version.Get()),
			slog.String(keyPort, cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initEventStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.EventStore, error) {
	if cfg.Database.URL != "" {
		logger.InfoContext(ctx, "initializing PostgreSQL event store")

		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		if err := postgres.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		return &pooledEventStore{PostgresEventStore: storage.NewPostgresEventStore(pool), pool: pool}, nil
	}

	logger.InfoContext(ctx, "initializing SQLite event store",
		slog.String("path", cfg.Database.SQLitePath))
	return storage.NewSQLiteEventStore(ctx, cfg.Database.SQLitePath)
}

func initRedisCollaborators(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.ReplayLedger, storage.RateLimiter, error) {
	if cfg.Redis.URL == "" {
		logger.InfoContext(ctx, "initializing in-process replay ledger and rate limiter")
		return storage.NewMemoryReplayLedger(),
			storage.NewMemoryRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst),
			nil
	}

	logger.InfoContext(ctx, "initializing Redis replay ledger and rate limiter")
	client, err := xredis.New(ctx, xredis.Config{URL: cfg.Redis.URL})
	if err != nil {
		return nil, nil, err
	}

	redisCfg := storage.RedisConfig{Client: client}
	return storage.NewRedisReplayLedger(redisCfg),
		storage.NewRedisRateLimiter(redisCfg, int(cfg.RateLimit.PerSecond)),
		nil
}

// pooledEventStore ties the pgx pool's lifetime to the store's Close.
type pooledEventStore struct {
	*storage.PostgresEventStore
	pool *pgxpool.Pool
}

func (s *pooledEventStore) Close() error {
	s.pool.Close()
	return nil
}
