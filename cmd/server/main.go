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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/outfit-service/internal/config"
	"github.com/actuallystonmai/outfit-service/internal/handler"
	"github.com/actuallystonmai/outfit-service/internal/logging"
	"github.com/actuallystonmai/outfit-service/internal/outfit"
	"github.com/actuallystonmai/outfit-service/internal/repository"
	"github.com/actuallystonmai/outfit-service/internal/router"
	"github.com/actuallystonmai/outfit-service/internal/service"
	"github.com/actuallystonmai/outfit-service/seeds"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger := logging.Component("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize) //nolint:gosec // validated positive
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("database not ready")
	}
	logger.Info().Msg("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := runMigration(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate down")
		}
		logger.Info().Msg("migrations dropped")
		return
	}

	if err := runMigration(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate up")
	}
	logger.Info().Msg("migrations applied")

	// ------------ Setup Seed Data ---------------
	if err := checkSeed(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("failed to check seed")
	}

	// ------------ Closet store ---------------
	var store repository.ClosetStore
	switch cfg.StoreBackend {
	case repository.BackendRedis:
		redisStore, closeRedis, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer closeRedis()
		if err := checkRedisSeed(ctx, redisStore); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed redis")
		}
		store = redisStore
	default:
		store = repository.NewPostgresStore(pool, logging.Component("repository"))
	}
	logger.Info().Str("backend", cfg.StoreBackend).Msg("closet store ready")

	// ------------ Engine ---------------
	mode, err := outfit.ParseSelectionMode(cfg.SelectionMode)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid selection mode")
	}
	engine := outfit.NewEngine(outfit.Config{
		Mode:                mode,
		BasePoolCap:         cfg.BasePoolCap,
		AddonPoolCap:        cfg.AddonPoolCap,
		AccessoryLayerCap:   cfg.AccessoryLayerCap,
		DeterministicWindow: cfg.WindowDeterministic,
		OffsetWindow:        cfg.WindowOffset,
		VarietyWindow:       cfg.WindowVariety,
	}, logging.Logger())
	svc := service.NewService(store, engine, service.SeededRand(cfg.RandomSeed))

	// ---------------- Server --------------------
	routes := router.Setup(handler.NewHandler(svc), router.Options{
		RequestTimeout:    cfg.RequestTimeout,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("mode", string(mode)).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		logging.Info().Msgf("waiting for database... (%d/30)", i+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func runMigration(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM clothing_items").Scan(&count); err != nil {
		return fmt.Errorf("check clothing items count: %w", err)
	}
	if count > 0 {
		logging.Info().Msgf("database already seeded (%d items), skipping", count)
		return nil
	}
	return seeds.Setup(ctx, pool)
}

func checkRedisSeed(ctx context.Context, store *repository.RedisStore) error {
	items, err := store.GetClosetItems(ctx, seeds.DemoUserID(1))
	if err != nil {
		return fmt.Errorf("check redis closet: %w", err)
	}
	if len(items) > 0 {
		logging.Info().Msgf("redis already seeded (%d items for %s), skipping", len(items), seeds.DemoUserID(1))
		return nil
	}
	return seeds.SetupRedis(ctx, store)
}

func openRedis(ctx context.Context, url string) (*repository.RedisStore, func(), error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	store := repository.NewRedisStore(client, logging.Component("repository"))
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return store, func() { _ = client.Close() }, nil
}
