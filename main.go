package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"loadlab/internal/config"
	"loadlab/internal/latency"
	"loadlab/internal/repositories"
	"loadlab/internal/seed"
	"loadlab/internal/server"
	"loadlab/pkg/cache"
	"loadlab/pkg/logger"
	"loadlab/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg.AppName, cfg.Env, cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped with error")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.WithError(err).Warn("failed to close store")
		}
	}()

	seeder := seed.New(seed.WithSeed(cfg.CatalogSeed), seed.WithLogger(log))
	if err := seeder.Store(ctx, store, cfg.CatalogSize, cfg.SeedUsers, cfg.SeedPassword); err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}

	deps := server.Deps{
		Config:  cfg,
		Logger:  log,
		Store:   store,
		Context: ctx,
		Latency: newSimulator(cfg),
		Started: time.Now(),
	}

	// RabbitMQ and Redis are optional; the API runs without them.
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.OrderEventsQueue, Logger: log})
		if err != nil {
			log.WithError(err).Warn("RabbitMQ unavailable, order events disabled")
		} else {
			defer mq.Close()
			deps.Publisher = mq
			if err := mq.ConsumeOrderEvents(ctx, rabbitmq.LogOrderEvent(log)); err != nil {
				log.WithError(err).Warn("failed to start order event consumer")
			}
		}
	}

	if cfg.RedisAddr != "" && cfg.AnalyticsCacheTTL > 0 {
		rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()
		analyticsCache := cache.NewAnalyticsCache(rdb)
		if err := analyticsCache.Ping(ctx); err != nil {
			log.WithError(err).Warn("Redis unavailable, analytics caching disabled")
		} else {
			// A snapshot from a previous process describes a different store.
			if err := analyticsCache.Invalidate(ctx); err != nil {
				log.WithError(err).Warn("failed to clear stale analytics snapshot")
			}
			deps.AnalyticsCache = analyticsCache
		}
	}

	app := server.New(deps)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Port).Info("commerce API listening")
		errCh <- app.Listen(cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
	log.Info("server gracefully stopped")
	return nil
}

// openStore builds the configured store and returns a func that releases it.
func openStore(cfg *config.Config) (*repositories.Store, func() error, error) {
	if cfg.StoreDriver == config.DriverMemory {
		return repositories.NewMemoryStore(), func() error { return nil }, nil
	}

	db, err := repositories.OpenDatabase(cfg.StoreDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	store, err := repositories.NewGORMStore(db)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return store, sqlDB.Close, nil
}

func newSimulator(cfg *config.Config) latency.Simulator {
	if !cfg.SimulatedLatency {
		return latency.Disabled()
	}
	return latency.NewRandomSimulator(latency.DefaultRanges)
}
