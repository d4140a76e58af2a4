// Command dashboard serves the load-test dashboard next to the commerce API.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"loadlab/internal/config"
	"loadlab/internal/dashboard"
	"loadlab/pkg/logger"

	"github.com/sirupsen/logrus"
)

const healthTimeout = 2 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg.AppName+"-dashboard", cfg.Env, cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("dashboard stopped with error")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	monitor := dashboard.NewHealthMonitor(
		dashboard.NewHTTPChecker(cfg.Dashboard.APIURL, healthTimeout),
		cfg.Dashboard.PollInterval,
		log,
	)
	go monitor.Run(ctx)

	runner := dashboard.NewRunner(monitor.Online,
		dashboard.WithDelayRange(cfg.Dashboard.MinDelay, cfg.Dashboard.MaxDelay),
		dashboard.WithRunnerLogger(log),
	)
	defer runner.Close()

	app := dashboard.NewApp(dashboard.NewHandler(monitor, runner), cfg.CORSOrigins(), log)

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": cfg.Dashboard.Port, "api": cfg.Dashboard.APIURL}).Info("dashboard listening")
		errCh <- app.Listen(cfg.Dashboard.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("dashboard failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down dashboard")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
	return nil
}
