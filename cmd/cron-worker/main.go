package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lucasmoreno/pharmadash-backend/internal/cron"
	"github.com/lucasmoreno/pharmadash-backend/internal/dashboard"
	"github.com/lucasmoreno/pharmadash-backend/internal/reporthistory"
	"github.com/lucasmoreno/pharmadash-backend/pkg/config"
	"github.com/lucasmoreno/pharmadash-backend/pkg/db"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
	"github.com/lucasmoreno/pharmadash-backend/pkg/metrics"
	"github.com/lucasmoreno/pharmadash-backend/pkg/redis"
	"github.com/lucasmoreno/pharmadash-backend/pkg/strapi"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "cron worker exited with error", err)
		os.Exit(1)
	}
	logg.Info(ctx, "cron worker shut down gracefully")
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			logg.Error(ctx, "failed to close database", closeErr)
		}
	}()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("bootstrap redis: %w", err)
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			logg.Error(ctx, "failed to close redis", closeErr)
		}
	}()

	contentClient, err := strapi.NewClient(cfg.Content)
	if err != nil {
		return err
	}

	repo := reporthistory.NewRepository(dbClient.DB())
	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	dashboardService, err := dashboard.NewService(contentClient, redisClient, cfg.Cache, logg)
	if err != nil {
		return err
	}
	snapshotJob, err := reporthistory.NewSnapshotJob(dashboardService, repo)
	if err != nil {
		return err
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker"), cfg.Cron.LockTTL)
	if err != nil {
		return err
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(snapshotJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		return err
	}

	logg.Info(ctx, "starting cron worker")
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
