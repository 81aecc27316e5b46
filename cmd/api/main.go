package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/lucasmoreno/pharmadash-backend/api/controllers"
	"github.com/lucasmoreno/pharmadash-backend/api/routes"
	"github.com/lucasmoreno/pharmadash-backend/internal/auth"
	"github.com/lucasmoreno/pharmadash-backend/internal/dashboard"
	"github.com/lucasmoreno/pharmadash-backend/internal/orders"
	"github.com/lucasmoreno/pharmadash-backend/internal/products"
	"github.com/lucasmoreno/pharmadash-backend/internal/reporthistory"
	"github.com/lucasmoreno/pharmadash-backend/pkg/config"
	"github.com/lucasmoreno/pharmadash-backend/pkg/db"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
	"github.com/lucasmoreno/pharmadash-backend/pkg/redis"
	"github.com/lucasmoreno/pharmadash-backend/pkg/strapi"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	contentClient, err := strapi.NewClient(cfg.Content)
	if err != nil {
		logg.Error(context.Background(), "failed to create content api client", err)
		os.Exit(1)
	}

	// Redis is optional for the API: without it every dashboard request
	// fetches straight from the content API.
	var redisClient *redis.Client
	var cache redis.CacheStore
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		cache = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, response caching disabled")
	}

	// The snapshot store is shared with the cron worker; the API only
	// reads from it.
	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open snapshot store", err)
		os.Exit(1)
	}
	snapshotRepo := reporthistory.NewRepository(dbClient.DB())
	if err := snapshotRepo.Migrate(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to migrate snapshot store", err)
		os.Exit(1)
	}
	historyService, err := reporthistory.NewService(snapshotRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create history service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(contentClient, cache, cfg.Cache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}
	authService, err := auth.NewService(contentClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(contentClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	productsService, err := products.NewService(contentClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	pingers := map[string]controllers.Pinger{
		"content_api": contentClient,
		"database":    dbClient,
	}
	if redisClient != nil {
		pingers["redis"] = redisClient
	}

	router := routes.NewRouter(routes.Params{
		Config:           cfg,
		Logger:           logg,
		Pingers:          pingers,
		AuthService:      authService,
		DashboardService: dashboardService,
		OrdersService:    ordersService,
		ProductsService:  productsService,
		HistoryService:   historyService,
		Metrics:          prometheus.DefaultGatherer,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	closeErr := server.Shutdown(shutdownCtx)
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	if closeErr != nil {
		logg.Error(ctx, "error during shutdown", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server shut down gracefully")
}
