package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/hall_booking/internal/adapter/breaker"
	"github.com/srgjo27/hall_booking/internal/adapter/cache"
	"github.com/srgjo27/hall_booking/internal/adapter/handler"
	"github.com/srgjo27/hall_booking/internal/adapter/notify"
	"github.com/srgjo27/hall_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/hall_booking/internal/core/services"
	"github.com/srgjo27/hall_booking/internal/core/wizard"
	"github.com/srgjo27/hall_booking/internal/platform/config"
	"github.com/srgjo27/hall_booking/internal/platform/database"
	"github.com/srgjo27/hall_booking/internal/platform/logger"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer lg.Sync()

	db, err := database.NewPostgresDB(cfg.DB, lg)
	if err != nil {
		lg.Fatal("failed to connect to db after retries", zap.Error(err))
	}
	defer db.Close()

	lg.Info("connecting to redis", zap.String("addr", cfg.RedisAddr()))

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
		DB:   0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		lg.Fatal("failed to connect to redis", zap.Error(err))
	}
	lg.Info("redis connected")
	defer redisClient.Close()

	bookingRepo := postgres.NewBookingRepository(db)
	hallRepo := postgres.NewHallRepository(db)
	discountRepo := postgres.NewDiscountRepository(db)

	breakerCfg := breaker.DefaultConfig()
	deps := wizard.Dependencies{
		Pricing:  breaker.NewHallPricing(hallRepo, breakerCfg, lg),
		Overlap:  breaker.NewOverlap(bookingRepo, breakerCfg, lg),
		Notifier: notify.NewLogNotifier(lg),
		Logger:   lg,
		Debounce: cfg.AvailabilityDebounce,
	}

	bookingService := services.NewBookingService(
		bookingRepo,
		cache.NewDiscountCache(discountRepo, redisClient, cfg.DiscountCacheTTL, lg),
		cache.NewDraftStore(redisClient, cfg.DraftTTL),
		deps,
		cfg.WizardIdleTTL,
	)

	bookingHandler := handler.NewBookingHandler(bookingService, lg)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	go bookingService.RunBackgroundCleanup(workerCtx)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler.NewRouter(bookingHandler, cfg.CORSOrigins),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		lg.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server startup failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	lg.Info("shutting down server")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		lg.Error("server forced to shutdown", zap.Error(err))
	}

	lg.Info("server exiting")
}
