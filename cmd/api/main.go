package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/activity-portal/internal/config"
	httpDelivery "github.com/activity-portal/internal/delivery/http"
	"github.com/activity-portal/internal/delivery/http/handler"
	"github.com/activity-portal/internal/infrastructure/places"
	"github.com/activity-portal/internal/infrastructure/storage"
	"github.com/activity-portal/internal/infrastructure/supplier"
	"github.com/activity-portal/internal/pkg/logger"
	"github.com/activity-portal/internal/repository/cache"
	redisRepo "github.com/activity-portal/internal/repository/redis"
	"github.com/activity-portal/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Activity Portal")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	// 4. Initialize media storage
	mediaStorage, err := storage.NewS3Storage(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize media storage", zap.Error(err))
	}
	log.Info("Media storage initialized", zap.String("bucket", cfg.Storage.Bucket))

	// 5. Initialize repositories
	supplierClient := supplier.NewClient(&cfg.Supplier, log)
	draftRepo := supplier.NewDraftRepository(supplierClient)
	optionRepo := supplier.NewOptionRepository(supplierClient)
	referenceRepo := supplier.NewReferenceRepository(supplierClient)
	placesRepo := places.NewPlacesClient(&cfg.Places, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 6. Initialize use cases
	activityUC := usecase.NewActivityUseCase(
		draftRepo,
		optionRepo,
		cacheRepo,
		log,
		cfg.Cache.SnapshotTTL,
	)

	optionUC := usecase.NewOptionUseCase(
		optionRepo,
		cacheRepo,
		log,
		cfg.Cache.SnapshotTTL,
		cfg.Cache.MirrorTTL,
	)

	mediaUC := usecase.NewMediaUseCase(
		mediaStorage,
		draftRepo,
		streamRepo,
		log,
		cfg.Media,
	)

	poiSelector := usecase.NewPOISelector(placesRepo, log)

	log.Info("Use cases initialized")

	// 7. Initialize HTTP handlers
	activityHandler := handler.NewActivityHandler(activityUC, log)
	optionHandler := handler.NewOptionHandler(optionUC, log)
	mediaHandler := handler.NewMediaHandler(mediaUC, activityUC, log)
	placesHandler := handler.NewPlacesHandler(poiSelector, log)
	referenceHandler := handler.NewReferenceHandler(referenceRepo, log)

	log.Info("HTTP handlers initialized")

	// 8. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		activityHandler,
		optionHandler,
		mediaHandler,
		placesHandler,
		referenceHandler,
	)

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
