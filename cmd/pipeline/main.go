package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/config"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/infrastructure/photon"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/pkg/logger"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/repository/cache"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/repository/postgres"
	redisRepo "github.com/TheSurfingCoder/CourtPulse-sub000/internal/repository/redis"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/usecase"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/worker"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/worker/court"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if cfg.Pipeline.InputFile == "" {
		fmt.Println("No input file configured. Set PIPELINE_INPUT_FILE to a GeoJSON file.")
		os.Exit(1)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Court Enrichment Pipeline")
	log.Info("Configuration loaded",
		zap.String("input_file", cfg.Pipeline.InputFile),
		zap.String("mode", cfg.Pipeline.Mode),
		zap.String("cluster_mode", cfg.Pipeline.ClusterMode),
		zap.Float64("cluster_radius_km", cfg.Pipeline.ClusterRadiusKm),
		zap.Int("batch_size", cfg.Pipeline.BatchSize))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	courtRepo := postgres.NewCourtRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	geocoder := photon.NewPhotonClient(&cfg.Photon, log)

	// 6. Initialize use cases
	stats := &domain.PipelineStats{}

	extractUC := usecase.NewExtractUseCase(log)

	clusterUC, err := usecase.NewClusterUseCase(
		cfg.Pipeline.ClusterRadiusKm,
		usecase.ClusterMode(cfg.Pipeline.ClusterMode),
		log,
	)
	if err != nil {
		log.Fatal("Invalid clustering configuration", zap.Error(err))
	}

	searchUC := usecase.NewFacilitySearchUseCase(
		geocoder,
		cacheRepo,
		log,
		cfg.Cache.SearchCacheTTL,
		cfg.Pipeline.MaxConcurrent,
		stats,
	)
	namingUC := usecase.NewNamingUseCase(searchUC, courtRepo, log)

	pipelineUC := usecase.NewPipelineUseCase(
		extractUC,
		clusterUC,
		searchUC,
		namingUC,
		courtRepo,
		streamRepo,
		&cfg.Pipeline,
		stats,
		log,
	)

	// 7. Initialize workers
	enrichmentWorker := court.NewCourtEnrichmentWorker(pipelineUC, log)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(enrichmentWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Пайплайн разовый: выходим либо по завершении прогона, либо по сигналу
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-workerManager.Done():
		log.Info("Pipeline run finished")
	case <-sigChan:
		log.Info("Received shutdown signal")
	}

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Pipeline shutdown complete")
}
