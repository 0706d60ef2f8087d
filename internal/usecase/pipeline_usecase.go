package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/config"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PipelineMode - режим выполнения пайплайна
const (
	PipelineModeSequential = "sequential"
	PipelineModeConcurrent = "concurrent"
)

// abortFlushTimeout - сколько времени даётся на запись буфера при
// прерванном запуске
const abortFlushTimeout = 10 * time.Second

// PipelineUseCase - оркестрация полного запуска обогащения:
// extract -> cluster -> search/match -> naming -> persistence
type PipelineUseCase struct {
	extractUC  *ExtractUseCase
	clusterUC  *ClusterUseCase
	searchUC   *FacilitySearchUseCase
	namingUC   *NamingUseCase
	courtRepo  repository.CourtRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger

	inputFile     string
	mode          string
	chunkSize     int
	batchSize     int
	requestDelay  time.Duration
	publishEvents bool

	runID string
	stats *domain.PipelineStats

	// buffer накапливает обогащённые записи до флаша батча
	buffer []*domain.Court
}

// NewPipelineUseCase создает новый PipelineUseCase
func NewPipelineUseCase(
	extractUC *ExtractUseCase,
	clusterUC *ClusterUseCase,
	searchUC *FacilitySearchUseCase,
	namingUC *NamingUseCase,
	courtRepo repository.CourtRepository,
	streamRepo repository.StreamRepository,
	cfg *config.PipelineConfig,
	stats *domain.PipelineStats,
	logger *zap.Logger,
) *PipelineUseCase {
	return &PipelineUseCase{
		extractUC:     extractUC,
		clusterUC:     clusterUC,
		searchUC:      searchUC,
		namingUC:      namingUC,
		courtRepo:     courtRepo,
		streamRepo:    streamRepo,
		logger:        logger,
		inputFile:     cfg.InputFile,
		mode:          cfg.Mode,
		chunkSize:     cfg.ChunkSize,
		batchSize:     cfg.BatchSize,
		requestDelay:  cfg.RequestDelay,
		publishEvents: cfg.PublishEvents,
		runID:         uuid.New().String(),
		stats:         stats,
	}
}

// RunID возвращает идентификатор текущего запуска
func (uc *PipelineUseCase) RunID() string {
	return uc.runID
}

// Run выполняет полный запуск пайплайна
func (uc *PipelineUseCase) Run(ctx context.Context) error {
	uc.logger.Info("Pipeline run started",
		zap.String("run_id", uc.runID),
		zap.String("mode", uc.mode),
		zap.String("cluster_mode", string(uc.clusterUC.Mode())),
		zap.String("input_file", uc.inputFile))

	fc, err := uc.extractUC.ParseFile(uc.inputFile)
	if err != nil {
		// нечитаемый вход - фатально для всего запуска
		return err
	}

	courts := uc.extractUC.ExtractCourts(fc, uc.stats)
	if len(courts) == 0 {
		uc.logger.Warn("No valid courts in input, nothing to do")
		return nil
	}

	var clusters []*domain.Cluster
	if uc.clusterUC.Mode() == ClusterModeNameExtent {
		clusters, err = uc.enrichByNameExtent(ctx, courts)
	} else {
		clusters = uc.clusterUC.ClusterCourts(courts)
		uc.stats.ClustersMade.Store(int64(len(clusters)))
		err = uc.enrichClusters(ctx, clusters)
	}
	if err != nil {
		// прерванный запуск всё равно доводит уже собранный буфер до базы
		uc.flushAborted(err)
		return err
	}

	if err := uc.flush(ctx); err != nil {
		uc.logger.Error("Final flush failed", zap.Error(err))
	}

	// post-hoc проход нумерации: его провал фатален только для самого
	// прохода - кластеры и имена, записанные выше, остаются валидными
	if err := uc.namingUC.AssignIndividualNames(ctx); err != nil {
		uc.logger.Error("Individual naming pass failed", zap.Error(err))
	}

	snapshot := uc.stats.Snapshot()
	if uc.publishEvents && uc.streamRepo != nil {
		event := &domain.RunDoneEvent{RunID: uc.runID, Stats: snapshot}
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamCourtsDone, event); err != nil {
			uc.logger.Error("Failed to publish run done event", zap.Error(err))
		}
	}

	uc.logger.Info("Pipeline run finished",
		zap.String("run_id", uc.runID),
		zap.Int64("processed", snapshot.Processed),
		zap.Int64("succeeded", snapshot.Succeeded),
		zap.Int64("failed", snapshot.Failed),
		zap.Int64("skipped", snapshot.Skipped),
		zap.Int64("api_calls", snapshot.APICalls),
		zap.Int64("cache_hits", snapshot.CacheHits),
		zap.Int64("clusters", snapshot.ClustersMade))

	return nil
}

// enrichClusters резолвит имя каждого кластера.
// Sequential: один внешний поиск за раз с паузой вежливости между вызовами.
// Concurrent: чанки по chunkSize кластеров, внутри чанка горутина на
// кластер; результаты пишутся по исходному индексу, так что связь
// кластер-участники никогда не перемешивается.
func (uc *PipelineUseCase) enrichClusters(ctx context.Context, clusters []*domain.Cluster) error {
	if uc.mode != PipelineModeConcurrent {
		for _, cluster := range clusters {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := uc.namingUC.ResolveClusterName(ctx, cluster, false); err != nil {
				uc.logger.Warn("Cluster name resolution failed",
					zap.String("cluster_id", cluster.ID),
					zap.Error(err))
			}
			uc.collectCluster(ctx, cluster)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(uc.requestDelay):
			}
		}
		return nil
	}

	for start := 0; start < len(clusters); start += uc.chunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := start + uc.chunkSize
		if end > len(clusters) {
			end = len(clusters)
		}
		chunk := clusters[start:end]

		var wg sync.WaitGroup
		for _, cluster := range chunk {
			wg.Add(1)
			go func(c *domain.Cluster) {
				defer wg.Done()
				// провал одного поиска изолирован: кластер остаётся без
				// имени, соседи по чанку не затрагиваются
				if err := uc.namingUC.ResolveClusterName(ctx, c, true); err != nil {
					uc.logger.Warn("Cluster name resolution failed",
						zap.String("cluster_id", c.ID),
						zap.Error(err))
				}
			}(cluster)
		}
		wg.Wait()

		// чанк собран - записи уходят в буфер в исходном порядке
		for _, cluster := range chunk {
			uc.collectCluster(ctx, cluster)
		}
	}

	return nil
}

// enrichByNameExtent - режим name_extent: сначала геокодируется каждая
// площадка, затем кластеризация по ключу (имя фасилити, bounding box)
func (uc *PipelineUseCase) enrichByNameExtent(ctx context.Context, courts []*domain.Court) ([]*domain.Cluster, error) {
	resolved := make([]ResolvedFacility, len(courts))
	concurrent := uc.mode == PipelineModeConcurrent

	if concurrent {
		for start := 0; start < len(courts); start += uc.chunkSize {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			end := start + uc.chunkSize
			if end > len(courts) {
				end = len(courts)
			}

			var wg sync.WaitGroup
			for i := start; i < end; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()
					uc.resolveCourt(ctx, courts[idx], &resolved[idx], true)
				}(i)
			}
			wg.Wait()
		}
	} else {
		for i, court := range courts {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			uc.resolveCourt(ctx, court, &resolved[i], false)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(uc.requestDelay):
			}
		}
	}

	clusters := uc.clusterUC.ClusterByNameExtent(courts, resolved)
	uc.stats.ClustersMade.Store(int64(len(clusters)))

	for _, cluster := range clusters {
		uc.collectCluster(ctx, cluster)
	}

	return clusters, nil
}

// resolveCourt геокодирует одну площадку и применяет результат к ней
func (uc *PipelineUseCase) resolveCourt(ctx context.Context, court *domain.Court, out *ResolvedFacility, concurrent bool) {
	var result *SearchResult
	var err error
	if concurrent {
		result, err = uc.searchUC.FindFacilityConcurrent(ctx, court.Lat, court.Lon)
	} else {
		result, err = uc.searchUC.FindFacility(ctx, court.Lat, court.Lon)
	}
	if err != nil || result == nil {
		if err != nil {
			uc.logger.Warn("Court facility resolution failed",
				zap.String("external_id", court.ExternalID),
				zap.Error(err))
		}
		return
	}

	name := result.Name
	source := string(result.Category)
	distance := result.Distance

	court.PhotonName = &name
	court.PhotonSource = &source
	court.PhotonDistance = &distance
	court.IsSchool = IsSchoolFacility(result.Category, result.Name)

	out.Name = result.Name
	if result.Candidate != nil {
		out.Extent = result.Candidate.Extent
	}
}

// collectCluster кладёт участников кластера в буфер и флашит полные батчи
func (uc *PipelineUseCase) collectCluster(ctx context.Context, cluster *domain.Cluster) {
	for _, court := range cluster.Courts {
		uc.stats.Processed.Add(1)
		uc.buffer = append(uc.buffer, court)
	}

	for len(uc.buffer) >= uc.batchSize {
		batch := uc.buffer[:uc.batchSize]
		uc.buffer = uc.buffer[uc.batchSize:]
		uc.persistBatch(ctx, batch)
	}
}

// flush записывает остаток буфера
func (uc *PipelineUseCase) flush(ctx context.Context) error {
	if len(uc.buffer) == 0 {
		return nil
	}
	batch := uc.buffer
	uc.buffer = nil
	uc.persistBatch(ctx, batch)
	return nil
}

// flushAborted записывает буфер при прерванном запуске.
// Контекст запуска уже отменён, поэтому запись идёт с собственным
// коротким дедлайном: обогащённые записи не теряются при shutdown.
func (uc *PipelineUseCase) flushAborted(cause error) {
	if len(uc.buffer) == 0 {
		return
	}

	uc.logger.Warn("Run interrupted, flushing buffered records",
		zap.Int("buffered", len(uc.buffer)),
		zap.Error(cause))

	flushCtx, cancel := context.WithTimeout(context.Background(), abortFlushTimeout)
	defer cancel()

	if err := uc.flush(flushCtx); err != nil {
		uc.logger.Error("Abort flush failed", zap.Error(err))
	}
}

// persistBatch пишет один батч одной транзакцией.
// Провал батча откатывает только его: счётчик ошибок растёт, ранее
// закоммиченные батчи не затрагиваются, пайплайн продолжает работу.
func (uc *PipelineUseCase) persistBatch(ctx context.Context, batch []*domain.Court) {
	result, err := uc.courtRepo.UpsertBatch(ctx, batch)
	if err != nil {
		uc.stats.BatchesFail.Add(1)
		uc.stats.Failed.Add(int64(len(batch)))
		uc.logger.Error("Batch upsert failed, continuing with next batch",
			zap.Int("batch_size", len(batch)),
			zap.Error(err))
		return
	}

	uc.stats.BatchesOK.Add(1)
	uc.stats.Succeeded.Add(int64(result.Succeeded))
	uc.stats.Failed.Add(int64(result.Failed))

	if uc.publishEvents && uc.streamRepo != nil {
		for _, court := range batch {
			event := &domain.CourtDoneEvent{
				RunID:        uc.runID,
				ExternalID:   court.ExternalID,
				ClusterID:    court.ClusterID,
				ResolvedName: court.PhotonName,
				FallbackName: court.FallbackName,
			}
			if err := uc.streamRepo.PublishToStream(ctx, domain.StreamCourtsDone, event); err != nil {
				uc.logger.Error("Failed to publish done event",
					zap.String("external_id", court.ExternalID),
					zap.Error(err))
				// Продолжаем с остальными
			}
		}
	}
}
