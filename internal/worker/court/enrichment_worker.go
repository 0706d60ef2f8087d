package court

import (
	"context"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/usecase"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/worker"
	"go.uber.org/zap"
)

// CourtEnrichmentWorker выполняет один запуск пайплайна обогащения площадок.
// В отличие от стримовых воркеров это разовый прогон: воркер завершается
// сам после обработки входного файла, Stop лишь прерывает текущий запуск.
type CourtEnrichmentWorker struct {
	*worker.BaseWorker
	pipelineUC *usecase.PipelineUseCase
}

// NewCourtEnrichmentWorker создает новый CourtEnrichmentWorker
func NewCourtEnrichmentWorker(
	pipelineUC *usecase.PipelineUseCase,
	logger *zap.Logger,
) *CourtEnrichmentWorker {
	return &CourtEnrichmentWorker{
		BaseWorker: worker.NewBaseWorker("court-enrichment", logger),
		pipelineUC: pipelineUC,
	}
}

// Start запускает воркер
func (w *CourtEnrichmentWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting CourtEnrichmentWorker",
		zap.String("run_id", w.pipelineUC.RunID()))

	// сигнал остановки транслируется в отмену контекста запуска
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-w.StopChan():
			cancel()
		case <-runCtx.Done():
		}
	}()

	if err := w.pipelineUC.Run(runCtx); err != nil {
		logger.Error("Pipeline run failed", zap.Error(err))
		return err
	}

	logger.Info("Pipeline run complete",
		zap.String("run_id", w.pipelineUC.RunID()))
	return nil
}
