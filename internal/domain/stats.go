package domain

import "sync/atomic"

// PipelineStats - счётчики запуска пайплайна.
// Инкременты атомарные: в конкурентном режиме их обновляют несколько горутин.
type PipelineStats struct {
	Processed    atomic.Int64
	Succeeded    atomic.Int64
	Failed       atomic.Int64
	Skipped      atomic.Int64
	APICalls     atomic.Int64
	CacheHits    atomic.Int64
	BatchesOK    atomic.Int64
	BatchesFail  atomic.Int64
	ClustersMade atomic.Int64
}

// Snapshot возвращает текущие значения счётчиков
func (s *PipelineStats) Snapshot() PipelineStatsSnapshot {
	return PipelineStatsSnapshot{
		Processed:    s.Processed.Load(),
		Succeeded:    s.Succeeded.Load(),
		Failed:       s.Failed.Load(),
		Skipped:      s.Skipped.Load(),
		APICalls:     s.APICalls.Load(),
		CacheHits:    s.CacheHits.Load(),
		BatchesOK:    s.BatchesOK.Load(),
		BatchesFail:  s.BatchesFail.Load(),
		ClustersMade: s.ClustersMade.Load(),
	}
}

// PipelineStatsSnapshot - неизменяемый срез статистики для логов и событий
type PipelineStatsSnapshot struct {
	Processed    int64 `json:"processed"`
	Succeeded    int64 `json:"succeeded"`
	Failed       int64 `json:"failed"`
	Skipped      int64 `json:"skipped"`
	APICalls     int64 `json:"api_calls"`
	CacheHits    int64 `json:"cache_hits"`
	BatchesOK    int64 `json:"batches_ok"`
	BatchesFail  int64 `json:"batches_fail"`
	ClustersMade int64 `json:"clusters_made"`
}
