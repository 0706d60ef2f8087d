package domain

// Stream names
const (
	StreamCourtsDone = "stream:courts:done"
)

// CourtDoneEvent - событие об обогащённой площадке для downstream-потребителей
type CourtDoneEvent struct {
	RunID        string  `json:"run_id"`
	ExternalID   string  `json:"external_id"`
	ClusterID    *string `json:"cluster_id,omitempty"`
	ResolvedName *string `json:"resolved_name,omitempty"`
	FallbackName string  `json:"fallback_name"`
	Error        string  `json:"error,omitempty"`
}

// RunDoneEvent - итоговое событие запуска пайплайна
type RunDoneEvent struct {
	RunID string                `json:"run_id"`
	Stats PipelineStatsSnapshot `json:"stats"`
}
