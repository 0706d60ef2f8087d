package repository

import (
	"context"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
)

// CourtBatchResult - результат батчевой вставки
type CourtBatchResult struct {
	Succeeded int
	Failed    int
}

// NameSportGroup - группа площадок с одинаковым (photon_name, sport).
// CourtIDs отсортированы по возрастанию суррогатного id.
type NameSportGroup struct {
	Name     string
	Sport    domain.Sport
	CourtIDs []int64
}

// IndividualNameUpdate - присвоение (или сброс) индивидуального имени площадки
type IndividualNameUpdate struct {
	CourtID int64
	Name    *string
}

// CourtRepository определяет методы персистентности площадок
type CourtRepository interface {
	// UpsertBatch выполняет идемпотентный upsert батча по external_id
	// в рамках одной транзакции
	UpsertBatch(ctx context.Context, courts []*domain.Court) (*CourtBatchResult, error)

	// GetNameSportGroups возвращает группы площадок по (photon_name, sport)
	GetNameSportGroups(ctx context.Context) ([]NameSportGroup, error)

	// UpdateIndividualNames применяет присвоения "Court N" одной транзакцией
	UpdateIndividualNames(ctx context.Context, updates []IndividualNameUpdate) error
}
