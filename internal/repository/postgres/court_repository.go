package postgres

import (
	"context"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain/repository"
	apperrors "github.com/TheSurfingCoder/CourtPulse-sub000/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type courtRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCourtRepository(db *DB) repository.CourtRepository {
	return &courtRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// UpsertBatch выполняет идемпотентный upsert батча по external_id.
// Весь батч пишется в одной транзакции: при ошибке транзакция откатывается
// целиком, ранее закоммиченные батчи не затрагиваются.
func (r *courtRepository) UpsertBatch(ctx context.Context, courts []*domain.Court) (*repository.CourtBatchResult, error) {
	if len(courts) == 0 {
		return &repository.CourtBatchResult{}, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	defer tx.Rollback()

	// Перезаписываются ВСЕ поля, включая individual_name: нумерация
	// пересоздаётся post-hoc проходом на каждом запуске, поэтому площадка,
	// выпавшая из своей группы (photon_name, sport), не хранит устаревший
	// ярлык "Court N"
	query := `
		INSERT INTO courts (
			external_id, sport, hoops, surface, public_access,
			lat, lon, fallback_name, cluster_id,
			photon_name, photon_distance, photon_source, is_school,
			individual_name, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		ON CONFLICT (external_id) DO UPDATE SET
			sport = EXCLUDED.sport,
			hoops = EXCLUDED.hoops,
			surface = EXCLUDED.surface,
			public_access = EXCLUDED.public_access,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			fallback_name = EXCLUDED.fallback_name,
			cluster_id = EXCLUDED.cluster_id,
			photon_name = EXCLUDED.photon_name,
			photon_distance = EXCLUDED.photon_distance,
			photon_source = EXCLUDED.photon_source,
			is_school = EXCLUDED.is_school,
			individual_name = EXCLUDED.individual_name,
			updated_at = NOW()
		RETURNING id
	`

	for _, court := range courts {
		err := tx.QueryRowxContext(ctx, query,
			court.ExternalID, court.Sport, court.Hoops, court.Surface, court.PublicAccess,
			court.Lat, court.Lon, court.FallbackName, court.ClusterID,
			court.PhotonName, court.PhotonDistance, court.PhotonSource, court.IsSchool,
			court.IndividualName,
		).Scan(&court.ID)
		if err != nil {
			r.logger.Error("Failed to upsert court, rolling back batch",
				zap.String("external_id", court.ExternalID),
				zap.Error(err))
			return &repository.CourtBatchResult{Failed: len(courts)}, apperrors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit batch", zap.Error(err))
		return &repository.CourtBatchResult{Failed: len(courts)}, apperrors.ErrDatabaseError
	}

	return &repository.CourtBatchResult{Succeeded: len(courts)}, nil
}

// GetNameSportGroups возвращает группы площадок по (photon_name, sport).
// Id внутри группы отсортированы по возрастанию суррогатного ключа -
// именно в этом порядке присваиваются индивидуальные имена.
func (r *courtRepository) GetNameSportGroups(ctx context.Context) ([]repository.NameSportGroup, error) {
	query := `
		SELECT photon_name, sport, array_agg(id ORDER BY id) AS court_ids
		FROM courts
		WHERE photon_name IS NOT NULL AND photon_name != ''
		GROUP BY photon_name, sport
		ORDER BY photon_name, sport
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get name/sport groups", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	defer rows.Close()

	var groups []repository.NameSportGroup
	for rows.Next() {
		var g repository.NameSportGroup
		var ids pq.Int64Array

		if err := rows.Scan(&g.Name, &g.Sport, &ids); err != nil {
			r.logger.Error("Failed to scan name/sport group", zap.Error(err))
			continue
		}

		g.CourtIDs = []int64(ids)
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Row iteration failed", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return groups, nil
}

// UpdateIndividualNames применяет присвоения "Court N" одной транзакцией
func (r *courtRepository) UpdateIndividualNames(ctx context.Context, updates []repository.IndividualNameUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE courts SET individual_name = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		r.logger.Error("Failed to prepare update", zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	defer stmt.Close()

	for _, u := range updates {
		if _, err := stmt.ExecContext(ctx, u.Name, u.CourtID); err != nil {
			r.logger.Error("Failed to update individual name",
				zap.Int64("court_id", u.CourtID),
				zap.Error(err))
			return apperrors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit individual names", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	r.logger.Debug("Individual names updated", zap.Int("count", len(updates)))
	return nil
}
