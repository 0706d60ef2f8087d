package usecase

import (
	"fmt"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	apperrors "github.com/TheSurfingCoder/CourtPulse-sub000/internal/pkg/errors"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClusterMode - режим кластеризации
type ClusterMode string

const (
	// ClusterModeDistance - чисто по расстоянию
	ClusterModeDistance ClusterMode = "distance"
	// ClusterModeDistanceSport - по расстоянию и совпадению спорта
	ClusterModeDistanceSport ClusterMode = "distance_sport"
	// ClusterModeNameExtent - по совпадению имени фасилити и bounding box,
	// расстояние используется только как tie-break
	ClusterModeNameExtent ClusterMode = "name_extent"
)

// ClusterUseCase - группировка площадок в кластеры
type ClusterUseCase struct {
	logger   *zap.Logger
	radiusKm float64
	mode     ClusterMode
}

// NewClusterUseCase создает новый ClusterUseCase
func NewClusterUseCase(radiusKm float64, mode ClusterMode, logger *zap.Logger) (*ClusterUseCase, error) {
	if !utils.ValidateClusterRadius(radiusKm) {
		logger.Error("Invalid cluster radius", zap.Float64("radius_km", radiusKm))
		return nil, apperrors.ErrInvalidClusterRadius
	}

	switch mode {
	case ClusterModeDistance, ClusterModeDistanceSport, ClusterModeNameExtent:
	default:
		return nil, fmt.Errorf("unknown cluster mode: %s", mode)
	}

	return &ClusterUseCase{
		logger:   logger,
		radiusKm: radiusKm,
		mode:     mode,
	}, nil
}

// Mode возвращает текущий режим кластеризации
func (uc *ClusterUseCase) Mode() ClusterMode {
	return uc.mode
}

// ClusterCourts разбивает площадки на кластеры за один проход.
// Каждая непосещённая площадка становится зерном нового кластера;
// все последующие непосещённые площадки в пределах radiusKm ОТ ЗЕРНА
// (не от других участников) присоединяются. Детерминированно при
// фиксированном порядке входа; каждая площадка попадает ровно в один
// кластер, порядок кластеров - порядок зёрен.
func (uc *ClusterUseCase) ClusterCourts(courts []*domain.Court) []*domain.Cluster {
	visited := make([]bool, len(courts))
	clusters := make([]*domain.Cluster, 0)

	for i, seed := range courts {
		if visited[i] {
			continue
		}
		visited[i] = true

		cluster := &domain.Cluster{
			ID:     uuid.New().String(),
			Sport:  seed.Sport,
			Courts: []*domain.Court{seed},
		}

		for j := i + 1; j < len(courts); j++ {
			if visited[j] {
				continue
			}
			candidate := courts[j]

			if uc.mode == ClusterModeDistanceSport && candidate.Sport != seed.Sport {
				continue
			}

			dist := utils.HaversineDistance(seed.Lat, seed.Lon, candidate.Lat, candidate.Lon)
			if dist < uc.radiusKm {
				visited[j] = true
				cluster.Courts = append(cluster.Courts, candidate)
			}
		}

		for _, member := range cluster.Courts {
			clusterID := cluster.ID
			member.ClusterID = &clusterID
		}

		clusters = append(clusters, cluster)
	}

	uc.logger.Info("Courts clustered",
		zap.Int("courts", len(courts)),
		zap.Int("clusters", len(clusters)),
		zap.String("mode", string(uc.mode)),
		zap.Float64("radius_km", uc.radiusKm))

	return clusters
}

// ResolvedFacility - результат геокодирования площадки для режима name_extent
type ResolvedFacility struct {
	Name   string
	Extent *domain.BoundingBox
}

// ClusterByNameExtent группирует площадки по ключу (имя фасилити, bounding
// box). Географическое расстояние здесь не первичный ключ: площадки с
// одинаковым разрешённым именем и идентичным extent попадают в один кластер
// независимо от взаимного расстояния. resolved[i] соответствует courts[i];
// площадки без разрешённого имени становятся одиночными кластерами.
func (uc *ClusterUseCase) ClusterByNameExtent(courts []*domain.Court, resolved []ResolvedFacility) []*domain.Cluster {
	if len(courts) != len(resolved) {
		uc.logger.Error("Mismatched courts and resolved facilities",
			zap.Int("courts", len(courts)),
			zap.Int("resolved", len(resolved)))
		return nil
	}

	clusters := make([]*domain.Cluster, 0)
	byKey := make(map[string]*domain.Cluster)

	for i, court := range courts {
		key := facilityKey(resolved[i])

		if key == "" {
			// без имени - одиночный кластер
			cluster := &domain.Cluster{
				ID:     uuid.New().String(),
				Sport:  court.Sport,
				Courts: []*domain.Court{court},
			}
			clusterID := cluster.ID
			court.ClusterID = &clusterID
			clusters = append(clusters, cluster)
			continue
		}

		if cluster, ok := byKey[key]; ok {
			cluster.Courts = append(cluster.Courts, court)
			clusterID := cluster.ID
			court.ClusterID = &clusterID
			continue
		}

		name := resolved[i].Name
		cluster := &domain.Cluster{
			ID:           uuid.New().String(),
			Sport:        court.Sport,
			Courts:       []*domain.Court{court},
			ResolvedName: &name,
		}
		clusterID := cluster.ID
		court.ClusterID = &clusterID
		byKey[key] = cluster
		clusters = append(clusters, cluster)
	}

	uc.logger.Info("Courts clustered by name and extent",
		zap.Int("courts", len(courts)),
		zap.Int("clusters", len(clusters)))

	return clusters
}

// facilityKey строит ключ кластеризации из имени и extent
func facilityKey(r ResolvedFacility) string {
	if r.Name == "" {
		return ""
	}
	if r.Extent == nil {
		return r.Name
	}
	return fmt.Sprintf("%s|%f,%f,%f,%f",
		r.Name, r.Extent.MinLat, r.Extent.MinLon, r.Extent.MaxLat, r.Extent.MaxLon)
}
