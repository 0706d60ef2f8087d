package usecase_test

import (
	"sort"
	"testing"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	apperrors "github.com/TheSurfingCoder/CourtPulse-sub000/internal/pkg/errors"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func basketballCourt(id string, lat, lon float64) *domain.Court {
	return &domain.Court{
		ExternalID:   id,
		Sport:        domain.SportBasketball,
		Lat:          lat,
		Lon:          lon,
		FallbackName: "basketball court",
	}
}

func TestClusterUseCase_ClusterCourts(t *testing.T) {
	logger := zap.NewNop()

	t.Run("courts within radius form one cluster", func(t *testing.T) {
		uc, err := usecase.NewClusterUseCase(0.05, usecase.ClusterModeDistanceSport, logger)
		require.NoError(t, err)

		// два корта в ~30 метрах друг от друга
		courts := []*domain.Court{
			basketballCourt("way/167", 37.76825, -122.40270),
			basketballCourt("way/168", 37.76852, -122.40270),
		}

		clusters := uc.ClusterCourts(courts)
		require.Len(t, clusters, 1)
		assert.Equal(t, 2, clusters[0].Size())
		assert.Equal(t, "way/167", clusters[0].Representative().ExternalID)

		// каждый участник получает id кластера
		for _, c := range courts {
			require.NotNil(t, c.ClusterID)
			assert.Equal(t, clusters[0].ID, *c.ClusterID)
		}
	})

	t.Run("distant courts stay separate", func(t *testing.T) {
		uc, err := usecase.NewClusterUseCase(0.05, usecase.ClusterModeDistanceSport, logger)
		require.NoError(t, err)

		courts := []*domain.Court{
			basketballCourt("way/1", 37.76825, -122.40270),
			basketballCourt("way/2", 37.80209, -122.43442), // ~4.5 км
		}

		clusters := uc.ClusterCourts(courts)
		assert.Len(t, clusters, 2)
	})

	t.Run("sport mismatch splits cluster in distance_sport mode", func(t *testing.T) {
		uc, err := usecase.NewClusterUseCase(0.05, usecase.ClusterModeDistanceSport, logger)
		require.NoError(t, err)

		tennis := basketballCourt("way/2", 37.76830, -122.40270)
		tennis.Sport = domain.SportTennis

		courts := []*domain.Court{
			basketballCourt("way/1", 37.76825, -122.40270),
			tennis,
		}

		clusters := uc.ClusterCourts(courts)
		assert.Len(t, clusters, 2)
	})

	t.Run("pure distance mode ignores sport", func(t *testing.T) {
		uc, err := usecase.NewClusterUseCase(0.05, usecase.ClusterModeDistance, logger)
		require.NoError(t, err)

		tennis := basketballCourt("way/2", 37.76830, -122.40270)
		tennis.Sport = domain.SportTennis

		courts := []*domain.Court{
			basketballCourt("way/1", 37.76825, -122.40270),
			tennis,
		}

		clusters := uc.ClusterCourts(courts)
		assert.Len(t, clusters, 1)
		assert.Equal(t, 2, clusters[0].Size())
	})

	t.Run("radius is measured from seed, not from other members", func(t *testing.T) {
		uc, err := usecase.NewClusterUseCase(0.05, usecase.ClusterModeDistance, logger)
		require.NoError(t, err)

		// B в 40 м от зерна A, C в 80 м от A (но лишь в 40 м от B):
		// C не присоединяется, радиус меряется от зерна
		courts := []*domain.Court{
			basketballCourt("way/a", 37.76825, -122.40270),
			basketballCourt("way/b", 37.76861, -122.40270),
			basketballCourt("way/c", 37.76897, -122.40270),
		}

		clusters := uc.ClusterCourts(courts)
		require.Len(t, clusters, 2)
		assert.Equal(t, 2, clusters[0].Size())
		assert.Equal(t, 1, clusters[1].Size())
		assert.Equal(t, "way/c", clusters[1].Representative().ExternalID)
	})

	t.Run("singleton input produces singleton cluster", func(t *testing.T) {
		uc, err := usecase.NewClusterUseCase(0.05, usecase.ClusterModeDistanceSport, logger)
		require.NoError(t, err)

		clusters := uc.ClusterCourts([]*domain.Court{basketballCourt("way/1", 37.7, -122.4)})
		require.Len(t, clusters, 1)
		assert.Equal(t, 1, clusters[0].Size())
	})

	t.Run("idempotence: same input yields same membership", func(t *testing.T) {
		uc, err := usecase.NewClusterUseCase(0.05, usecase.ClusterModeDistanceSport, logger)
		require.NoError(t, err)

		build := func() []*domain.Court {
			return []*domain.Court{
				basketballCourt("way/1", 37.76825, -122.40270),
				basketballCourt("way/2", 37.76852, -122.40270),
				basketballCourt("way/3", 37.80209, -122.43442),
				basketballCourt("way/4", 37.80215, -122.43440),
			}
		}

		memberships := func(clusters []*domain.Cluster) [][]string {
			out := make([][]string, 0, len(clusters))
			for _, cl := range clusters {
				ids := make([]string, 0, cl.Size())
				for _, c := range cl.Courts {
					ids = append(ids, c.ExternalID)
				}
				sort.Strings(ids)
				out = append(out, ids)
			}
			return out
		}

		first := memberships(uc.ClusterCourts(build()))
		second := memberships(uc.ClusterCourts(build()))
		assert.Equal(t, first, second)
	})

	t.Run("every court lands in exactly one cluster", func(t *testing.T) {
		uc, err := usecase.NewClusterUseCase(0.05, usecase.ClusterModeDistance, logger)
		require.NoError(t, err)

		courts := []*domain.Court{
			basketballCourt("way/1", 37.76825, -122.40270),
			basketballCourt("way/2", 37.76852, -122.40270),
			basketballCourt("way/3", 37.80209, -122.43442),
		}

		clusters := uc.ClusterCourts(courts)
		seen := make(map[string]int)
		for _, cl := range clusters {
			for _, c := range cl.Courts {
				seen[c.ExternalID]++
			}
		}
		assert.Len(t, seen, 3)
		for id, count := range seen {
			assert.Equal(t, 1, count, "court %s appears in %d clusters", id, count)
		}
	})

	t.Run("invalid radius rejected", func(t *testing.T) {
		_, err := usecase.NewClusterUseCase(0, usecase.ClusterModeDistance, logger)
		assert.ErrorIs(t, err, apperrors.ErrInvalidClusterRadius)
	})

	t.Run("unknown mode rejected", func(t *testing.T) {
		_, err := usecase.NewClusterUseCase(0.05, "voronoi", logger)
		assert.Error(t, err)
	})
}

func TestClusterUseCase_ClusterByNameExtent(t *testing.T) {
	logger := zap.NewNop()

	uc, err := usecase.NewClusterUseCase(0.05, usecase.ClusterModeNameExtent, logger)
	require.NoError(t, err)

	extent := &domain.BoundingBox{MinLat: 37.76, MinLon: -122.41, MaxLat: 37.77, MaxLon: -122.40}

	t.Run("same name and extent group together regardless of distance", func(t *testing.T) {
		courts := []*domain.Court{
			basketballCourt("way/1", 37.76825, -122.40270),
			basketballCourt("way/2", 37.76990, -122.40100), // за радиусом 50 м
			basketballCourt("way/3", 37.80209, -122.43442),
		}
		resolved := []usecase.ResolvedFacility{
			{Name: "Jackson Playground Park", Extent: extent},
			{Name: "Jackson Playground Park", Extent: extent},
			{Name: "Moscone Recreation Center"},
		}

		clusters := uc.ClusterByNameExtent(courts, resolved)
		require.Len(t, clusters, 2)
		assert.Equal(t, 2, clusters[0].Size())
		require.NotNil(t, clusters[0].ResolvedName)
		assert.Equal(t, "Jackson Playground Park", *clusters[0].ResolvedName)
		assert.Equal(t, 1, clusters[1].Size())
	})

	t.Run("different extents split identical names", func(t *testing.T) {
		otherExtent := &domain.BoundingBox{MinLat: 37.80, MinLon: -122.44, MaxLat: 37.81, MaxLon: -122.43}

		courts := []*domain.Court{
			basketballCourt("way/1", 37.76825, -122.40270),
			basketballCourt("way/2", 37.76830, -122.40270),
		}
		resolved := []usecase.ResolvedFacility{
			{Name: "Recreation Center", Extent: extent},
			{Name: "Recreation Center", Extent: otherExtent},
		}

		clusters := uc.ClusterByNameExtent(courts, resolved)
		assert.Len(t, clusters, 2)
	})

	t.Run("unresolved courts become singletons", func(t *testing.T) {
		courts := []*domain.Court{
			basketballCourt("way/1", 37.76825, -122.40270),
			basketballCourt("way/2", 37.76830, -122.40270),
		}
		resolved := make([]usecase.ResolvedFacility, 2)

		clusters := uc.ClusterByNameExtent(courts, resolved)
		assert.Len(t, clusters, 2)
	})
}
