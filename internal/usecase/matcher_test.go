package usecase_test

import (
	"testing"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestMatch(t *testing.T) {
	t.Run("containment beats proximity", func(t *testing.T) {
		// кандидат с extent в 5 км побеждает кандидата в 10 м без extent
		near := &domain.FacilityCandidate{
			Name: "Near Place",
			Lat:  37.80218, Lon: -122.43442,
		}
		far := &domain.FacilityCandidate{
			Name: "Containing Park",
			Lat:  37.84700, Lon: -122.43442,
			Extent: &domain.BoundingBox{MinLat: 37.79, MinLon: -122.45, MaxLat: 37.86, MaxLon: -122.42},
		}

		best := usecase.BestMatch(37.80209, -122.43442, []*domain.FacilityCandidate{near, far})
		require.NotNil(t, best)
		assert.Equal(t, "Containing Park", best.Name)
	})

	t.Run("corner store scenario", func(t *testing.T) {
		cornerStore := &domain.FacilityCandidate{
			Name: "Corner Store",
			Lat:  37.80218, Lon: -122.43442, // ~10 м
		}
		moscone := &domain.FacilityCandidate{
			Name: "Moscone Recreation Center",
			Lat:  37.80480, Lon: -122.43442, // ~300 м
			Extent: &domain.BoundingBox{MinLat: 37.801, MinLon: -122.440, MaxLat: 37.806, MaxLon: -122.430},
		}

		best := usecase.BestMatch(37.80209, -122.43442, []*domain.FacilityCandidate{cornerStore, moscone})
		require.NotNil(t, best)
		assert.Equal(t, "Moscone Recreation Center", best.Name)
	})

	t.Run("nearest wins when nothing contains", func(t *testing.T) {
		a := &domain.FacilityCandidate{Name: "A", Lat: 37.810, Lon: -122.434}
		b := &domain.FacilityCandidate{Name: "B", Lat: 37.803, Lon: -122.434}

		best := usecase.BestMatch(37.80209, -122.43442, []*domain.FacilityCandidate{a, b})
		require.NotNil(t, best)
		assert.Equal(t, "B", best.Name)
	})

	t.Run("ties break to first seen", func(t *testing.T) {
		// оба содержат точку: score одинаков, побеждает первый
		extent := &domain.BoundingBox{MinLat: 37.79, MinLon: -122.45, MaxLat: 37.81, MaxLon: -122.42}
		first := &domain.FacilityCandidate{Name: "First", Lat: 37.805, Lon: -122.435, Extent: extent}
		second := &domain.FacilityCandidate{Name: "Second", Lat: 37.803, Lon: -122.434, Extent: extent}

		best := usecase.BestMatch(37.80209, -122.43442, []*domain.FacilityCandidate{first, second})
		require.NotNil(t, best)
		assert.Equal(t, "First", best.Name)
	})

	t.Run("empty candidate list", func(t *testing.T) {
		assert.Nil(t, usecase.BestMatch(37.8, -122.4, nil))
	})

	t.Run("distance is filled on candidates", func(t *testing.T) {
		c := &domain.FacilityCandidate{Name: "A", Lat: 37.80209, Lon: -122.43442}
		usecase.BestMatch(37.80209, -122.43442, []*domain.FacilityCandidate{c})
		assert.Equal(t, 0.0, c.Distance)
	})
}
