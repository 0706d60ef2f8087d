package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		d := HaversineDistance(37.80209, -122.43442, 37.80209, -122.43442)
		assert.Equal(t, 0.0, d)
	})

	t.Run("symmetry", func(t *testing.T) {
		d1 := HaversineDistance(37.80209, -122.43442, 37.76825, -122.40270)
		d2 := HaversineDistance(37.76825, -122.40270, 37.80209, -122.43442)
		assert.Equal(t, d1, d2)
	})

	t.Run("known distance", func(t *testing.T) {
		// SF Ferry Building -> Oakland City Hall, ~13.2 km
		d := HaversineDistance(37.79557, -122.39337, 37.80515, -122.27249)
		assert.InDelta(t, 10.7, d, 0.5)
	})

	t.Run("30 meters is below clustering threshold", func(t *testing.T) {
		// два корта в 30 метрах друг от друга
		d := HaversineDistance(37.76825, -122.40270, 37.76852, -122.40270)
		assert.Less(t, d, 0.05)
		assert.Greater(t, d, 0.02)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(37.8, -122.4))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, -180.5))
}

func TestValidateClusterRadius(t *testing.T) {
	assert.True(t, ValidateClusterRadius(0.05))
	assert.False(t, ValidateClusterRadius(0))
	assert.False(t, ValidateClusterRadius(11))
}
