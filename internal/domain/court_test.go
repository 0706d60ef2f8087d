package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFallbackName(t *testing.T) {
	hoops := 2

	t.Run("basketball with hoops", func(t *testing.T) {
		assert.Equal(t, "basketball court (2 hoops)", BuildFallbackName(SportBasketball, &hoops))
	})

	t.Run("basketball without hoops", func(t *testing.T) {
		assert.Equal(t, "basketball court", BuildFallbackName(SportBasketball, nil))
	})

	t.Run("other sports", func(t *testing.T) {
		assert.Equal(t, "tennis court", BuildFallbackName(SportTennis, nil))
		assert.Equal(t, "pickleball court", BuildFallbackName(SportPickleball, &hoops))
	})

	t.Run("unknown sport", func(t *testing.T) {
		assert.Equal(t, "sports court", BuildFallbackName(SportOther, nil))
		assert.Equal(t, "sports court", BuildFallbackName("", nil))
	})
}

func TestParseSport(t *testing.T) {
	assert.Equal(t, SportBasketball, ParseSport("basketball"))
	assert.Equal(t, SportBasketball, ParseSport(" Basketball "))
	assert.Equal(t, SportOther, ParseSport("futsal"))
	assert.Equal(t, SportOther, ParseSport(""))
}

func TestBoundingBoxContains(t *testing.T) {
	bbox := &BoundingBox{MinLat: 37.80, MinLon: -122.44, MaxLat: 37.81, MaxLon: -122.43}

	assert.True(t, bbox.Contains(37.80209, -122.43442))
	assert.False(t, bbox.Contains(37.79, -122.435))
	// граница включается
	assert.True(t, bbox.Contains(37.80, -122.44))
}

func TestReversePlaceBestLabel(t *testing.T) {
	t.Run("name wins", func(t *testing.T) {
		p := &ReversePlace{Name: "Dolores Park", City: "San Francisco", Country: "USA"}
		assert.Equal(t, "Dolores Park", p.BestLabel())
	})

	t.Run("city and country", func(t *testing.T) {
		p := &ReversePlace{City: "San Francisco", Country: "USA"}
		assert.Equal(t, "San Francisco, USA", p.BestLabel())
	})

	t.Run("street and city", func(t *testing.T) {
		p := &ReversePlace{Street: "Valencia St", City: "San Francisco"}
		assert.Equal(t, "Valencia St, San Francisco", p.BestLabel())
	})

	t.Run("housenumber and street", func(t *testing.T) {
		p := &ReversePlace{HouseNumber: "123", Street: "Valencia St"}
		assert.Equal(t, "123 Valencia St", p.BestLabel())
	})

	t.Run("district then county", func(t *testing.T) {
		assert.Equal(t, "Mission", (&ReversePlace{District: "Mission"}).BestLabel())
		assert.Equal(t, "Marin", (&ReversePlace{County: "Marin"}).BestLabel())
	})
}
