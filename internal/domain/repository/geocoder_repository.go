package repository

import (
	"context"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
)

// SearchQuery - параметры категоризованного поиска именованных мест
type SearchQuery struct {
	Term      string
	Lat       float64
	Lon       float64
	OSMTag    string
	Limit     int
	BiasScale float64
	Zoom      int
}

// GeocoderRepository - интерфейс внешнего поискового API (Photon)
type GeocoderRepository interface {
	// Search ищет именованные места категории рядом с точкой
	Search(ctx context.Context, q SearchQuery) ([]*domain.FacilityCandidate, error)

	// SearchBBox ищет именованные места внутри bounding box
	SearchBBox(ctx context.Context, term string, bbox domain.BoundingBox, limit int) ([]*domain.FacilityCandidate, error)

	// Reverse возвращает место, к которому административно относится точка
	Reverse(ctx context.Context, lat, lon float64) (*domain.ReversePlace, error)
}
