package domain

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains проверяет, попадает ли точка внутрь bounding box
func (b *BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// Equal сравнивает два bounding box по значениям
func (b *BoundingBox) Equal(other *BoundingBox) bool {
	if other == nil {
		return false
	}
	return b.MinLat == other.MinLat && b.MinLon == other.MinLon &&
		b.MaxLat == other.MaxLat && b.MaxLon == other.MaxLon
}
