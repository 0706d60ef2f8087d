package domain

import (
	"fmt"
	"strings"
)

// Sport - вид спорта площадки
type Sport string

const (
	SportBasketball Sport = "basketball"
	SportTennis     Sport = "tennis"
	SportSoccer     Sport = "soccer"
	SportVolleyball Sport = "volleyball"
	SportHandball   Sport = "handball"
	SportPickleball Sport = "pickleball"
	SportOther      Sport = "other"
)

// ParseSport нормализует значение тега sport из OSM.
// Значения вне известного набора схлопываются в SportOther.
func ParseSport(s string) Sport {
	switch sport := Sport(strings.ToLower(strings.TrimSpace(s))); sport {
	case SportBasketball, SportTennis, SportSoccer, SportVolleyball, SportHandball, SportPickleball:
		return sport
	default:
		return SportOther
	}
}

// SurfaceType - тип покрытия площадки
type SurfaceType string

const (
	SurfaceAsphalt   SurfaceType = "asphalt"
	SurfaceConcrete  SurfaceType = "concrete"
	SurfaceWood      SurfaceType = "wood"
	SurfaceSynthetic SurfaceType = "synthetic"
	SurfaceClay      SurfaceType = "clay"
	SurfaceGrass     SurfaceType = "grass"
	SurfaceOther     SurfaceType = "other"
)

// Court - спортивная площадка из OSM
type Court struct {
	// ID - суррогатный ключ, присваивается базой при вставке
	ID int64 `json:"id" db:"id"`
	// ExternalID - стабильный OSM id вида "way/123456"
	ExternalID   string      `json:"external_id" db:"external_id"`
	Sport        Sport       `json:"sport" db:"sport"`
	Hoops        *int        `json:"hoops,omitempty" db:"hoops"`
	Surface      SurfaceType `json:"surface" db:"surface"`
	PublicAccess *bool       `json:"public_access,omitempty" db:"public_access"`

	// Репрезентативная точка: центроид полигона или сама точка
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`

	// FallbackName - имя по умолчанию из sport/hoops, когда фасилити не найдено
	FallbackName string `json:"fallback_name" db:"fallback_name"`

	// Результаты обогащения
	ClusterID      *string  `json:"cluster_id,omitempty" db:"cluster_id"`
	PhotonName     *string  `json:"photon_name,omitempty" db:"photon_name"`
	PhotonDistance *float64 `json:"photon_distance,omitempty" db:"photon_distance"`
	PhotonSource   *string  `json:"photon_source,omitempty" db:"photon_source"`
	IsSchool       bool     `json:"is_school" db:"is_school"`
	IndividualName *string  `json:"individual_name,omitempty" db:"individual_name"`
}

// DisplayName возвращает имя фасилити, либо fallback имя
func (c *Court) DisplayName() string {
	if c.PhotonName != nil && *c.PhotonName != "" {
		return *c.PhotonName
	}
	return c.FallbackName
}

// BuildFallbackName строит имя площадки из спорта и количества колец.
// Нераспознанный спорт даёт нейтральное "sports court".
func BuildFallbackName(sport Sport, hoops *int) string {
	switch sport {
	case SportBasketball:
		if hoops != nil {
			return fmt.Sprintf("basketball court (%d hoops)", *hoops)
		}
		return "basketball court"
	case SportOther, "":
		return "sports court"
	default:
		return fmt.Sprintf("%s court", sport)
	}
}
