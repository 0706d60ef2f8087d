package domain

// FacilityCategory - категория именованного места из поискового API
type FacilityCategory string

const (
	CategorySchool          FacilityCategory = "school"
	CategoryUniversity      FacilityCategory = "university"
	CategoryCollege         FacilityCategory = "college"
	CategorySportsCentre    FacilityCategory = "sports_centre"
	CategorySportsClub      FacilityCategory = "sports_club"
	CategoryCommunityCentre FacilityCategory = "community_centre"
	CategoryPlaceOfWorship  FacilityCategory = "place_of_worship"
	CategoryPark            FacilityCategory = "park"
	CategoryPlayground      FacilityCategory = "playground"
	CategoryRecreation      FacilityCategory = "recreation_ground"
	CategoryBuilding        FacilityCategory = "building"
	CategoryReverse         FacilityCategory = "reverse"
)

// IsSchoolCategory проверяет, относится ли категория к учебным заведениям
func (c FacilityCategory) IsSchoolCategory() bool {
	return c == CategorySchool || c == CategoryUniversity || c == CategoryCollege
}

// FacilityCandidate - именованное место, возвращённое поисковым API.
// Живёт только в рамках одного поискового вызова.
type FacilityCandidate struct {
	Name     string           `json:"name"`
	Lat      float64          `json:"lat"`
	Lon      float64          `json:"lon"`
	Category FacilityCategory `json:"category"`
	OSMKey   string           `json:"osm_key,omitempty"`
	OSMValue string           `json:"osm_value,omitempty"`
	// Extent - bounding box места (west, north, east, south в Photon)
	Extent *BoundingBox `json:"extent,omitempty"`
	// Distance до точки запроса в км, вычисляется потребителем
	Distance float64 `json:"-"`
}

// ReversePlace - результат reverse geocoding
type ReversePlace struct {
	Name        string `json:"name,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	Street      string `json:"street,omitempty"`
	HouseNumber string `json:"housenumber,omitempty"`
	District    string `json:"district,omitempty"`
	County      string `json:"county,omitempty"`
}

// BestLabel выбирает имя места по фиксированному порядку предпочтения полей:
// name > city+country > street+city > housenumber+street > district/county
func (p *ReversePlace) BestLabel() string {
	if p.Name != "" {
		return p.Name
	}
	if p.City != "" && p.Country != "" {
		return p.City + ", " + p.Country
	}
	if p.Street != "" && p.City != "" {
		return p.Street + ", " + p.City
	}
	if p.HouseNumber != "" && p.Street != "" {
		return p.HouseNumber + " " + p.Street
	}
	if p.District != "" {
		return p.District
	}
	return p.County
}
