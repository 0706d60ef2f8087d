package usecase

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	apperrors "github.com/TheSurfingCoder/CourtPulse-sub000/internal/pkg/errors"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/pkg/utils"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/pkg/validator"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// ExtractUseCase - разбор сырых OSM-фич в Court
type ExtractUseCase struct {
	logger *zap.Logger
}

// courtProperties - обязательные свойства фичи
type courtProperties struct {
	ExternalID string `validate:"required"`
	Sport      string `validate:"required"`
}

// NewExtractUseCase создает новый ExtractUseCase
func NewExtractUseCase(logger *zap.Logger) *ExtractUseCase {
	return &ExtractUseCase{logger: logger}
}

// ParseFile читает входной GeoJSON файл.
// Нечитаемый входной файл - фатальная ошибка всего запуска.
func (uc *ExtractUseCase) ParseFile(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	return fc, nil
}

// ExtractCourts конвертирует фичи в Court.
// Невалидные фичи пропускаются с логом и счётчиком, батч не прерывают.
func (uc *ExtractUseCase) ExtractCourts(fc *geojson.FeatureCollection, stats *domain.PipelineStats) []*domain.Court {
	courts := make([]*domain.Court, 0, len(fc.Features))

	for _, f := range fc.Features {
		court, err := uc.extractCourt(f)
		if err != nil {
			stats.Skipped.Add(1)
			uc.logger.Warn("Skipping feature",
				zap.String("reason", err.Error()))
			continue
		}
		courts = append(courts, court)
	}

	uc.logger.Info("Features extracted",
		zap.Int("total", len(fc.Features)),
		zap.Int("courts", len(courts)))

	return courts
}

// extractCourt строит Court из одной фичи
func (uc *ExtractUseCase) extractCourt(f *geojson.Feature) (*domain.Court, error) {
	props := courtProperties{
		ExternalID: getStringProp(f, "id"),
		Sport:      getStringProp(f, "sport"),
	}
	if err := validator.Validate(props); err != nil {
		uc.logger.Debug("Feature failed property validation", zap.Error(err))
		return nil, apperrors.ErrMissingProperty
	}

	lat, lon, err := representativePoint(f.Geometry)
	if err != nil {
		return nil, err
	}
	if !utils.ValidateCoordinates(lat, lon) {
		uc.logger.Debug("Feature has out-of-range coordinates",
			zap.String("external_id", props.ExternalID),
			zap.Float64("lat", lat),
			zap.Float64("lon", lon))
		return nil, apperrors.ErrInvalidCoordinates
	}

	sport := domain.ParseSport(props.Sport)
	hoops := getIntProp(f, "hoops")

	court := &domain.Court{
		ExternalID:   props.ExternalID,
		Sport:        sport,
		Hoops:        hoops,
		Surface:      extractSurface(f),
		PublicAccess: extractPublicAccess(f),
		Lat:          lat,
		Lon:          lon,
		FallbackName: domain.BuildFallbackName(sport, hoops),
	}

	return court, nil
}

// representativePoint вычисляет репрезентативную точку геометрии.
// Для полигона это арифметическое среднее ВСЕХ вершин кольца, включая
// замыкающую - не настоящий центроид. Воспроизводится точно ради
// совместимости выходных данных; известное ограничение точности для
// невыпуклых колец.
func representativePoint(g orb.Geometry) (lat, lon float64, err error) {
	switch geom := g.(type) {
	case orb.Point:
		return geom.Lat(), geom.Lon(), nil

	case orb.Polygon:
		if len(geom) == 0 {
			return 0, 0, apperrors.ErrInvalidGeometry
		}
		ring := geom[0]
		if len(ring) < 4 {
			return 0, 0, apperrors.ErrInvalidGeometry
		}

		var sumLat, sumLon float64
		for _, p := range ring {
			sumLon += p.Lon()
			sumLat += p.Lat()
		}
		n := float64(len(ring))
		return sumLat / n, sumLon / n, nil

	default:
		return 0, 0, apperrors.ErrInvalidGeometry
	}
}

// surfaceMapping - фиксированное соответствие значений тегов покрытию
var surfaceMapping = map[string]domain.SurfaceType{
	"asphalt":   domain.SurfaceAsphalt,
	"concrete":  domain.SurfaceConcrete,
	"wood":      domain.SurfaceWood,
	"synthetic": domain.SurfaceSynthetic,
	"clay":      domain.SurfaceClay,
	"grass":     domain.SurfaceGrass,
	"dirt":      domain.SurfaceOther,
	"gravel":    domain.SurfaceOther,
	"sand":      domain.SurfaceOther,
}

// extractSurface определяет покрытие по тегам surface, surface_type, material
func extractSurface(f *geojson.Feature) domain.SurfaceType {
	for _, tag := range []string{"surface", "surface_type", "material"} {
		value := strings.ToLower(strings.TrimSpace(getStringProp(f, tag)))
		if value == "" {
			continue
		}
		if surface, ok := surfaceMapping[value]; ok {
			return surface
		}
	}
	return domain.SurfaceOther
}

// extractPublicAccess определяет публичность доступа.
// Тристейт: true/false только при явных тегах access/fee, иначе nil.
// Никогда не выводится из категории leisure/amenity.
func extractPublicAccess(f *geojson.Feature) *bool {
	yes, no := true, false

	switch strings.ToLower(getStringProp(f, "access")) {
	case "private", "no", "restricted":
		return &no
	case "yes", "public", "permissive":
		return &yes
	}

	if strings.ToLower(getStringProp(f, "fee")) == "yes" {
		return &no
	}

	return nil
}

func getStringProp(f *geojson.Feature, key string) string {
	if f.Properties == nil {
		return ""
	}
	if v, ok := f.Properties[key].(string); ok {
		return v
	}
	return ""
}

func getIntProp(f *geojson.Feature, key string) *int {
	if f.Properties == nil {
		return nil
	}

	switch v := f.Properties[key].(type) {
	case float64:
		n := int(v)
		if n > 0 {
			return &n
		}
	case int:
		if v > 0 {
			n := v
			return &n
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return &n
		}
	}
	return nil
}
