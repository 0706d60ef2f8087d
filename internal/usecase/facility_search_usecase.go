package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain/repository"
	"go.uber.org/zap"
)

// SearchStrategy - один категоризованный поиск в слоёной стратегии
type SearchStrategy struct {
	Category      domain.FacilityCategory
	Term          string
	OSMTag        string
	MaxDistanceKm float64
	Zoom          int
	// Strict - применять ли строгий фильтр ключевых слов к имени
	Strict bool
}

// DefaultStrategies - порядок приоритета категорий: учебные заведения
// (узкий радиус), спортивные/общественные объекты, парки, затем здания
// как последняя надежда. Радиусы в км (~300/500-650/400 футов).
func DefaultStrategies() []SearchStrategy {
	return []SearchStrategy{
		{Category: domain.CategorySchool, Term: "school", OSMTag: "amenity:school", MaxDistanceKm: 0.091, Zoom: 16, Strict: true},
		{Category: domain.CategoryUniversity, Term: "university", OSMTag: "amenity:university", MaxDistanceKm: 0.091, Zoom: 16, Strict: true},
		{Category: domain.CategoryCollege, Term: "college", OSMTag: "amenity:college", MaxDistanceKm: 0.091, Zoom: 16, Strict: true},
		{Category: domain.CategorySportsCentre, Term: "sports centre", OSMTag: "leisure:sports_centre", MaxDistanceKm: 0.152, Zoom: 16, Strict: true},
		{Category: domain.CategorySportsClub, Term: "sports club", OSMTag: "club:sport", MaxDistanceKm: 0.152, Zoom: 16, Strict: true},
		{Category: domain.CategoryCommunityCentre, Term: "community centre", OSMTag: "amenity:community_centre", MaxDistanceKm: 0.152, Zoom: 16, Strict: true},
		{Category: domain.CategoryPlaceOfWorship, Term: "church", OSMTag: "amenity:place_of_worship", MaxDistanceKm: 0.152, Zoom: 16, Strict: true},
		{Category: domain.CategoryPark, Term: "park", OSMTag: "leisure:park", MaxDistanceKm: 0.198, Zoom: 16, Strict: true},
		{Category: domain.CategoryPlayground, Term: "playground", OSMTag: "leisure:playground", MaxDistanceKm: 0.198, Zoom: 16, Strict: true},
		{Category: domain.CategoryRecreation, Term: "recreation ground", OSMTag: "landuse:recreation_ground", MaxDistanceKm: 0.198, Zoom: 16, Strict: true},
		{Category: domain.CategoryBuilding, Term: "building", OSMTag: "building", MaxDistanceKm: 0.122, Zoom: 17, Strict: false},
	}
}

// SearchResult - разрешённое имя фасилити для точки
type SearchResult struct {
	Name      string
	Category  domain.FacilityCategory
	Distance  float64
	Candidate *domain.FacilityCandidate
}

// FacilitySearchUseCase - слоёный поиск именованного фасилити для точки
type FacilitySearchUseCase struct {
	geocoder   repository.GeocoderRepository
	cache      repository.CacheRepository
	logger     *zap.Logger
	strategies []SearchStrategy
	cacheTTL   time.Duration
	stats      *domain.PipelineStats
	// sem ограничивает количество одновременных сетевых вызовов
	sem chan struct{}
}

// NewFacilitySearchUseCase создает новый FacilitySearchUseCase
func NewFacilitySearchUseCase(
	geocoder repository.GeocoderRepository,
	cache repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
	maxConcurrent int,
	stats *domain.PipelineStats,
) *FacilitySearchUseCase {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &FacilitySearchUseCase{
		geocoder:   geocoder,
		cache:      cache,
		logger:     logger,
		strategies: DefaultStrategies(),
		cacheTTL:   cacheTTL,
		stats:      stats,
		sem:        make(chan struct{}, maxConcurrent),
	}
}

// FindFacility ищет фасилити последовательно: категории опрашиваются в
// порядке приоритета, побеждает первая принявшая кандидата. Полный провал
// деградирует в reverse geocoding; тотальный провал возвращает (nil, nil),
// и вызывающий использует fallback-имя площадки.
func (uc *FacilitySearchUseCase) FindFacility(ctx context.Context, lat, lon float64) (*SearchResult, error) {
	for _, strategy := range uc.strategies {
		candidate := uc.searchCategory(ctx, lat, lon, strategy)
		if candidate != nil {
			return &SearchResult{
				Name:      candidate.Name,
				Category:  strategy.Category,
				Distance:  candidate.Distance,
				Candidate: candidate,
			}, nil
		}
	}

	return uc.reverseFallback(ctx, lat, lon), nil
}

// FindFacilityConcurrent запускает все категории параллельно и выбирает
// ближайшего принятого кандидата ("closest accepted candidate wins" вместо
// "first category wins"). Семафор ограничивает одновременные сетевые
// вызовы; провал одной категории изолирован и не прерывает остальные.
func (uc *FacilitySearchUseCase) FindFacilityConcurrent(ctx context.Context, lat, lon float64) (*SearchResult, error) {
	results := make([]*domain.FacilityCandidate, len(uc.strategies))

	var wg sync.WaitGroup
	for i, strategy := range uc.strategies {
		wg.Add(1)
		go func(idx int, s SearchStrategy) {
			defer wg.Done()
			results[idx] = uc.searchCategory(ctx, lat, lon, s)
		}(i, strategy)
	}
	wg.Wait()

	var best *SearchResult
	for i, candidate := range results {
		if candidate == nil {
			continue
		}
		if best == nil || candidate.Distance < best.Distance {
			best = &SearchResult{
				Name:      candidate.Name,
				Category:  uc.strategies[i].Category,
				Distance:  candidate.Distance,
				Candidate: candidate,
			}
		}
	}

	if best != nil {
		return best, nil
	}

	return uc.reverseFallback(ctx, lat, lon), nil
}

// searchCategory выполняет один категоризованный поиск.
// Любая ошибка (сеть, таймаут, кривой JSON) трактуется как "нет кандидата
// из этой категории" - слоёный fallback продолжается.
func (uc *FacilitySearchUseCase) searchCategory(ctx context.Context, lat, lon float64, strategy SearchStrategy) *domain.FacilityCandidate {
	candidates := uc.cachedSearch(ctx, lat, lon, strategy)
	if len(candidates) == 0 {
		return nil
	}

	accepted := make([]*domain.FacilityCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if !IsHighQualityName(candidate.Name) {
			continue
		}
		if strategy.Strict && !HasFacilityKeyword(candidate.Name) {
			uc.logger.Debug("Candidate name lacks facility keyword",
				zap.String("name", candidate.Name),
				zap.String("category", string(strategy.Category)))
			continue
		}
		candidate.Category = strategy.Category
		accepted = append(accepted, candidate)
	}

	best := BestMatch(lat, lon, accepted)
	if best == nil {
		return nil
	}

	// кандидат внутри bounding box принимается независимо от расстояния
	contained := best.Extent != nil && best.Extent.Contains(lat, lon)
	if !contained && best.Distance > strategy.MaxDistanceKm {
		uc.logger.Debug("Candidate beyond category threshold, discarding",
			zap.String("name", best.Name),
			zap.String("category", string(strategy.Category)),
			zap.Float64("distance_km", best.Distance),
			zap.Float64("threshold_km", strategy.MaxDistanceKm))
		return nil
	}

	return best
}

// cachedSearch - read-through кеш поверх поискового API.
// Ключ - категория и координаты, округлённые до 5 знаков (~1 м).
func (uc *FacilitySearchUseCase) cachedSearch(ctx context.Context, lat, lon float64, strategy SearchStrategy) []*domain.FacilityCandidate {
	key := fmt.Sprintf("photon:search:%s:%.5f:%.5f", strategy.Category, lat, lon)

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
			var cached []*domain.FacilityCandidate
			if err := json.Unmarshal(data, &cached); err == nil {
				uc.stats.CacheHits.Add(1)
				return cached
			}
		}
	}

	uc.sem <- struct{}{}
	uc.stats.APICalls.Add(1)
	candidates, err := uc.geocoder.Search(ctx, repository.SearchQuery{
		Term:   strategy.Term,
		Lat:    lat,
		Lon:    lon,
		OSMTag: strategy.OSMTag,
		Zoom:   strategy.Zoom,
	})
	<-uc.sem

	if err != nil {
		uc.logger.Warn("Category search failed, continuing with next strategy",
			zap.String("category", string(strategy.Category)),
			zap.Error(err))
		return nil
	}

	if uc.cache != nil {
		if data, err := json.Marshal(candidates); err == nil {
			_ = uc.cache.Set(ctx, key, data, uc.cacheTTL)
		}
	}

	return candidates
}

// reverseFallback - финальный fallback: reverse geocoding самой точки
func (uc *FacilitySearchUseCase) reverseFallback(ctx context.Context, lat, lon float64) *SearchResult {
	uc.sem <- struct{}{}
	uc.stats.APICalls.Add(1)
	place, err := uc.geocoder.Reverse(ctx, lat, lon)
	<-uc.sem

	if err != nil {
		uc.logger.Warn("Reverse geocoding failed", zap.Error(err))
		return nil
	}
	if place == nil {
		return nil
	}

	label := place.BestLabel()
	if !IsHighQualityName(label) {
		uc.logger.Debug("Reverse geocoding label rejected", zap.String("label", label))
		return nil
	}

	return &SearchResult{
		Name:     label,
		Category: domain.CategoryReverse,
	}
}

// genericNameParts - подстроки, выдающие безымянные или уличные результаты
var genericNameParts = []string{
	"unnamed", "untitled",
	"street", "avenue", "road", " way", "drive", "boulevard", "lane", "alley", "highway",
}

// IsHighQualityName отсекает мусорные имена: пустые, короче 3 символов,
// содержащие уличные суффиксы или состоящие из цифр более чем наполовину
func IsHighQualityName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, part := range genericNameParts {
		if strings.Contains(lower, part) {
			return false
		}
	}

	digits := 0
	for _, r := range trimmed {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits*2 <= len(trimmed)
}

// facilityKeywords - признаки рекреационных/институциональных мест
var facilityKeywords = []string{
	"park", "playground", "recreation", "community", "center", "centre",
	"sports", "athletic", "gym", "fitness", "field", "court",
	"school", "university", "college", "academy", "institute",
	"club", "church", "temple", "ymca",
}

// HasFacilityKeyword - строгий фильтр: имя должно содержать хотя бы одно
// ключевое слово фасилити, иначе оно не считается уверенным совпадением
func HasFacilityKeyword(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range facilityKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
