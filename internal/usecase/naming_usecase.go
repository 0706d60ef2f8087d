package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain/repository"
	"go.uber.org/zap"
)

// NamingUseCase - резолв имени кластера и присвоение индивидуальных имён
type NamingUseCase struct {
	searchUC  *FacilitySearchUseCase
	courtRepo repository.CourtRepository
	logger    *zap.Logger
}

// NewNamingUseCase создает новый NamingUseCase
func NewNamingUseCase(
	searchUC *FacilitySearchUseCase,
	courtRepo repository.CourtRepository,
	logger *zap.Logger,
) *NamingUseCase {
	return &NamingUseCase{
		searchUC:  searchUC,
		courtRepo: courtRepo,
		logger:    logger,
	}
}

// ResolveClusterName геокодирует ТОЛЬКО репрезентативную площадку кластера
// (один внешний вызов на кластер, не на участника) и применяет результат
// ко всем участникам единообразно. Инвариант: площадки одного кластера
// всегда несут одно и то же имя фасилити.
func (uc *NamingUseCase) ResolveClusterName(ctx context.Context, cluster *domain.Cluster, concurrent bool) error {
	rep := cluster.Representative()
	if rep == nil {
		return fmt.Errorf("cluster %s has no members", cluster.ID)
	}

	var result *SearchResult
	var err error
	if concurrent {
		result, err = uc.searchUC.FindFacilityConcurrent(ctx, rep.Lat, rep.Lon)
	} else {
		result, err = uc.searchUC.FindFacility(ctx, rep.Lat, rep.Lon)
	}
	if err != nil {
		return err
	}

	if result == nil {
		// фасилити не найдено: каждый участник остаётся со своим fallback-именем
		uc.logger.Debug("No facility resolved for cluster",
			zap.String("cluster_id", cluster.ID),
			zap.Int("members", cluster.Size()))
		return nil
	}

	name := result.Name
	source := string(result.Category)
	distance := result.Distance
	isSchool := IsSchoolFacility(result.Category, result.Name)

	cluster.ResolvedName = &name
	cluster.ResolvedSource = &source
	cluster.ResolvedDist = &distance

	for _, member := range cluster.Courts {
		member.PhotonName = &name
		member.PhotonSource = &source
		member.PhotonDistance = &distance
		member.IsSchool = isSchool
	}

	uc.logger.Debug("Cluster name resolved",
		zap.String("cluster_id", cluster.ID),
		zap.String("name", name),
		zap.String("source", source),
		zap.Int("members", cluster.Size()))

	return nil
}

// AssignIndividualNames - post-hoc проход нумерации по сохранённым записям.
// Группы по (photon_name, sport): при count > 1 присваиваются "Court 1..N"
// по возрастанию суррогатного id; при count == 1 индивидуальное имя
// сбрасывается в NULL. Повторный запуск на неизменных данных даёт
// идентичный результат.
func (uc *NamingUseCase) AssignIndividualNames(ctx context.Context) error {
	groups, err := uc.courtRepo.GetNameSportGroups(ctx)
	if err != nil {
		return fmt.Errorf("naming pass failed: %w", err)
	}

	var updates []repository.IndividualNameUpdate
	for _, group := range groups {
		if len(group.CourtIDs) > 1 {
			for i, id := range group.CourtIDs {
				name := fmt.Sprintf("Court %d", i+1)
				updates = append(updates, repository.IndividualNameUpdate{CourtID: id, Name: &name})
			}
		} else {
			// группа сжалась до одного участника - чистим устаревшую нумерацию
			for _, id := range group.CourtIDs {
				updates = append(updates, repository.IndividualNameUpdate{CourtID: id, Name: nil})
			}
		}
	}

	if err := uc.courtRepo.UpdateIndividualNames(ctx, updates); err != nil {
		return fmt.Errorf("naming pass failed: %w", err)
	}

	uc.logger.Info("Individual names assigned",
		zap.Int("groups", len(groups)),
		zap.Int("updates", len(updates)))

	return nil
}

// schoolKeywords - текстовые признаки учебного заведения в имени
var schoolKeywords = []string{
	"school", "academy", "college", "university", "institute",
	"elementary", "middle school", "high school",
}

// IsSchoolFacility определяет, является ли фасилити школой.
// Тег категории из поиска авторитетен; текстовый поиск по имени -
// только fallback при отсутствии категории учебного заведения.
func IsSchoolFacility(category domain.FacilityCategory, name string) bool {
	if category.IsSchoolCategory() {
		return true
	}
	if category != "" && category != domain.CategoryReverse && category != domain.CategoryBuilding {
		// категория известна и это не школа - ключевые слова не переопределяют
		return false
	}

	lower := strings.ToLower(name)
	for _, keyword := range schoolKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
