package usecase

import (
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/pkg/utils"
)

// containmentScore - оценка кандидата, чей bounding box содержит точку
// запроса. Практически ноль: попадание внутрь контура всегда перевешивает
// любую близость не содержащего кандидата.
const containmentScore = 0.001

// BestMatch выбирает лучшего кандидата для точки запроса.
// Оценка кандидата: containmentScore при попадании точки в его extent,
// иначе расстояние до точки в км. Побеждает минимальная оценка; при
// равенстве - первый увиденный (строгое "<" в бегущем минимуме).
// У каждого кандидата попутно заполняется Distance.
func BestMatch(lat, lon float64, candidates []*domain.FacilityCandidate) *domain.FacilityCandidate {
	var best *domain.FacilityCandidate
	var bestScore float64

	for _, candidate := range candidates {
		candidate.Distance = utils.HaversineDistance(lat, lon, candidate.Lat, candidate.Lon)

		score := candidate.Distance
		if candidate.Extent != nil && candidate.Extent.Contains(lat, lon) {
			score = containmentScore
		}

		if best == nil || score < bestScore {
			best = candidate
			bestScore = score
		}
	}

	return best
}
