package services

import (
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/ports"
)

const (
	currentRate       = 95.0
	competitorAvgRate = 88.5

	// Demand index above which a premium is considered sustainable.
	highDemandIndex = 70

	rationaleHighDemand     = "High demand — modest premium sustainable."
	rationaleModerateDemand = "Moderate demand — align closer to competitor rates."
)

type PricingService struct {
	Directory ports.Directory
}

// AreaMetrics scales the current rate by the area's demand index.
func (s *PricingService) AreaMetrics(areaCode string) (domain.AreaMetrics, error) {
	area, ok := s.Directory.Area(areaCode)
	if !ok {
		return domain.AreaMetrics{}, domain.ErrUnknownArea
	}

	recommended := roundTo1(currentRate * (float64(area.DemandIndex) / 100))
	change := roundTo1((recommended - currentRate) / currentRate * 100)

	rationale := rationaleModerateDemand
	if area.DemandIndex > highDemandIndex {
		rationale = rationaleHighDemand
	}

	return domain.AreaMetrics{
		Area:              area,
		CurrentRate:       currentRate,
		CompetitorAvgRate: competitorAvgRate,
		RecommendedRate:   recommended,
		ChangePct:         change,
		Rationale:         rationale,
	}, nil
}
