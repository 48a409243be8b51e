package services

import (
	"context"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/logging"
	"moving-presurvey-service/internal/platform/metrics"
	"moving-presurvey-service/internal/ports"
	"time"
)

const DefaultIncidentRadiusKm = 5.0

// IncidentService tries TomTom, then TfL for London points, then returns
// canned incidents. It never fails.
type IncidentService struct {
	TomTom ports.IncidentProvider // optional
	TfL    ports.IncidentProvider // optional
	Now    func() time.Time
}

func (s *IncidentService) Incidents(ctx context.Context, center domain.Coordinates, radiusKm float64) domain.IncidentReport {
	if radiusKm <= 0 {
		radiusKm = DefaultIncidentRadiusKm
	}
	log := logging.Ctx(ctx)

	if s.TomTom != nil {
		rep, err := s.TomTom.Incidents(ctx, center, radiusKm)
		if err == nil {
			return rep
		}
		log.Warn().Err(err).Msg("tomtom incidents failed, falling through")
	}

	if s.TfL != nil && domain.InLondon(center) {
		rep, err := s.TfL.Incidents(ctx, center, radiusKm)
		if err == nil {
			return rep
		}
		log.Warn().Err(err).Msg("tfl disruptions failed, falling through")
	}

	metrics.Fallbacks.WithLabelValues("incidents", domain.SourceMock).Inc()

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return mockIncidents(now())
}

func mockIncidents(now time.Time) domain.IncidentReport {
	start := now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	ptr := func(s string) *string { return &s }

	return domain.IncidentReport{
		Source: domain.SourceMock,
		Items: []domain.Incident{
			{Category: "Roadworks", Severity: "moderate", Start: start, Road: ptr("A3212"), Location: ptr("Temporary lane closure")},
			{Category: "Congestion", Severity: "minor", Start: start, Road: ptr("Battersea Bridge"), Location: ptr("Peak-time congestion")},
		},
	}
}
