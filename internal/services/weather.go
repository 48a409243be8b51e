package services

import (
	"context"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/ports"
	"time"
)

type WeatherService struct {
	Provider ports.WeatherProvider
	Now      func() time.Time
}

// Report reshapes current conditions into a day summary. Weather codes 0
// and 1 read as Clear; anything else, including a missing code, as Cloudy.
func (s *WeatherService) Report(ctx context.Context, at domain.Coordinates) (domain.WeatherReport, error) {
	cur, err := s.Provider.CurrentConditions(ctx, at)
	if err != nil {
		return domain.WeatherReport{}, &domain.UpstreamError{Code: "weather_failed", Provider: "openmeteo", Err: err}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	condition, precip := "Cloudy", 50
	if cur.WeatherCode != nil && (*cur.WeatherCode == 0 || *cur.WeatherCode == 1) {
		condition, precip = "Clear", 10
	}

	return domain.WeatherReport{
		Date:            now().UTC().Format(time.DateOnly),
		Condition:       condition,
		TempC:           cur.TemperatureC,
		WindKmh:         cur.WindKmh,
		PrecipChancePct: precip,
		Source:          domain.SourceLive,
	}, nil
}
