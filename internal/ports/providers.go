package ports

import (
	"context"
	"moving-presurvey-service/internal/domain"
)

// Source of traffic incidents and roadworks around a point.
type IncidentProvider interface {
	Incidents(ctx context.Context, center domain.Coordinates, radiusKm float64) (domain.IncidentReport, error)
}

// Source of current weather conditions at a point.
type WeatherProvider interface {
	CurrentConditions(ctx context.Context, at domain.Coordinates) (domain.CurrentConditions, error)
}

// Generates operational insight as a JSON document from a JSON context.
type OpsAdvisor interface {
	Advise(ctx context.Context, contextJSON []byte) ([]byte, error)
}

// Builds Street View and satellite image URLs for a point.
type ImageryProvider interface {
	StreetViewURL(c domain.Coordinates) string
	SatelliteURL(c domain.Coordinates) string
}
