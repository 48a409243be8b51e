package ports

import (
	"context"
	"moving-presurvey-service/internal/domain"
	"time"
)

// Contract for retrieving traffic-aware travel distance and duration.
type DirectionsProvider interface {
	Directions(ctx context.Context, origin, dest domain.Coordinates, departAt time.Time) (domain.RouteEstimate, error)
}
