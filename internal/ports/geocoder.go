package ports

import (
	"context"
	"moving-presurvey-service/internal/domain"
)

// Contract for resolving a free-text address to a place.
type Geocoder interface {
	// Return the best match for address. The returned place has no ID;
	// callers assign one that fits their context.
	Geocode(ctx context.Context, address string) (domain.Place, error)
}

// Port: a boundary for caching live geocoding results keyed by normalized address.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Place, error)
	PutMany(ctx context.Context, results map[string]domain.Place) error
}
