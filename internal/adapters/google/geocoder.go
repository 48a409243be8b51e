package google

import (
	"context"
	"errors"
	"fmt"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/logging"
	"moving-presurvey-service/internal/platform/metrics"
	"moving-presurvey-service/internal/platform/obs"
	"moving-presurvey-service/internal/ports"
	"net/url"
	"strings"
)

type geocodeResponse struct {
	apiStatus
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocoder implements ports.Geocoder with the Google Geocoding API and an
// optional persistent cache in front of it.
//
// The geocoder is safe for concurrent use.
type Geocoder struct {
	client *Client
	cache  ports.GeocodeCache
}

// cache may be nil.
func NewGeocoder(client *Client, cache ports.GeocodeCache) *Geocoder {
	return &Geocoder{client: client, cache: cache}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode returns the first Google match for address. A non-OK API status
// is returned as *domain.StatusError.
func (g *Geocoder) Geocode(ctx context.Context, address string) (_ domain.Place, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Place{}, errors.New("geocode: address must be non-empty")
	}

	if p, ok := g.fromCache(ctx, norm); ok {
		return p, nil
	}

	q := url.Values{}
	q.Set("address", norm)
	q.Set("key", g.client.apiKey)

	var decoded geocodeResponse
	if err := g.client.http.GetJSON(ctx, g.client.baseURL+"/geocode/json?"+q.Encode(), nil, &decoded); err != nil {
		return domain.Place{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if decoded.Status != "OK" {
		return domain.Place{}, &domain.StatusError{Status: decoded.Status, Message: decoded.ErrorMessage}
	}
	if len(decoded.Results) == 0 {
		return domain.Place{}, &domain.StatusError{Status: "ZERO_RESULTS"}
	}

	r := decoded.Results[0]
	p := domain.Place{
		Label: r.FormattedAddress,
		Lat:   r.Geometry.Location.Lat,
		Lng:   r.Geometry.Location.Lng,
	}

	g.toCache(ctx, norm, p)
	return p, nil
}

func (g *Geocoder) fromCache(ctx context.Context, key string) (domain.Place, bool) {
	if g.cache == nil {
		return domain.Place{}, false
	}

	cached, err := g.cache.GetMany(ctx, []string{key})
	if err != nil {
		metrics.GeocodeCacheLookups.WithLabelValues("error").Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("geocode cache lookup failed")
		return domain.Place{}, false
	}

	p, ok := cached[key]
	if !ok {
		metrics.GeocodeCacheLookups.WithLabelValues("miss").Inc()
		return domain.Place{}, false
	}
	metrics.GeocodeCacheLookups.WithLabelValues("hit").Inc()
	return p, true
}

// Cache writes are best-effort.
func (g *Geocoder) toCache(ctx context.Context, key string, p domain.Place) {
	if g.cache == nil {
		return
	}
	if err := g.cache.PutMany(ctx, map[string]domain.Place{key: p}); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("address", key).Msg("geocode cache write failed")
	}
}
