package google

import (
	"context"
	"fmt"
	"math"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/obs"
	"net/url"
	"strconv"
	"time"
)

const leaveByBuffer = "Plan 10 min buffer"

type valueField struct {
	Value float64 `json:"value"`
}

type directionsResponse struct {
	apiStatus
	Routes []struct {
		Legs []struct {
			Distance          valueField  `json:"distance"`
			Duration          valueField  `json:"duration"`
			DurationInTraffic *valueField `json:"duration_in_traffic"`
		} `json:"legs"`
	} `json:"routes"`
}

// Directions implements ports.DirectionsProvider with the Google Directions API.
type Directions struct {
	client *Client
}

func NewDirections(client *Client) *Directions {
	return &Directions{client: client}
}

func formatLatLng(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// Directions returns a traffic-aware estimate for departing at departAt.
// The ETA prefers duration_in_traffic when Google provides it.
func (d *Directions) Directions(
	ctx context.Context,
	origin, dest domain.Coordinates,
	departAt time.Time,
) (_ domain.RouteEstimate, err error) {
	defer obs.Time(ctx, "google.Directions")(&err)

	q := url.Values{}
	q.Set("origin", formatLatLng(origin))
	q.Set("destination", formatLatLng(dest))
	q.Set("departure_time", strconv.FormatInt(departAt.Unix(), 10))
	q.Set("traffic_model", "best_guess")
	q.Set("key", d.client.apiKey)

	var decoded directionsResponse
	if err := d.client.http.GetJSON(ctx, d.client.baseURL+"/directions/json?"+q.Encode(), nil, &decoded); err != nil {
		return domain.RouteEstimate{}, fmt.Errorf("directions: %w", err)
	}

	if decoded.Status != "OK" {
		return domain.RouteEstimate{}, &domain.StatusError{Status: decoded.Status, Message: decoded.ErrorMessage}
	}
	if len(decoded.Routes) == 0 || len(decoded.Routes[0].Legs) == 0 {
		return domain.RouteEstimate{}, &domain.StatusError{Status: "ZERO_RESULTS"}
	}

	leg := decoded.Routes[0].Legs[0]
	seconds := leg.Duration.Value
	if leg.DurationInTraffic != nil {
		seconds = leg.DurationInTraffic.Value
	}

	return domain.RouteEstimate{
		DistanceKm:    math.Round(leg.Distance.Value/100) / 10,
		ETAMinutes:    int(math.Round(seconds / 60)),
		LeaveBy:       leaveByBuffer,
		Source:        domain.SourceLive,
		DepartureUnix: departAt.Unix(),
	}, nil
}
