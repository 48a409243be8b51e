package services

import (
	"context"
	"errors"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/metrics"
	"moving-presurvey-service/internal/ports"
	"strconv"
	"strings"
	"time"
)

// RouteQuery asks for a route either between two coordinates or between a
// depot id and a customer address id. Coordinates win when both are set.
type RouteQuery struct {
	Origin   *domain.Coordinates
	Dest     *domain.Coordinates
	OriginID string
	DestID   string
	// Planned departure: unix millis or an ISO-8601 timestamp. Empty means now.
	When string
}

type RoutingService struct {
	Directory ports.Directory
	// Live directions; nil selects the sandbox estimate for coordinate routes.
	Directions ports.DirectionsProvider
	Estimator  *RouteEstimator
	Now        func() time.Time
}

func (s *RoutingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ParseWhen resolves a departure time. All-digit values are unix
// milliseconds; otherwise RFC 3339 or a plain date is accepted. Anything
// else falls back to now.
func ParseWhen(when string, now time.Time) time.Time {
	when = strings.TrimSpace(when)
	if when == "" {
		return now
	}

	if isDigits(when) {
		ms, err := strconv.ParseInt(when, 10, 64)
		if err != nil {
			return now
		}
		return time.UnixMilli(ms)
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, when); err == nil {
			return t
		}
	}
	return now
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func (s *RoutingService) Route(ctx context.Context, q RouteQuery) (domain.RouteEstimate, error) {
	depart := ParseWhen(q.When, s.now())

	switch {
	case q.Origin != nil && q.Dest != nil:
		return s.routeCoordinates(ctx, *q.Origin, *q.Dest, depart)

	case q.OriginID != "" && q.DestID != "":
		origin, ok := s.Directory.Depot(q.OriginID)
		if !ok {
			return domain.RouteEstimate{}, domain.ErrUnknownOriginDest
		}
		dest, ok := s.Directory.Address(q.DestID)
		if !ok {
			return domain.RouteEstimate{}, domain.ErrUnknownOriginDest
		}

		est := s.Estimator.EstimateDirectory(origin.Coordinates(), dest.Coordinates())
		est.DepartureUnix = depart.Unix()
		return est, nil
	}

	return domain.RouteEstimate{}, domain.ErrMissingParams
}

func (s *RoutingService) routeCoordinates(
	ctx context.Context,
	origin, dest domain.Coordinates,
	depart time.Time,
) (domain.RouteEstimate, error) {
	if s.Directions == nil {
		metrics.Fallbacks.WithLabelValues("route", domain.SourceSandbox).Inc()
		est := s.Estimator.EstimateCoordinates(origin, dest)
		est.DepartureUnix = depart.Unix()
		return est, nil
	}

	est, err := s.Directions.Directions(ctx, origin, dest, depart)
	if err != nil {
		hint := "UPSTREAM_ERROR"
		var se *domain.StatusError
		if errors.As(err, &se) {
			hint = se.Status
		}
		return domain.RouteEstimate{}, &domain.UpstreamError{Code: "directions_failed", Provider: "google", Hint: hint, Err: err}
	}
	est.DepartureUnix = depart.Unix()
	return est, nil
}
