package services

import (
	"math"
	"math/rand"
	"moving-presurvey-service/internal/domain"
)

const (
	earthRadiusKm = 6371.0

	// Average urban van speed assumed by the mock estimator.
	mockSpeedKmh = 25.0

	// Minimum dispatch overhead.
	minETAMinutes = 5

	DefaultLeaveNowThresholdMinutes = 90

	LeaveNow         = "Leave now"
	LeaveWithin15Min = "Leave within 15 min"
	PlanTenMinBuffer = "Plan 10 min buffer"
)

// Multiplicative traffic-variance range [Min, Min+Span).
type JitterRange struct {
	Min  float64
	Span float64
}

var (
	// Free-coordinate routing.
	CoordinateJitter = JitterRange{Min: 0.9, Span: 0.4}
	// Directory ID routing.
	DirectoryJitter = JitterRange{Min: 0.85, Span: 0.5}
)

// Draw maps a uniform u in [0, 1) onto the range.
func (j JitterRange) Draw(u float64) float64 {
	return j.Min + u*j.Span
}

// DistanceKm returns the haversine great-circle distance on a spherical
// earth of radius 6371 km. It is exactly 0 for identical points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	a := sinLat*sinLat + math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*sinLng*sinLng
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// EstimateETAMinutes converts a distance to minutes at the mock speed,
// scaled by jitter and floored at the dispatch minimum.
func EstimateETAMinutes(distanceKm float64, jitter float64) int {
	eta := int(math.Round((distanceKm / mockSpeedKmh) * 60 * jitter))
	return max(minETAMinutes, eta)
}

// LeaveByAdvisory recommends departure timing for directory routes.
// The boundary is strict: an ETA equal to the threshold is not "Leave now".
func LeaveByAdvisory(etaMinutes int, thresholdMinutes int) string {
	if etaMinutes < thresholdMinutes {
		return LeaveNow
	}
	return LeaveWithin15Min
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// RouteEstimator produces straight-line travel estimates without a
// directions provider. It holds no mutable state and is safe for concurrent use.
type RouteEstimator struct {
	// Uniform source in [0, 1). Defaults to math/rand.Float64.
	Rand func() float64

	// ETA (minutes) below which directory routes advise leaving now.
	LeaveNowThreshold int
}

func NewRouteEstimator(leaveNowThreshold int) *RouteEstimator {
	if leaveNowThreshold <= 0 {
		leaveNowThreshold = DefaultLeaveNowThresholdMinutes
	}
	return &RouteEstimator{Rand: rand.Float64, LeaveNowThreshold: leaveNowThreshold}
}

func (e *RouteEstimator) draw() float64 {
	if e.Rand == nil {
		return rand.Float64()
	}
	return e.Rand()
}

func (e *RouteEstimator) estimate(origin, dest domain.Coordinates, jitter JitterRange) (float64, int) {
	km := DistanceKm(origin.Lat, origin.Lng, dest.Lat, dest.Lng)
	return km, EstimateETAMinutes(km, jitter.Draw(e.draw()))
}

// EstimateCoordinates estimates a route between two free coordinates.
func (e *RouteEstimator) EstimateCoordinates(origin, dest domain.Coordinates) domain.RouteEstimate {
	km, eta := e.estimate(origin, dest, CoordinateJitter)

	return domain.RouteEstimate{
		DistanceKm: roundTo1(km),
		ETAMinutes: eta,
		LeaveBy:    LeaveWithin15Min,
		Polyline:   domain.StraightLine(origin, dest),
		Source:     domain.SourceSandbox,
	}
}

// EstimateDirectory estimates a route between two directory entries.
func (e *RouteEstimator) EstimateDirectory(origin, dest domain.Coordinates) domain.RouteEstimate {
	km, eta := e.estimate(origin, dest, DirectoryJitter)

	threshold := e.LeaveNowThreshold
	if threshold <= 0 {
		threshold = DefaultLeaveNowThresholdMinutes
	}

	return domain.RouteEstimate{
		DistanceKm: roundTo1(km),
		ETAMinutes: eta,
		LeaveBy:    LeaveByAdvisory(eta, threshold),
		Polyline:   domain.StraightLine(origin, dest),
		Source:     domain.SourceMock,
	}
}
