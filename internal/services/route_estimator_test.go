package services

import (
	"math"
	"moving-presurvey-service/internal/domain"
	"testing"
)

func TestDistanceKmIdentity(t *testing.T) {
	points := []domain.Coordinates{
		{Lat: 0, Lng: 0},
		{Lat: 51.5033635, Lng: -0.1276248},
		{Lat: -89.9, Lng: 179.9},
		{Lat: 90, Lng: -180},
	}

	for _, p := range points {
		if d := DistanceKm(p.Lat, p.Lng, p.Lat, p.Lng); d != 0 {
			t.Errorf("DistanceKm(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{51.5033635, -0.1276248, 51.523767, -0.1585557},
		{51.465, -0.151, 51.505455, -0.0235},
		{40.7128, -74.006, -33.8688, 151.2093},
		{0, 179.5, 0, -179.5},
	}

	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1], p[2], p[3])
		ba := DistanceKm(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("asymmetric distance for %v: %v vs %v", p, ab, ba)
		}
	}
}

func TestDistanceKmKnownVector(t *testing.T) {
	// 10 Downing Street -> 221B Baker Street.
	got := DistanceKm(51.5033635, -0.1276248, 51.523767, -0.1585557)
	if math.Abs(got-3.119) > 0.005 {
		t.Fatalf("distance = %v, want ~3.119", got)
	}
}

func TestEstimateETAMinutesFloor(t *testing.T) {
	tests := []struct {
		km     float64
		jitter float64
		want   int
	}{
		{0, 1.3, 5},
		{0.5, 0.9, 5},
		{2.2, 0.85, 5}, // 4.488 rounds to 4, floored to 5
		{2.5, 1.0, 6},
		{25, 1.0, 60},
		{3.119081567694716, 0.9, 7},
	}

	for _, tt := range tests {
		if got := EstimateETAMinutes(tt.km, tt.jitter); got != tt.want {
			t.Errorf("EstimateETAMinutes(%v, %v) = %d, want %d", tt.km, tt.jitter, got, tt.want)
		}
	}
}

func TestLeaveByAdvisoryBoundary(t *testing.T) {
	if got := LeaveByAdvisory(89, 90); got != LeaveNow {
		t.Fatalf("eta 89 = %q, want %q", got, LeaveNow)
	}
	if got := LeaveByAdvisory(90, 90); got != LeaveWithin15Min {
		t.Fatalf("eta 90 = %q, want %q", got, LeaveWithin15Min)
	}
	if got := LeaveByAdvisory(90, 120); got != LeaveNow {
		t.Fatalf("eta 90 with threshold 120 = %q, want %q", got, LeaveNow)
	}
}

func TestJitterRanges(t *testing.T) {
	if got := CoordinateJitter.Draw(0); got != 0.9 {
		t.Fatalf("coordinate min = %v", got)
	}
	if got := CoordinateJitter.Draw(math.Nextafter(1, 0)); got >= 1.3 {
		t.Fatalf("coordinate max = %v, want < 1.3", got)
	}
	if got := DirectoryJitter.Draw(0); got != 0.85 {
		t.Fatalf("directory min = %v", got)
	}
	if got := DirectoryJitter.Draw(math.Nextafter(1, 0)); got >= 1.35 {
		t.Fatalf("directory max = %v, want < 1.35", got)
	}
}

func TestRouteEstimatorCoordinates(t *testing.T) {
	est := &RouteEstimator{Rand: func() float64 { return 0 }, LeaveNowThreshold: 90}

	origin := domain.Coordinates{Lat: 51.5033635, Lng: -0.1276248}
	dest := domain.Coordinates{Lat: 51.523767, Lng: -0.1585557}

	got := est.EstimateCoordinates(origin, dest)

	if got.DistanceKm != 3.1 {
		t.Fatalf("distance_km = %v, want 3.1", got.DistanceKm)
	}
	if got.ETAMinutes != 7 {
		t.Fatalf("eta = %d, want 7", got.ETAMinutes)
	}
	if got.LeaveBy != LeaveWithin15Min {
		t.Fatalf("leave_by = %q", got.LeaveBy)
	}
	if got.Source != domain.SourceSandbox {
		t.Fatalf("source = %q", got.Source)
	}
	if got.Polyline == nil || got.Polyline.Type != "LineString" {
		t.Fatalf("polyline = %+v", got.Polyline)
	}
	wantCoords := [][]float64{{-0.1276248, 51.5033635}, {-0.1585557, 51.523767}}
	for i := range wantCoords {
		if got.Polyline.Coordinates[i][0] != wantCoords[i][0] || got.Polyline.Coordinates[i][1] != wantCoords[i][1] {
			t.Fatalf("polyline[%d] = %v, want %v", i, got.Polyline.Coordinates[i], wantCoords[i])
		}
	}
}

func TestRouteEstimatorDirectory(t *testing.T) {
	depot := domain.Coordinates{Lat: 51.465, Lng: -0.151}
	customer := domain.Coordinates{Lat: 51.5033635, Lng: -0.1276248}

	low := &RouteEstimator{Rand: func() float64 { return 0 }, LeaveNowThreshold: 90}
	got := low.EstimateDirectory(depot, customer)
	if got.DistanceKm != 4.6 || got.ETAMinutes != 9 {
		t.Fatalf("low jitter = %+v, want 4.6 km / 9 min", got)
	}
	if got.LeaveBy != LeaveNow || got.Source != domain.SourceMock {
		t.Fatalf("low jitter leave_by=%q source=%q", got.LeaveBy, got.Source)
	}

	high := &RouteEstimator{Rand: func() float64 { return math.Nextafter(1, 0) }, LeaveNowThreshold: 90}
	if got := high.EstimateDirectory(depot, customer); got.ETAMinutes != 15 {
		t.Fatalf("high jitter eta = %d, want 15", got.ETAMinutes)
	}

	far := domain.Coordinates{Lat: 52.5, Lng: -0.151}
	if got := low.EstimateDirectory(depot, far); got.LeaveBy != LeaveWithin15Min {
		t.Fatalf("long route leave_by = %q, want %q", got.LeaveBy, LeaveWithin15Min)
	}
}

func TestRouteEstimatorJitterStaysInRange(t *testing.T) {
	est := NewRouteEstimator(0)
	origin := domain.Coordinates{Lat: 51.5, Lng: -0.1}
	dest := domain.Coordinates{Lat: 51.5, Lng: 0.6}

	// Raw ETA is ~116.5 min before jitter.
	raw := DistanceKm(origin.Lat, origin.Lng, dest.Lat, dest.Lng) / 25 * 60
	for i := 0; i < 500; i++ {
		got := est.EstimateCoordinates(origin, dest).ETAMinutes
		if float64(got) < math.Round(raw*0.9) || float64(got) > math.Round(raw*1.3) {
			t.Fatalf("eta %d outside jitter range for raw %v", got, raw)
		}
	}

	if est.LeaveNowThreshold != DefaultLeaveNowThresholdMinutes {
		t.Fatalf("default threshold = %d", est.LeaveNowThreshold)
	}
}
