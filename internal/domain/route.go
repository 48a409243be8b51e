package domain

const (
	SourceSandbox = "sandbox"
	SourceMock    = "mock"
	SourceLive    = "live"
	SourceTomTom  = "tomtom"
	SourceTfL     = "tfl"
)

// GeoJSON LineString geometry. Coordinates are [lng, lat] pairs.
type LineString struct {
	Type        string
	Coordinates [][]float64
}

// Straight two-point path from origin to destination.
func StraightLine(origin, dest Coordinates) *LineString {
	return &LineString{
		Type:        "LineString",
		Coordinates: [][]float64{origin.CoordsToList(), dest.CoordsToList()},
	}
}

// Represents a travel estimate between two points.
// It is computed once per request and never mutated afterwards.
// Polyline is nil when the estimate came from a live directions provider.
type RouteEstimate struct {
	DistanceKm    float64
	ETAMinutes    int
	LeaveBy       string
	Polyline      *LineString
	Source        string
	DepartureUnix int64
}
