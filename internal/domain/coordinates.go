package domain

import "math"

// Immutable geographic coordinates in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as [lng, lat] for GeoJSON compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lng, c.Lat} }

// Axis-aligned bounding box in degrees.
type BBox struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// BBoxAround approximates a square box of half-width km around c.
// One degree of latitude is taken as 111 km; longitude is scaled by cos(lat).
func BBoxAround(c Coordinates, km float64) BBox {
	dLat := km / 111
	dLng := km / (111 * math.Cos(c.Lat*math.Pi/180))

	return BBox{
		Top:    c.Lat + dLat,
		Bottom: c.Lat - dLat,
		Left:   c.Lng - dLng,
		Right:  c.Lng + dLng,
	}
}

// InLondon reports whether c falls inside the rough Greater London box
// served by the TfL road disruption feed.
func InLondon(c Coordinates) bool {
	return c.Lat > 51.28 && c.Lat < 51.7 && c.Lng > -0.5 && c.Lng < 0.3
}
