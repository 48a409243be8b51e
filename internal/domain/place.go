package domain

// Represents a resolved location: a sample address or depot, a sandbox
// geocode match, or a live geocoding result.
type Place struct {
	ID    string
	Label string
	Lat   float64
	Lng   float64
}

func (p Place) Coordinates() Coordinates { return Coordinates{Lat: p.Lat, Lng: p.Lng} }

// Customer address from the sample directory.
// Imagery fields are only populated for directory entries.
type Address struct {
	Place
	ImageURL     string
	SatelliteURL string
	TypeGuess    string
}

// Postcode district with a demand index used for pricing and the heatmap.
type Area struct {
	Code        string
	Name        string
	Centroid    Coordinates
	DemandIndex int
}
