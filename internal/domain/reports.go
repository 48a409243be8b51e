package domain

// A single traffic incident or roadworks entry.
// TomTom items populate Type/Icon/From/To/DelaySeconds/Polyline;
// TfL and mock items populate Category/Severity/Location.
type Incident struct {
	Type         string
	Icon         *int
	From         string
	To           string
	Category     string
	Severity     string
	Start        string
	End          *string
	DelaySeconds int
	Polyline     any
	Road         *string
	Location     *string
}

type IncidentReport struct {
	Source string
	Items  []Incident
}

// Raw current conditions as returned by a weather provider.
type CurrentConditions struct {
	TemperatureC *float64
	WindKmh      *float64
	WeatherCode  *int
}

type WeatherReport struct {
	Date            string
	Condition       string
	TempC           *float64
	WindKmh         *float64
	PrecipChancePct int
	Source          string
}

type PropertyImage struct {
	ImageURL     string
	SatelliteURL string
	TypeGuess    *string
	Source       string
}

// Pricing recommendation for an area derived from its demand index.
type AreaMetrics struct {
	Area              Area
	CurrentRate       float64
	CompetitorAvgRate float64
	RecommendedRate   float64
	ChangePct         float64
	Rationale         string
}
