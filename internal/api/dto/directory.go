package dto

import "moving-presurvey-service/internal/domain"

type PlaceResponse struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// AddressResponse carries imagery only for directory addresses.
type AddressResponse struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	ImageURL     string  `json:"image_url,omitempty"`
	SatelliteURL string  `json:"satellite_url,omitempty"`
	TypeGuess    string  `json:"type_guess,omitempty"`
}

type AreaResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
	// [lat, lng]
	Centroid    [2]float64 `json:"centroid"`
	DemandIndex int        `json:"demand_index"`
}

type SampleAddressesResponse struct {
	Depots    []PlaceResponse   `json:"depots"`
	Customers []AddressResponse `json:"customers"`
}

type AreasResponse struct {
	Areas []AreaResponse `json:"areas"`
}

type AreaMetricsResponse struct {
	Area              AreaResponse `json:"area"`
	CurrentRate       float64      `json:"current_rate"`
	CompetitorAvgRate float64      `json:"competitor_avg_rate"`
	RecommendedRate   float64      `json:"recommended_rate"`
	ChangePct         float64      `json:"change_pct"`
	Rationale         string       `json:"rationale"`
}

type PointGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type HeatmapProperties struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	DemandIndex int    `json:"demand_index"`
}

type HeatmapFeature struct {
	Type       string            `json:"type"`
	Properties HeatmapProperties `json:"properties"`
	Geometry   PointGeometry     `json:"geometry"`
}

type FeatureCollection struct {
	Type     string           `json:"type"`
	Features []HeatmapFeature `json:"features"`
}

type ParkingResponse struct {
	CPZ            string   `json:"cpz"`
	Restrictions   []string `json:"restrictions"`
	RedRoute       bool     `json:"red_route"`
	BusLane        bool     `json:"bus_lane"`
	BayTypes       []string `json:"bay_types"`
	WaiverRequired bool     `json:"waiver_required"`
	Notes          string   `json:"notes,omitempty"`
}

type BuildingResponse struct {
	BuildingType string `json:"building_type"`
	Floors       int    `json:"floors"`
	Lift         bool   `json:"lift"`
	Stairs       bool   `json:"stairs"`
	DoorWidthCm  int    `json:"door_width_cm"`
	StairWidthCm int    `json:"stair_width_cm"`
	RearAccess   bool   `json:"rear_access"`
}

type SafetyResponse struct {
	WidthRestriction *string `json:"width_restriction"`
	OneWay           bool    `json:"one_way"`
	CrimeRisk        string  `json:"crime_risk"`
	Notes            string  `json:"notes,omitempty"`
}

func NewPlace(p domain.Place) PlaceResponse {
	return PlaceResponse{ID: p.ID, Label: p.Label, Lat: p.Lat, Lng: p.Lng}
}

func NewAddress(a domain.Address) AddressResponse {
	return AddressResponse{
		ID:           a.ID,
		Label:        a.Label,
		Lat:          a.Lat,
		Lng:          a.Lng,
		ImageURL:     a.ImageURL,
		SatelliteURL: a.SatelliteURL,
		TypeGuess:    a.TypeGuess,
	}
}

func NewArea(a domain.Area) AreaResponse {
	return AreaResponse{
		Code:        a.Code,
		Name:        a.Name,
		Centroid:    [2]float64{a.Centroid.Lat, a.Centroid.Lng},
		DemandIndex: a.DemandIndex,
	}
}

func NewAreaMetrics(m domain.AreaMetrics) AreaMetricsResponse {
	return AreaMetricsResponse{
		Area:              NewArea(m.Area),
		CurrentRate:       m.CurrentRate,
		CompetitorAvgRate: m.CompetitorAvgRate,
		RecommendedRate:   m.RecommendedRate,
		ChangePct:         m.ChangePct,
		Rationale:         m.Rationale,
	}
}

// NewHeatmap renders area centroids as GeoJSON points in [lng, lat] order.
func NewHeatmap(areas []domain.Area) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]HeatmapFeature, 0, len(areas))}
	for _, a := range areas {
		fc.Features = append(fc.Features, HeatmapFeature{
			Type:       "Feature",
			Properties: HeatmapProperties{Code: a.Code, Name: a.Name, DemandIndex: a.DemandIndex},
			Geometry:   PointGeometry{Type: "Point", Coordinates: a.Centroid.CoordsToList()},
		})
	}
	return fc
}

func NewParking(p domain.ParkingRules) ParkingResponse { return ParkingResponse(p) }

func NewBuilding(b domain.BuildingInfo) BuildingResponse { return BuildingResponse(b) }

func NewSafety(s domain.SafetyInfo) SafetyResponse { return SafetyResponse(s) }
