package dto

import "moving-presurvey-service/internal/domain"

type IntakeRequest struct {
	CustomerAddressID   string `json:"customer_address_id" validate:"max=64"`
	DepotID             string `json:"depot_id" validate:"max=64"`
	CustomerAddressText string `json:"customer_address_text" validate:"max=500"`
	DepotAddressText    string `json:"depot_address_text" validate:"max=500"`
}

type IntakeResponse struct {
	Origin PlaceResponse   `json:"origin"`
	Dest   AddressResponse `json:"dest"`
	Mode   string          `json:"mode"`
}

type LineStringResponse struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type RouteResponse struct {
	DistanceKm float64 `json:"distance_km"`
	ETAMinutes int     `json:"eta_minutes"`
	// Always empty; incidents are served by /api/incidents.
	Incidents     []any               `json:"incidents"`
	LeaveBy       string              `json:"leave_by"`
	Polyline      *LineStringResponse `json:"polyline"`
	Source        string              `json:"source"`
	DepartureUnix int64               `json:"departure_unix"`
}

func NewRoute(est domain.RouteEstimate) RouteResponse {
	res := RouteResponse{
		DistanceKm:    est.DistanceKm,
		ETAMinutes:    est.ETAMinutes,
		Incidents:     []any{},
		LeaveBy:       est.LeaveBy,
		Source:        est.Source,
		DepartureUnix: est.DepartureUnix,
	}
	if est.Polyline != nil {
		res.Polyline = &LineStringResponse{Type: est.Polyline.Type, Coordinates: est.Polyline.Coordinates}
	}
	return res
}

// TomTomIncidentResponse is the item shape for source "tomtom".
type TomTomIncidentResponse struct {
	Type         string  `json:"type"`
	Icon         *int    `json:"icon"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	Start        string  `json:"start"`
	End          *string `json:"end"`
	DelaySeconds int     `json:"delay_s"`
	Polyline     any     `json:"polyline"`
	Road         *string `json:"road"`
}

// DisruptionResponse is the item shape for sources "tfl" and "mock".
type DisruptionResponse struct {
	Category string  `json:"category"`
	Severity string  `json:"severity"`
	Start    string  `json:"start,omitempty"`
	End      *string `json:"end"`
	Road     *string `json:"road"`
	Location *string `json:"location"`
}

type IncidentsResponse struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
	Items  []any  `json:"items"`
}

func NewIncidents(rep domain.IncidentReport) IncidentsResponse {
	items := make([]any, 0, len(rep.Items))
	for _, i := range rep.Items {
		if rep.Source == domain.SourceTomTom {
			items = append(items, TomTomIncidentResponse{
				Type:         i.Type,
				Icon:         i.Icon,
				From:         i.From,
				To:           i.To,
				Start:        i.Start,
				End:          i.End,
				DelaySeconds: i.DelaySeconds,
				Polyline:     i.Polyline,
				Road:         i.Road,
			})
			continue
		}
		items = append(items, DisruptionResponse{
			Category: i.Category,
			Severity: i.Severity,
			Start:    i.Start,
			End:      i.End,
			Road:     i.Road,
			Location: i.Location,
		})
	}
	return IncidentsResponse{Source: rep.Source, Count: len(items), Items: items}
}
