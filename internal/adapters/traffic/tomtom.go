// Package traffic adapts the TomTom Traffic and TfL Unified APIs to
// ports.IncidentProvider.
package traffic

import (
	"context"
	"errors"
	"fmt"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/obs"
	"moving-presurvey-service/internal/platform/upstream"
	"net/url"
	"strconv"
	"strings"
)

const (
	TomTomBaseURL = "https://api.tomtom.com"

	tomtomFields = "{incidents{type,geometry{type,coordinates},properties{iconCategory,startTime,endTime,from,to,delay,roadNumbers}}}"
)

type tomtomResponse struct {
	Incidents []struct {
		Type     string `json:"type"`
		Geometry any    `json:"geometry"`

		Properties struct {
			IconCategory *int     `json:"iconCategory"`
			StartTime    string   `json:"startTime"`
			EndTime      *string  `json:"endTime"`
			From         string   `json:"from"`
			To           string   `json:"to"`
			Delay        *int     `json:"delay"`
			RoadNumbers  []string `json:"roadNumbers"`
		} `json:"properties"`
	} `json:"incidents"`
}

// TomTom queries the Incident Details v5 service over a bounding box.
type TomTom struct {
	http    *upstream.Client
	apiKey  string
	baseURL string
}

func NewTomTom(apiKey string, opts upstream.Options) (*TomTom, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("tomtom api key is empty")
	}
	return &TomTom{http: upstream.New("tomtom", opts), apiKey: apiKey, baseURL: TomTomBaseURL}, nil
}

func (t *TomTom) WithBaseURL(u string) *TomTom {
	t.baseURL = strings.TrimRight(u, "/")
	return t
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func (t *TomTom) Incidents(
	ctx context.Context,
	center domain.Coordinates,
	radiusKm float64,
) (_ domain.IncidentReport, err error) {
	defer obs.Time(ctx, "tomtom.Incidents")(&err)

	box := domain.BBoxAround(center, radiusKm)

	q := url.Values{}
	// minLon,minLat,maxLon,maxLat
	q.Set("bbox", strings.Join([]string{
		formatFloat(box.Left), formatFloat(box.Bottom), formatFloat(box.Right), formatFloat(box.Top),
	}, ","))
	q.Set("fields", tomtomFields)
	q.Set("key", t.apiKey)

	var decoded tomtomResponse
	if err := t.http.GetJSON(ctx, t.baseURL+"/traffic/services/5/incidentDetails?"+q.Encode(), nil, &decoded); err != nil {
		return domain.IncidentReport{}, fmt.Errorf("tomtom incidents: %w", err)
	}

	items := make([]domain.Incident, 0, len(decoded.Incidents))
	for _, i := range decoded.Incidents {
		p := i.Properties

		inc := domain.Incident{
			Type:     i.Type,
			Icon:     p.IconCategory,
			From:     p.From,
			To:       p.To,
			Start:    p.StartTime,
			End:      p.EndTime,
			Polyline: i.Geometry,
		}
		if p.Delay != nil {
			inc.DelaySeconds = *p.Delay
		}
		if len(p.RoadNumbers) > 0 {
			road := p.RoadNumbers[0]
			inc.Road = &road
		}
		items = append(items, inc)
	}

	return domain.IncidentReport{Source: domain.SourceTomTom, Items: items}, nil
}
