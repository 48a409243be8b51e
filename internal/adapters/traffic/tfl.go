package traffic

import (
	"context"
	"errors"
	"fmt"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/obs"
	"moving-presurvey-service/internal/platform/upstream"
	"net/url"
	"strings"
)

const (
	TfLBaseURL = "https://api.tfl.gov.uk"

	// Upper bound on disruptions returned per request.
	maxTfLItems = 100
)

type tflDisruption struct {
	Category      string  `json:"category"`
	Severity      string  `json:"severity"`
	StartDateTime string  `json:"startDateTime"`
	EndDateTime   *string `json:"endDateTime"`
	RoadName      string  `json:"roadName"`
	RoadNumber    string  `json:"roadNumber"`
	Location      string  `json:"location"`
	Comments      string  `json:"comments"`
}

// TfL reads London-wide road disruptions. The feed is not spatially
// filtered; callers decide whether a point is covered (see domain.InLondon).
type TfL struct {
	http    *upstream.Client
	appID   string
	appKey  string
	baseURL string
}

func NewTfL(appID, appKey string, opts upstream.Options) (*TfL, error) {
	if strings.TrimSpace(appID) == "" || strings.TrimSpace(appKey) == "" {
		return nil, errors.New("tfl app id and key are required")
	}
	return &TfL{http: upstream.New("tfl", opts), appID: appID, appKey: appKey, baseURL: TfLBaseURL}, nil
}

func (t *TfL) WithBaseURL(u string) *TfL {
	t.baseURL = strings.TrimRight(u, "/")
	return t
}

func firstNonEmpty(vals ...string) *string {
	for _, v := range vals {
		if v != "" {
			return &v
		}
	}
	return nil
}

// Incidents returns disruptions that carry a category or severity, capped at 100.
func (t *TfL) Incidents(
	ctx context.Context,
	_ domain.Coordinates,
	_ float64,
) (_ domain.IncidentReport, err error) {
	defer obs.Time(ctx, "tfl.Incidents")(&err)

	q := url.Values{}
	q.Set("app_id", t.appID)
	q.Set("app_key", t.appKey)

	var decoded []tflDisruption
	if err := t.http.GetJSON(ctx, t.baseURL+"/Road/All/Disruption?"+q.Encode(), nil, &decoded); err != nil {
		return domain.IncidentReport{}, fmt.Errorf("tfl disruptions: %w", err)
	}

	items := make([]domain.Incident, 0, min(len(decoded), maxTfLItems))
	for _, d := range decoded {
		if d.Category == "" && d.Severity == "" {
			continue
		}
		if len(items) == maxTfLItems {
			break
		}

		items = append(items, domain.Incident{
			Category: d.Category,
			Severity: d.Severity,
			Start:    d.StartDateTime,
			End:      d.EndDateTime,
			Road:     firstNonEmpty(d.RoadName, d.RoadNumber),
			Location: firstNonEmpty(d.Location, d.Comments),
		})
	}

	return domain.IncidentReport{Source: domain.SourceTfL, Items: items}, nil
}
