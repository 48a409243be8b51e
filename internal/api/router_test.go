package api

import (
	"io"
	"moving-presurvey-service/internal/adapters/openai"
	"moving-presurvey-service/internal/adapters/sample"
	"moving-presurvey-service/internal/api/dto"
	"moving-presurvey-service/internal/api/handlers"
	"moving-presurvey-service/internal/platform/upstream"
	"moving-presurvey-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dir, err := sample.Load("")
	require.NoError(t, err)

	now := func() time.Time { return testNow }
	estimator := &services.RouteEstimator{Rand: func() float64 { return 0 }, LeaveNowThreshold: 90}

	return NewRouter(Handlers{
		Health:    &handlers.HealthHandler{Env: dto.EnvStatusResponse{TfL: true}, Now: now},
		Directory: &handlers.DirectoryHandler{Directory: dir, Pricing: &services.PricingService{Directory: dir}},
		Intake:    &handlers.IntakeHandler{Service: &services.IntakeService{Directory: dir}},
		Route: &handlers.RouteHandler{Service: &services.RoutingService{
			Directory: dir, Estimator: estimator, Now: now,
		}},
		Incidents:     &handlers.IncidentHandler{Service: &services.IncidentService{Now: now}},
		Weather:       &handlers.WeatherHandler{Service: &services.WeatherService{Now: now}},
		PropertyImage: &handlers.PropertyImageHandler{Service: &services.PropertyImageService{Directory: dir}},
		Calendar:      &handlers.CalendarHandler{Service: &services.CalendarService{Now: now, NewID: func() string { return "id" }}},
		AI:            &handlers.AIHandler{Service: &services.AdvisorService{}},
	}, []string{"*"})
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") && strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestPingAndEnvStatus(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodGet, "/api/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(testNow.UnixMilli()), body["ts"])

	_, body = do(t, h, http.MethodGet, "/api/env-status", "")
	assert.Equal(t, map[string]any{"openai": false, "google": false, "tomtom": false, "tfl": true}, body)
}

func TestStaticDirectoryEndpoints(t *testing.T) {
	h := newTestRouter(t)

	_, body := do(t, h, http.MethodGet, "/api/sample_addresses", "")
	assert.Len(t, body["depots"], 2)
	assert.Len(t, body["customers"], 3)

	_, body = do(t, h, http.MethodGet, "/api/areas", "")
	areas := body["areas"].([]any)
	require.Len(t, areas, 3)
	assert.Equal(t, []any{51.465, -0.151}, areas[0].(map[string]any)["centroid"])

	_, body = do(t, h, http.MethodGet, "/api/heatmap", "")
	assert.Equal(t, "FeatureCollection", body["type"])
	feat := body["features"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{-0.151, 51.465}, feat["geometry"].(map[string]any)["coordinates"])

	rec, body := do(t, h, http.MethodGet, "/api/geo/postcodes", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "FeatureCollection", body["type"])
}

func TestAreaMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodGet, "/api/metrics?area_code=sw11", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 74.1, body["recommended_rate"])
	assert.Equal(t, -22.0, body["change_pct"])
	assert.Equal(t, "SW11", body["area"].(map[string]any)["code"])

	rec, body = do(t, h, http.MethodGet, "/api/metrics?area_code=XX", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_area", body["error"])
}

func TestSiteMetadataEndpoints(t *testing.T) {
	h := newTestRouter(t)

	_, body := do(t, h, http.MethodGet, "/api/parking?address_id=cust_2", "")
	assert.Equal(t, "CPZ B", body["cpz"])
	assert.NotContains(t, body, "notes")

	_, body = do(t, h, http.MethodGet, "/api/safety?address_id=cust_2", "")
	assert.Contains(t, body, "width_restriction")
	assert.Nil(t, body["width_restriction"])

	_, body = do(t, h, http.MethodGet, "/api/building?address_id=cust_3", "")
	assert.Equal(t, 50.0, body["floors"])

	rec, body := do(t, h, http.MethodGet, "/api/building?address_id=nope", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body)
}

func TestIntakeEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/api/intake", `{"depot_id":"depot_1","customer_address_id":"cust_1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mock_ids", body["mode"])
	assert.Equal(t, "terraced_house", body["dest"].(map[string]any)["type_guess"])
	assert.NotContains(t, body["origin"], "image_url")

	_, body = do(t, h, http.MethodPost, "/api/intake", `{"depot_address_text":"Depot: Battersea, SW11","customer_address_text":"Café Müller"}`)
	assert.Equal(t, "sandbox_text", body["mode"])
	assert.Equal(t, "sandbox_4879", body["origin"].(map[string]any)["id"])
	assert.Equal(t, "sandbox_6267", body["dest"].(map[string]any)["id"])

	rec, body = do(t, h, http.MethodPost, "/api/intake", `{"depot_id":"depot_1","customer_address_id":"cust_x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown origin/dest", body["error"])

	for _, payload := range []string{`{}`, `not json`, ``} {
		rec, body = do(t, h, http.MethodPost, "/api/intake", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_payload", body["error"])
		assert.Equal(t, "Use mock IDs or free-text addresses.", body["hint"])
	}

	rec, body = do(t, h, http.MethodGet, "/api/intake", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", body["error"])
}

func TestRouteEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodGet,
		"/api/route?origin_lat=51.5033635&origin_lng=-0.1276248&dest_lat=51.523767&dest_lng=-0.1585557", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sandbox", body["source"])
	assert.Equal(t, 3.1, body["distance_km"])
	assert.Equal(t, "Leave within 15 min", body["leave_by"])
	assert.Equal(t, []any{}, body["incidents"])
	assert.Equal(t, float64(testNow.Unix()), body["departure_unix"])
	poly := body["polyline"].(map[string]any)
	assert.Equal(t, "LineString", poly["type"])

	_, body = do(t, h, http.MethodGet, "/api/route?origin_id=depot_1&dest_id=cust_1&when=2026-01-01T08:00:00Z", "")
	assert.Equal(t, "mock", body["source"])
	assert.Equal(t, 4.6, body["distance_km"])
	assert.Equal(t, 9.0, body["eta_minutes"])
	assert.Equal(t, "Leave now", body["leave_by"])
	assert.Equal(t, float64(1767254400), body["departure_unix"])

	rec, body = do(t, h, http.MethodGet, "/api/route?origin_id=depot_1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_params", body["error"])

	rec, body = do(t, h, http.MethodGet, "/api/route?origin_id=depot_1&dest_id=depot_2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown origin/dest", body["error"])
}

func TestIncidentsEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodGet, "/api/incidents?lat=51.47&lng=-0.15", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mock", body["source"])
	assert.Equal(t, 2.0, body["count"])
	item := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "A3212", item["road"])
	assert.Contains(t, item, "end")
	assert.Nil(t, item["end"])

	rec, body = do(t, h, http.MethodGet, "/api/incidents?lat=abc&lng=-0.15", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_params", body["error"])
}

func TestPropertyImageEndpoint(t *testing.T) {
	h := newTestRouter(t)

	_, body := do(t, h, http.MethodGet, "/api/property-image?address_id=cust_2", "")
	assert.Equal(t, "mock", body["source"])
	assert.Equal(t, "flat_above_shop", body["type_guess"])

	_, body = do(t, h, http.MethodGet, "/api/property-image?lat=51.5&lng=-0.1", "")
	assert.Equal(t, "sandbox", body["source"])
	assert.Contains(t, body, "type_guess")
	assert.Nil(t, body["type_guess"])

	rec, body := do(t, h, http.MethodGet, "/api/property-image?address_id=zzz", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown address", body["error"])

	rec, body = do(t, h, http.MethodGet, "/api/property-image", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_params", body["error"])
}

func TestWeatherEndpointRequiresCoordinates(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodGet, "/api/weather?lat=51.5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_params", body["error"])
}

func TestCalendarEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, _ := do(t, h, http.MethodPost, "/api/calendar", `{"title":"Move","start_iso":"2026-04-01T10:00:00Z","duration_minutes":60}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="move-job.ics"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "DTEND:20260401T110000Z\r\n")

	rec, body := do(t, h, http.MethodPost, "/api/calendar", `{"start_iso":"garbage"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_start", body["error"])

	rec, body = do(t, h, http.MethodPost, "/api/calendar", `{"duration_minutes":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_payload", body["error"])

	rec, _ = do(t, h, http.MethodGet, "/api/calendar", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAIEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/api/ai/crew", `{"context":{}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, body["crew_size"])

	rec, body = do(t, h, http.MethodPost, "/api/ai/horoscope", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_ai_endpoint", body["error"])

	rec, body = do(t, h, http.MethodGet, "/api/ai/crew", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", body["error"])
}

func TestAIEndpointUpstreamFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		hint   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided: sk-live-XYZ"}}`, "HTTP 401"},
		{"unavailable", http.StatusServiceUnavailable, `{"error":{"message":"overloaded"}}`, "HTTP 503"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			advisor, err := openai.NewAdvisor("sk-test", "", upstream.Options{MaxAttempts: 1, HTTPClient: srv.Client()})
			require.NoError(t, err)

			h := NewRouter(Handlers{
				AI: &handlers.AIHandler{Service: &services.AdvisorService{Advisor: advisor.WithBaseURL(srv.URL)}},
			}, []string{"*"})

			rec, body := do(t, h, http.MethodPost, "/api/ai/quote", `{"context":{"origin":"depot_1"}}`)
			assert.Equal(t, http.StatusBadGateway, rec.Code)
			assert.Equal(t, "openai_failed", body["error"])
			assert.Equal(t, tc.hint, body["hint"])
			assert.NotContains(t, rec.Body.String(), "sk-live-XYZ")
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", body["error"])
}

func TestMetricsExposition(t *testing.T) {
	h := newTestRouter(t)

	rec, _ := do(t, h, http.MethodGet, "/debug/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoverJSON(t *testing.T) {
	h := recoverJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rec, body := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server_error", body["error"])
	assert.NotContains(t, rec.Body.String(), "kaboom")
}
