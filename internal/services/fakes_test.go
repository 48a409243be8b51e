package services

import (
	"context"
	"moving-presurvey-service/internal/adapters/sample"
	"moving-presurvey-service/internal/domain"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testDirectory(t *testing.T) *sample.Directory {
	t.Helper()
	d, err := sample.Load("")
	require.NoError(t, err)
	return d
}

type fakeGeocoder struct {
	mu      sync.Mutex
	results map[string]domain.Place
	errs    map[string]error
	calls   []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (domain.Place, error) {
	f.mu.Lock()
	f.calls = append(f.calls, address)
	f.mu.Unlock()

	if err, ok := f.errs[address]; ok {
		return domain.Place{}, err
	}
	return f.results[address], nil
}

type fakeDirections struct {
	est      domain.RouteEstimate
	err      error
	departAt time.Time
}

func (f *fakeDirections) Directions(_ context.Context, _, _ domain.Coordinates, departAt time.Time) (domain.RouteEstimate, error) {
	f.departAt = departAt
	return f.est, f.err
}

type fakeIncidents struct {
	rep   domain.IncidentReport
	err   error
	calls int
}

func (f *fakeIncidents) Incidents(context.Context, domain.Coordinates, float64) (domain.IncidentReport, error) {
	f.calls++
	return f.rep, f.err
}

type fakeImagery struct{}

func (fakeImagery) StreetViewURL(c domain.Coordinates) string { return "sv" }
func (fakeImagery) SatelliteURL(c domain.Coordinates) string  { return "sat" }

type fakeAdvisor struct {
	got []byte
	out []byte
	err error
}

func (f *fakeAdvisor) Advise(_ context.Context, contextJSON []byte) ([]byte, error) {
	f.got = contextJSON
	return f.out, f.err
}

type fakeWeather struct {
	cur domain.CurrentConditions
	err error
}

func (f fakeWeather) CurrentConditions(context.Context, domain.Coordinates) (domain.CurrentConditions, error) {
	return f.cur, f.err
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }
