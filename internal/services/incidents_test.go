package services

import (
	"context"
	"errors"
	"moving-presurvey-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	london = domain.Coordinates{Lat: 51.5, Lng: -0.12}
	paris  = domain.Coordinates{Lat: 48.85, Lng: 2.35}
)

func TestIncidentsPrefersTomTom(t *testing.T) {
	tt := &fakeIncidents{rep: domain.IncidentReport{Source: domain.SourceTomTom, Items: []domain.Incident{}}}
	tfl := &fakeIncidents{}
	svc := &IncidentService{TomTom: tt, TfL: tfl}

	rep := svc.Incidents(context.Background(), london, 5)
	assert.Equal(t, domain.SourceTomTom, rep.Source)
	assert.Equal(t, 0, tfl.calls)
}

func TestIncidentsFallsThroughToTfL(t *testing.T) {
	tt := &fakeIncidents{err: errors.New("boom")}
	tfl := &fakeIncidents{rep: domain.IncidentReport{Source: domain.SourceTfL}}
	svc := &IncidentService{TomTom: tt, TfL: tfl}

	rep := svc.Incidents(context.Background(), london, 0)
	assert.Equal(t, domain.SourceTfL, rep.Source)
	assert.Equal(t, 1, tt.calls)
}

func TestIncidentsSkipsTfLOutsideLondon(t *testing.T) {
	tfl := &fakeIncidents{rep: domain.IncidentReport{Source: domain.SourceTfL}}
	svc := &IncidentService{TfL: tfl, Now: clock}

	rep := svc.Incidents(context.Background(), paris, 5)
	assert.Equal(t, domain.SourceMock, rep.Source)
	assert.Equal(t, 0, tfl.calls)
}

func TestIncidentsMockFallback(t *testing.T) {
	tfl := &fakeIncidents{err: errors.New("down")}
	svc := &IncidentService{TfL: tfl, Now: clock}

	rep := svc.Incidents(context.Background(), london, 5)

	assert.Equal(t, domain.SourceMock, rep.Source)
	require.Len(t, rep.Items, 2)

	first := rep.Items[0]
	assert.Equal(t, "Roadworks", first.Category)
	assert.Equal(t, "moderate", first.Severity)
	assert.Equal(t, "2026-03-14T09:30:00.000Z", first.Start)
	assert.Nil(t, first.End)
	assert.Equal(t, "A3212", *first.Road)
	assert.Equal(t, "Temporary lane closure", *first.Location)

	second := rep.Items[1]
	assert.Equal(t, "Congestion", second.Category)
	assert.Equal(t, "Battersea Bridge", *second.Road)
	assert.Equal(t, "Peak-time congestion", *second.Location)
}
