package openai

import (
	"context"
	"io"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/upstream"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdvisor(t *testing.T, h http.HandlerFunc) *Advisor {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	a, err := NewAdvisor("sk-test", "", upstream.Options{MaxAttempts: 1, HTTPClient: srv.Client()})
	require.NoError(t, err)
	return a.WithBaseURL(srv.URL)
}

func TestAdviseSendsJSONModeRequest(t *testing.T) {
	a := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		raw, _ := io.ReadAll(r.Body)
		var req chatRequest
		if assert.NoError(t, json.Unmarshal(raw, &req)) {
			assert.Equal(t, DefaultModel, req.Model)
			assert.Equal(t, 0.2, req.Temperature)
			assert.Equal(t, "json_object", req.ResponseFormat.Type)
			if assert.Len(t, req.Messages, 2) {
				assert.Equal(t, "system", req.Messages[0].Role)
				assert.JSONEq(t, `{"origin":"depot_1"}`, req.Messages[1].Content)
			}
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"risk_level\":\"low\"}"}}]}`))
	})

	out, err := a.Advise(context.Background(), []byte(`{"origin":"depot_1"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"risk_level":"low"}`, string(out))
}

func TestAdviseBadContent(t *testing.T) {
	a := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Sure! Here is some advice."}}]}`))
	})

	_, err := a.Advise(context.Background(), []byte(`{}`))

	var ue *domain.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "openai_bad_json", ue.Code)
	assert.IsType(t, json.RawMessage{}, ue.Raw)
}

func TestAdviseNoChoices(t *testing.T) {
	a := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := a.Advise(context.Background(), []byte(`{}`))

	var ue *domain.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "openai_bad_json", ue.Code)
}

func TestAdviseUpstreamFailure(t *testing.T) {
	a := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	})

	_, err := a.Advise(context.Background(), []byte(`{}`))
	require.Error(t, err)

	var se *upstream.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Code)

	var ue *domain.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "openai_failed", ue.Code)
	assert.Equal(t, "HTTP 401", ue.Hint)
	assert.Nil(t, ue.Raw)
}
