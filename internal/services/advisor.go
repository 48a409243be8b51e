package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/metrics"
	"moving-presurvey-service/internal/ports"

	"github.com/goccy/go-json"
)

//go:embed data/ai_mocks.json
var aiMocksJSON []byte

var aiMocks = mustLoadAIMocks(aiMocksJSON)

func mustLoadAIMocks(raw []byte) map[string]json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		panic(fmt.Sprintf("ai mocks: %v", err))
	}
	return m
}

// AdvisorEndpoints lists the recognised /ai/{name} endpoints.
func AdvisorEndpoints() []string {
	names := make([]string, 0, len(aiMocks))
	for k := range aiMocks {
		names = append(names, k)
	}
	return names
}

type AdvisorService struct {
	// Live advisor; nil serves canned responses.
	Advisor ports.OpsAdvisor
}

// Advise answers the named AI endpoint. Only the "context" member of the
// payload is forwarded; a payload that is not a JSON object counts as empty.
func (s *AdvisorService) Advise(ctx context.Context, name string, payload []byte) ([]byte, error) {
	mock, ok := aiMocks[name]
	if !ok {
		return nil, domain.ErrUnknownAIEndpoint
	}

	if s.Advisor == nil {
		metrics.Fallbacks.WithLabelValues("ai", domain.SourceMock).Inc()
		return mock, nil
	}

	return s.Advisor.Advise(ctx, extractContext(payload))
}

func extractContext(payload []byte) []byte {
	var body struct {
		Context json.RawMessage `json:"context"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return []byte("{}")
	}

	c := bytes.TrimSpace(body.Context)
	if len(c) == 0 || bytes.Equal(c, []byte("null")) {
		return []byte("{}")
	}
	return c
}
