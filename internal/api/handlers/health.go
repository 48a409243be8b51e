package handlers

import (
	"moving-presurvey-service/internal/api/dto"
	"net/http"
	"time"
)

type HealthHandler struct {
	Env dto.EnvStatusResponse
	Now func() time.Time
}

// Ping provides a minimal liveness check endpoint.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	writeJSON(w, r, http.StatusOK, dto.PingResponse{OK: true, TS: now().UnixMilli()})
}

// EnvStatus reports which integrations have credentials, never the credentials themselves.
func (h *HealthHandler) EnvStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.Env)
}
