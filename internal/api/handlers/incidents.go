package handlers

import (
	"moving-presurvey-service/internal/api/dto"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/services"
	"net/http"
)

type IncidentHandler struct {
	Service *services.IncidentService
}

func (h *IncidentHandler) Incidents(w http.ResponseWriter, r *http.Request) {
	center, ok := queryCoordinates(r, "lat", "lng")
	if !ok {
		writeServiceError(w, r, domain.ErrMissingParams)
		return
	}

	radius, ok := queryFloat(r, "radius_km")
	if !ok || radius <= 0 {
		radius = services.DefaultIncidentRadiusKm
	}

	rep := h.Service.Incidents(r.Context(), center, radius)
	writeJSON(w, r, http.StatusOK, dto.NewIncidents(rep))
}
