package handlers

import (
	"moving-presurvey-service/internal/api/dto"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/services"
	"net/http"
)

type WeatherHandler struct {
	Service *services.WeatherService
}

func (h *WeatherHandler) Weather(w http.ResponseWriter, r *http.Request) {
	at, ok := queryCoordinates(r, "lat", "lng")
	if !ok {
		writeServiceError(w, r, domain.ErrMissingParams)
		return
	}

	rep, err := h.Service.Report(r.Context(), at)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewWeather(rep))
}
