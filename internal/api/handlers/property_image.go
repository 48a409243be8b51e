package handlers

import (
	"moving-presurvey-service/internal/api/dto"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/services"
	"net/http"
	"strings"
)

type PropertyImageHandler struct {
	Service *services.PropertyImageService
}

// PropertyImage accepts address_id, or lat and lng when no id is given.
func (h *PropertyImageHandler) PropertyImage(w http.ResponseWriter, r *http.Request) {
	if id := strings.TrimSpace(r.URL.Query().Get("address_id")); id != "" {
		img, err := h.Service.ByAddress(id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, dto.NewPropertyImage(img))
		return
	}

	c, ok := queryCoordinates(r, "lat", "lng")
	if !ok {
		writeServiceError(w, r, domain.ErrMissingParams)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewPropertyImage(h.Service.ByCoordinates(c)))
}
