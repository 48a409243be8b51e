package handlers

import (
	"moving-presurvey-service/internal/api/dto"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/services"
	"net/http"
)

type IntakeHandler struct {
	Service *services.IntakeService
}

// Intake resolves the job's depot and customer address.
func (h *IntakeHandler) Intake(w http.ResponseWriter, r *http.Request) {
	var req dto.IntakeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, domain.ErrInvalidPayload)
		return
	}

	res, err := h.Service.Resolve(r.Context(), services.IntakeRequest{
		CustomerAddressID:   req.CustomerAddressID,
		DepotID:             req.DepotID,
		CustomerAddressText: req.CustomerAddressText,
		DepotAddressText:    req.DepotAddressText,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.IntakeResponse{
		Origin: dto.NewPlace(res.Origin),
		Dest:   dto.NewAddress(res.Dest),
		Mode:   res.Mode,
	})
}
