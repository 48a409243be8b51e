package handlers

import (
	"moving-presurvey-service/internal/api/dto"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/services"
	"net/http"
)

type CalendarHandler struct {
	Service *services.CalendarService
}

// Calendar returns the move job as an .ics attachment.
func (h *CalendarHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	var req dto.CalendarRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, domain.ErrInvalidPayload)
		return
	}

	ics, err := h.Service.BuildICS(services.CalendarEvent{
		Title:           req.Title,
		StartISO:        req.StartISO,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
		Notes:           req.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.CalendarFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(ics)
}
