package handlers

import (
	"moving-presurvey-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type AIHandler struct {
	Service *services.AdvisorService
}

// Advise proxies POST /ai/{name}. The response body is the advisor's JSON
// document, passed through unchanged.
func (h *AIHandler) Advise(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(w, r)
	if err != nil {
		payload = nil
	}

	out, err := h.Service.Advise(r.Context(), chi.URLParam(r, "name"), payload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
