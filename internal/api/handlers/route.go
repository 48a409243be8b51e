package handlers

import (
	"moving-presurvey-service/internal/api/dto"
	"moving-presurvey-service/internal/services"
	"net/http"
	"strings"
)

type RouteHandler struct {
	Service *services.RoutingService
}

// Route estimates travel between two coordinates (origin_lat, origin_lng,
// dest_lat, dest_lng) or between a depot and a customer (origin_id, dest_id).
func (h *RouteHandler) Route(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := services.RouteQuery{
		OriginID: strings.TrimSpace(q.Get("origin_id")),
		DestID:   strings.TrimSpace(q.Get("dest_id")),
		When:     q.Get("when"),
	}

	origin, okOrigin := queryCoordinates(r, "origin_lat", "origin_lng")
	dest, okDest := queryCoordinates(r, "dest_lat", "dest_lng")
	if okOrigin && okDest {
		query.Origin = &origin
		query.Dest = &dest
	}

	est, err := h.Service.Route(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRoute(est))
}
