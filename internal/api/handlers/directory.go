package handlers

import (
	"moving-presurvey-service/internal/api/dto"
	"moving-presurvey-service/internal/ports"
	"moving-presurvey-service/internal/services"
	"net/http"
)

// DirectoryHandler exposes the static sample data and area pricing.
type DirectoryHandler struct {
	Directory ports.Directory
	Pricing   *services.PricingService
}

func (h *DirectoryHandler) SampleAddresses(w http.ResponseWriter, r *http.Request) {
	depots := h.Directory.Depots()
	addrs := h.Directory.Addresses()

	res := dto.SampleAddressesResponse{
		Depots:    make([]dto.PlaceResponse, 0, len(depots)),
		Customers: make([]dto.AddressResponse, 0, len(addrs)),
	}
	for _, d := range depots {
		res.Depots = append(res.Depots, dto.NewPlace(d))
	}
	for _, a := range addrs {
		res.Customers = append(res.Customers, dto.NewAddress(a))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *DirectoryHandler) Areas(w http.ResponseWriter, r *http.Request) {
	areas := h.Directory.Areas()

	res := dto.AreasResponse{Areas: make([]dto.AreaResponse, 0, len(areas))}
	for _, a := range areas {
		res.Areas = append(res.Areas, dto.NewArea(a))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *DirectoryHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.Pricing.AreaMetrics(r.URL.Query().Get("area_code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewAreaMetrics(m))
}

func (h *DirectoryHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.NewHeatmap(h.Directory.Areas()))
}

// Postcodes streams the stored GeoJSON document unchanged.
func (h *DirectoryHandler) Postcodes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.Directory.Postcodes())
}

// Parking, Building and Safety answer {} for addresses without metadata.
func (h *DirectoryHandler) Parking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Directory.Parking(r.URL.Query().Get("address_id"))
	if !ok {
		writeJSON(w, r, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewParking(p))
}

func (h *DirectoryHandler) Building(w http.ResponseWriter, r *http.Request) {
	b, ok := h.Directory.Building(r.URL.Query().Get("address_id"))
	if !ok {
		writeJSON(w, r, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewBuilding(b))
}

func (h *DirectoryHandler) Safety(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Directory.Safety(r.URL.Query().Get("address_id"))
	if !ok {
		writeJSON(w, r, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewSafety(s))
}
