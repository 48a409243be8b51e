package handlers

import (
	"errors"
	"fmt"
	"io"
	"math"
	"moving-presurvey-service/internal/api/dto"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/logging"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Upper bound on request bodies.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: code})
}

// writeServiceError maps service errors onto status codes and error bodies.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		logging.Ctx(r.Context()).Warn().Err(err).Str("provider", ue.Provider).Msg("upstream request failed")
		writeJSON(w, r, http.StatusBadGateway, dto.ErrorResponse{Error: ue.Code, Hint: ue.Hint, Raw: ue.Raw})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPayload):
		writeJSON(w, r, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Hint: "Use mock IDs or free-text addresses."})
	case errors.Is(err, domain.ErrMissingParams),
		errors.Is(err, domain.ErrUnknownOriginDest),
		errors.Is(err, domain.ErrUnknownAddress),
		errors.Is(err, domain.ErrInvalidStart):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownArea),
		errors.Is(err, domain.ErrUnknownAIEndpoint):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, r, http.StatusInternalServerError, dto.ErrorResponse{Error: "server_error"})
	}
}

// decodeJSON reads a single JSON object into dst and validates it.
// An empty body decodes as {}.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}

	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("decode body: %w", err)
		}
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validate body: %w", err)
	}
	return nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// queryFloat parses a finite float query parameter.
func queryFloat(r *http.Request, key string) (float64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// queryCoordinates reads a lat/lng pair. ok is false unless both parse.
func queryCoordinates(r *http.Request, latKey, lngKey string) (domain.Coordinates, bool) {
	lat, ok := queryFloat(r, latKey)
	if !ok {
		return domain.Coordinates{}, false
	}
	lng, ok := queryFloat(r, lngKey)
	if !ok {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lat: lat, Lng: lng}, true
}

// NotFound and MethodNotAllowed keep router-level errors in the JSON error shape.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not_found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed")
}
