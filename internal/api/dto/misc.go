package dto

import "moving-presurvey-service/internal/domain"

type PingResponse struct {
	OK bool  `json:"ok"`
	TS int64 `json:"ts"`
}

type EnvStatusResponse struct {
	OpenAI bool `json:"openai"`
	Google bool `json:"google"`
	TomTom bool `json:"tomtom"`
	TfL    bool `json:"tfl"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
	Raw   any    `json:"raw,omitempty"`
}

type WeatherResponse struct {
	Date            string   `json:"date"`
	Condition       string   `json:"condition"`
	TempC           *float64 `json:"temp_c"`
	WindKmh         *float64 `json:"wind_kmh"`
	PrecipChancePct int      `json:"precip_chance_pct"`
	Source          string   `json:"source"`
}

func NewWeather(r domain.WeatherReport) WeatherResponse { return WeatherResponse(r) }

type PropertyImageResponse struct {
	ImageURL     string  `json:"image_url"`
	SatelliteURL string  `json:"satellite_url"`
	TypeGuess    *string `json:"type_guess"`
	Source       string  `json:"source"`
}

func NewPropertyImage(p domain.PropertyImage) PropertyImageResponse { return PropertyImageResponse(p) }

type CalendarRequest struct {
	Title           string `json:"title" validate:"max=200"`
	StartISO        string `json:"start_iso" validate:"max=64"`
	DurationMinutes *int   `json:"duration_minutes" validate:"omitempty,min=0,max=10080"`
	Location        string `json:"location" validate:"max=500"`
	Notes           string `json:"notes" validate:"max=2000"`
}
