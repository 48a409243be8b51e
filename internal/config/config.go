// Package config loads service settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"moving-presurvey-service/internal/platform/logging"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultOpenAIModel = "gpt-4o-mini"

type Config struct {
	Port string

	GoogleAPIKey string
	TomTomAPIKey string
	TfLAppID     string
	TfLAppKey    string
	OpenAIAPIKey string
	OpenAIModel  string

	// Optional override for the embedded sample directory.
	SampleDataPath string

	// Live geocode cache backends; Redis wins when both are set.
	DatabaseURL     string
	RedisURL        string
	GeocodeCacheTTL time.Duration

	LeaveNowThresholdMinutes int
	UpstreamTimeout          time.Duration
	CORSAllowedOrigins       []string

	LogLevel  string
	LogFormat string
}

// Credentials reports which third-party integrations are configured.
type Credentials struct {
	OpenAI bool
	Google bool
	TomTom bool
	TfL    bool
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logging.Debug().Msg("no .env file found (using environment variables)")
	}

	return Config{
		Port: Get("PORT", "8080"),

		GoogleAPIKey: strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
		TomTomAPIKey: strings.TrimSpace(os.Getenv("TOMTOM_API_KEY")),
		TfLAppID:     strings.TrimSpace(os.Getenv("TFL_APP_ID")),
		TfLAppKey:    strings.TrimSpace(os.Getenv("TFL_APP_KEY")),
		OpenAIAPIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:  Get("OPENAI_MODEL", DefaultOpenAIModel),

		SampleDataPath: os.Getenv("SAMPLE_DATA_PATH"),

		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		GeocodeCacheTTL: GetDuration("GEOCODE_CACHE_TTL", 7*24*time.Hour),

		LeaveNowThresholdMinutes: GetInt("LEAVE_NOW_THRESHOLD_MINUTES", 90),
		UpstreamTimeout:          GetDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		CORSAllowedOrigins:       GetList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		LogLevel:  Get("LOG_LEVEL", "info"),
		LogFormat: Get("LOG_FORMAT", "json"),
	}
}

func (c Config) Credentials() Credentials {
	return Credentials{
		OpenAI: c.OpenAIAPIKey != "",
		Google: c.GoogleAPIKey != "",
		TomTom: c.TomTomAPIKey != "",
		TfL:    c.TfLAppID != "" && c.TfLAppKey != "",
	}
}

// Get returns the value of key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		logging.Warn().Str("key", key).Str("value", v).Int("default", fallback).Msg("invalid integer in environment, using default")
		return fallback
	}
	return n
}

// GetDuration accepts Go duration syntax ("30s", "168h").
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		logging.Warn().Str("key", key).Str("value", v).Dur("default", fallback).Msg("invalid duration in environment, using default")
		return fallback
	}
	return d
}

// GetList splits a comma-separated value, dropping empty entries.
func GetList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	out := make([]string, 0, 4)
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
