package api

import (
	"moving-presurvey-service/internal/api/handlers"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the resource handlers mounted under /api.
type Handlers struct {
	Health        *handlers.HealthHandler
	Directory     *handlers.DirectoryHandler
	Intake        *handlers.IntakeHandler
	Route         *handlers.RouteHandler
	Incidents     *handlers.IncidentHandler
	Weather       *handlers.WeatherHandler
	PropertyImage *handlers.PropertyImageHandler
	Calendar      *handlers.CalendarHandler
	AI            *handlers.AIHandler
}

// NewRouter wires HTTP handlers and middleware and returns an http.Handler.
// Handlers stay unaware of concrete adapters; main builds them.
func NewRouter(h Handlers, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(recoverJSON)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	// Set before Route so the /api subrouter inherits them.
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Handle("/debug/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.Health.Ping)
		r.Get("/env-status", h.Health.EnvStatus)

		r.Get("/sample_addresses", h.Directory.SampleAddresses)
		r.Get("/areas", h.Directory.Areas)
		r.Get("/metrics", h.Directory.Metrics)
		r.Get("/heatmap", h.Directory.Heatmap)
		r.Get("/geo/postcodes", h.Directory.Postcodes)
		r.Get("/parking", h.Directory.Parking)
		r.Get("/building", h.Directory.Building)
		r.Get("/safety", h.Directory.Safety)

		r.Post("/intake", h.Intake.Intake)
		r.Get("/route", h.Route.Route)
		r.Get("/incidents", h.Incidents.Incidents)
		r.Get("/weather", h.Weather.Weather)
		r.Get("/property-image", h.PropertyImage.PropertyImage)
		r.Post("/calendar", h.Calendar.Calendar)
		r.Post("/ai/{name}", h.AI.Advise)
	})

	return r
}
