package main

import (
	"context"
	"errors"
	"fmt"
	"moving-presurvey-service/internal/adapters/cache"
	"moving-presurvey-service/internal/adapters/google"
	"moving-presurvey-service/internal/adapters/openai"
	"moving-presurvey-service/internal/adapters/openmeteo"
	"moving-presurvey-service/internal/adapters/sample"
	"moving-presurvey-service/internal/adapters/traffic"
	"moving-presurvey-service/internal/api"
	"moving-presurvey-service/internal/api/dto"
	"moving-presurvey-service/internal/api/handlers"
	"moving-presurvey-service/internal/config"
	"moving-presurvey-service/internal/platform/db"
	"moving-presurvey-service/internal/platform/logging"
	"moving-presurvey-service/internal/platform/upstream"
	"moving-presurvey-service/internal/ports"
	"moving-presurvey-service/internal/services"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

// run is the application composition root.
// It wires concrete adapters behind ports, falling back to sandbox
// implementations for every integration without credentials.
func run(cfg config.Config) error {
	dir, err := sample.Load(cfg.SampleDataPath)
	if err != nil {
		return fmt.Errorf("load sample data: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	upstreamOpts := upstream.Options{Timeout: cfg.UpstreamTimeout}
	creds := cfg.Credentials()

	var (
		geocoder   ports.Geocoder
		directions ports.DirectionsProvider
		imagery    ports.ImageryProvider
		tomtom     ports.IncidentProvider
		tfl        ports.IncidentProvider
		advisor    ports.OpsAdvisor
	)

	if creds.Google {
		gc, err := google.NewClient(cfg.GoogleAPIKey, upstreamOpts)
		if err != nil {
			return fmt.Errorf("google client: %w", err)
		}

		geoCache, closeCache := openGeocodeCache(ctx, cfg)
		defer closeCache()

		geocoder = google.NewGeocoder(gc, geoCache)
		directions = google.NewDirections(gc)
		imagery = google.NewImagery(gc)
	}

	if creds.TomTom {
		tt, err := traffic.NewTomTom(cfg.TomTomAPIKey, upstreamOpts)
		if err != nil {
			return fmt.Errorf("tomtom client: %w", err)
		}
		tomtom = tt
	}

	if creds.TfL {
		t, err := traffic.NewTfL(cfg.TfLAppID, cfg.TfLAppKey, upstreamOpts)
		if err != nil {
			return fmt.Errorf("tfl client: %w", err)
		}
		tfl = t
	}

	if creds.OpenAI {
		a, err := openai.NewAdvisor(cfg.OpenAIAPIKey, cfg.OpenAIModel, upstreamOpts)
		if err != nil {
			return fmt.Errorf("openai client: %w", err)
		}
		advisor = a
	}

	logging.Info().
		Bool("google", creds.Google).
		Bool("tomtom", creds.TomTom).
		Bool("tfl", creds.TfL).
		Bool("openai", creds.OpenAI).
		Msg("integrations configured")

	router := api.NewRouter(api.Handlers{
		Health: &handlers.HealthHandler{Env: dto.EnvStatusResponse{
			OpenAI: creds.OpenAI, Google: creds.Google, TomTom: creds.TomTom, TfL: creds.TfL,
		}},
		Directory: &handlers.DirectoryHandler{Directory: dir, Pricing: &services.PricingService{Directory: dir}},
		Intake:    &handlers.IntakeHandler{Service: &services.IntakeService{Directory: dir, Geocoder: geocoder}},
		Route: &handlers.RouteHandler{Service: &services.RoutingService{
			Directory:  dir,
			Directions: directions,
			Estimator:  services.NewRouteEstimator(cfg.LeaveNowThresholdMinutes),
		}},
		Incidents:     &handlers.IncidentHandler{Service: &services.IncidentService{TomTom: tomtom, TfL: tfl}},
		Weather:       &handlers.WeatherHandler{Service: &services.WeatherService{Provider: openmeteo.New(upstreamOpts)}},
		PropertyImage: &handlers.PropertyImageHandler{Service: &services.PropertyImageService{Directory: dir, Imagery: imagery}},
		Calendar:      &handlers.CalendarHandler{Service: &services.CalendarService{}},
		AI:            &handlers.AIHandler{Service: &services.AdvisorService{Advisor: advisor}},
	}, cfg.CORSAllowedOrigins)

	// Write timeout covers a slow upstream plus its retries.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("server listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// openGeocodeCache picks Redis, then Postgres, then no cache. A backend that
// cannot be reached is logged and skipped rather than failing startup.
func openGeocodeCache(ctx context.Context, cfg config.Config) (ports.GeocodeCache, func()) {
	noop := func() {}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logging.Warn().Err(err).Msg("invalid REDIS_URL, geocode cache disabled")
			return nil, noop
		}

		client := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			logging.Warn().Err(err).Msg("redis unreachable, geocode cache disabled")
			_ = client.Close()
			return nil, noop
		}

		logging.Info().Dur("ttl", cfg.GeocodeCacheTTL).Msg("geocode cache: redis")
		return cache.NewRedisGeocodeCache(client, cfg.GeocodeCacheTTL), func() { _ = client.Close() }
	}

	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			logging.Warn().Err(err).Msg("postgres unreachable, geocode cache disabled")
			return nil, noop
		}
		if err := cache.InitSchema(ctx, conn); err != nil {
			logging.Warn().Err(err).Msg("geocode cache schema init failed, cache disabled")
			_ = conn.Close()
			return nil, noop
		}

		logging.Info().Msg("geocode cache: postgres")
		return cache.NewSQLGeocodeCache(conn), func() { _ = conn.Close() }
	}

	return nil, noop
}
