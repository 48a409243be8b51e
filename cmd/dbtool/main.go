package main

import (
	"context"
	"flag"
	"fmt"
	"moving-presurvey-service/internal/adapters/cache"
	"moving-presurvey-service/internal/config"
	"moving-presurvey-service/internal/platform/db"
	"moving-presurvey-service/internal/platform/logging"
	"strings"
	"time"
)

// dbtool prepares the Postgres geocode cache.
//
//	dbtool            create tables
//	dbtool -prune 720h delete entries older than the given age as well
func main() {
	prune := flag.Duration("prune", 0, "also delete cache entries older than this age (e.g. 720h)")
	flag.Parse()

	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		logging.Fatal().Msg("DATABASE_URL is required")
	}

	if err := run(cfg.DatabaseURL, *prune); err != nil {
		logging.Fatal().Err(err).Msg("dbtool failed")
	}
}

func run(databaseURL string, prune time.Duration) error {
	conn, err := db.Open(databaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logging.Info().Msg("initializing database schema...")
	if err := cache.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization: %w", err)
	}
	logging.Info().Msg("schema ready")

	if prune > 0 {
		n, err := cache.PruneGeocodeCache(ctx, conn, int64(prune.Seconds()))
		if err != nil {
			return fmt.Errorf("prune: %w", err)
		}
		logging.Info().Int64("deleted", n).Msg("geocode cache pruned")
	}
	return nil
}
