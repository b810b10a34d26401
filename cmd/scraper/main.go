package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"flight-deals-service/internal/adapters/cache"
	"flight-deals-service/internal/adapters/providers"
	"flight-deals-service/internal/adapters/repositories"
	"flight-deals-service/internal/config"
	"flight-deals-service/internal/platform/db"
	"flight-deals-service/internal/platform/obs"
	"flight-deals-service/internal/ports"
	"flight-deals-service/internal/services"
)

// main is the pipeline composition root. It wires the provider
// adapters, offer cache and deal archive behind ports, runs one
// aggregation pass over the configured routes, and overwrites the
// JSON snapshot. Provider failures degrade to empty results; only
// setup and snapshot-write failures abort the run.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	routes, err := config.LoadRoutes(cfg.RoutesPath)
	if err != nil {
		log.Fatal(err)
	}

	runID := uuid.NewString()
	ctx := obs.WithRunID(context.Background(), runID)

	database, postgres, err := openDatabase(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := repositories.InitSchema(database); err != nil {
		log.Fatal(err)
	}
	archive := repositories.NewSQLDealArchive(database, postgres)

	// Redis wins when configured; otherwise the cache shares the
	// archive database.
	var offerCache ports.OfferCache
	if cfg.RedisAddr != "" {
		offerCache = cache.NewRedisOfferCache(cfg.RedisAddr, cfg.CacheTTL)
	} else {
		offerCache = cache.NewSQLOfferCache(database, cfg.CacheTTL, postgres)
	}

	amadeus := providers.NewAmadeusProvider(providers.AmadeusConfig{
		APIKey:    cfg.AmadeusAPIKey,
		APISecret: cfg.AmadeusAPISecret,
		BaseURL:   cfg.AmadeusBaseURL,
		Timeout:   cfg.HTTPTimeout,
	})
	kiwi := providers.NewKiwiProvider(providers.KiwiConfig{
		APIKey:   cfg.TequilaAPIKey,
		Endpoint: cfg.TequilaEndpoint,
		Timeout:  cfg.HTTPTimeout,
	})

	assembler := &services.Assembler{
		Sources: []services.Source{
			{Provider: amadeus, CabinCode: services.CabinToAmadeus},
			{Provider: kiwi, CabinCode: services.CabinToKiwi},
		},
		Cache:    offerCache,
		Scope:    services.ReduceScope(cfg.ReduceScope),
		Currency: cfg.Currency,
		Limit:    cfg.MaxResults,
	}

	log.Printf("run_id=%s routes=%d scope=%s", runID, len(routes), cfg.ReduceScope)

	result := assembler.Run(ctx, routes)

	if err := services.WriteSnapshot(cfg.OutputPath, result); err != nil {
		log.Fatal(err)
	}

	// Archive failures are logged but never invalidate the snapshot.
	if err := archive.SaveRun(ctx, runID, result.Meta.LastUpdated, result.Items); err != nil {
		log.Printf("run_id=%s op=archive.SaveRun err=%v", runID, err)
	}

	log.Printf("run_id=%s deals=%d output=%s", runID, len(result.Items), cfg.OutputPath)
}

func openDatabase(cfg config.Config) (*sql.DB, bool, error) {
	if cfg.DatabaseURL != "" {
		database, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, false, err
		}
		return database, true, nil
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, false, err
	}
	return database, false, nil
}
