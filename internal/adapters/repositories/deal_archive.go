package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flight-deals-service/internal/domain"
)

// Initialize the archive and cache tables.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDealsQuery := `
	CREATE TABLE IF NOT EXISTS deals (
		run_id TEXT NOT NULL,
		generated_at TEXT NOT NULL,
		from_code TEXT NOT NULL,
		to_code TEXT NOT NULL,
		cabin TEXT NOT NULL,
		provider TEXT NOT NULL,
		provider_code TEXT NOT NULL,
		flight_number TEXT NOT NULL,
		operated_by TEXT NOT NULL,
		price_aud REAL,
		url TEXT NOT NULL
	);
	`

	createOfferCacheQuery := `
	CREATE TABLE IF NOT EXISTS offer_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		expires_at BIGINT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_deals_run_id
	ON deals(run_id);
	`

	statements := []string{
		createDealsQuery,
		createOfferCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SQL-backed implementation of the DealArchive port. The same
// implementation serves Postgres and SQLite; only placeholder syntax
// differs.
type SQLDealArchive struct {
	DB       *sql.DB
	Postgres bool
}

func NewSQLDealArchive(db *sql.DB, postgres bool) *SQLDealArchive {
	return &SQLDealArchive{DB: db, Postgres: postgres}
}

// SaveRun appends one pipeline run's Deals under its run ID.
func (a *SQLDealArchive) SaveRun(ctx context.Context, runID, generatedAt string, deals []domain.Deal) error {
	if a.DB == nil {
		return errors.New("deal archive: DB is nil")
	}
	if runID == "" {
		return errors.New("save run: run id must not be empty")
	}
	if len(deals) == 0 {
		return nil
	}

	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO deals (
		run_id, generated_at, from_code, to_code, cabin,
		provider, provider_code, flight_number, operated_by, price_aud, url
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	if a.Postgres {
		query = `
	INSERT INTO deals (
		run_id, generated_at, from_code, to_code, cabin,
		provider, provider_code, flight_number, operated_by, price_aud, url
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("save run: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range deals {
		var price sql.NullFloat64
		if d.PriceAUD != nil {
			price = sql.NullFloat64{Float64: *d.PriceAUD, Valid: true}
		}

		_, err := stmt.ExecContext(ctx,
			runID, generatedAt, d.From, d.To, string(d.Cabin),
			d.Provider, d.ProviderCode, d.FlightNumber, d.OperatedBy, price, d.URL)
		if err != nil {
			return fmt.Errorf("save run: insert deal provider=%s route=%s-%s: %w", d.Provider, d.From, d.To, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit tx: %w", err)
	}

	return nil
}
