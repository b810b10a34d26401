package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flight-deals-service/internal/ports"
)

// SQLOfferCache is a SQL-backed TTL cache for provider search results.
// One implementation serves both Postgres and SQLite; the dialect flag
// only switches placeholder and upsert syntax.
type SQLOfferCache struct {
	DB       *sql.DB
	TTL      time.Duration
	Postgres bool

	now func() time.Time
}

func NewSQLOfferCache(db *sql.DB, ttl time.Duration, postgres bool) *SQLOfferCache {
	return &SQLOfferCache{DB: db, TTL: ttl, Postgres: postgres, now: time.Now}
}

func (c *SQLOfferCache) clock() func() time.Time {
	if c.now == nil {
		return time.Now
	}
	return c.now
}

// Get returns the cached offers for key, or a miss when the key is
// absent or past its expiry. Expired rows are left for Put to overwrite.
func (c *SQLOfferCache) Get(ctx context.Context, key string) ([]ports.Offer, bool, error) {
	if c.DB == nil {
		return nil, false, errors.New("offer cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get offer cache: key must not be empty")
	}

	q := `
	SELECT payload, expires_at
	FROM offer_cache
	WHERE cache_key = ?;
	`
	if c.Postgres {
		q = `
	SELECT payload, expires_at
	FROM offer_cache
	WHERE cache_key = $1;
	`
	}

	var payload string
	var expiresAt int64
	err := c.DB.QueryRowContext(ctx, q, key).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get offer cache: query offer_cache table: %w", err)
	}

	if c.clock()().Unix() >= expiresAt {
		return nil, false, nil
	}

	var offers []ports.Offer
	if err := json.Unmarshal([]byte(payload), &offers); err != nil {
		return nil, false, fmt.Errorf("get offer cache: parse payload: %w", err)
	}

	return offers, true, nil
}

// Put stores offers under key with the cache's TTL, replacing any
// existing row.
func (c *SQLOfferCache) Put(ctx context.Context, key string, offers []ports.Offer) error {
	if c.DB == nil {
		return errors.New("offer cache: db is nil")
	}
	if key == "" {
		return errors.New("insert offer cache: key must not be empty")
	}

	payload, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("insert offer cache: marshal payload: %w", err)
	}

	expiresAt := c.clock()().Add(c.TTL).Unix()

	q := `
	INSERT OR REPLACE INTO offer_cache (cache_key, payload, expires_at)
	VALUES (?, ?, ?);
	`
	if c.Postgres {
		q = `
	INSERT INTO offer_cache (cache_key, payload, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		expires_at = EXCLUDED.expires_at;
	`
	}

	if _, err := c.DB.ExecContext(ctx, q, key, string(payload), expiresAt); err != nil {
		return fmt.Errorf("insert offer cache key=%q: %w", key, err)
	}

	return nil
}
