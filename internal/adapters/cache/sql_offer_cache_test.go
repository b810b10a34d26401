package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"flight-deals-service/internal/adapters/repositories"
	"flight-deals-service/internal/ports"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSQLOfferCacheRoundTrip(t *testing.T) {
	db := newTestDB(t)
	c := NewSQLOfferCache(db, time.Hour, false)
	ctx := context.Background()

	price := 399.50
	offers := []ports.Offer{{
		Provider:     "Kiwi",
		ProviderCode: "KW",
		PriceAUD:     &price,
		URL:          "https://kiwi.example/deep",
		FlightNumber: "JQ37",
	}}

	if err := c.Put(ctx, "offers:Kiwi:SYD:DPS", offers); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "offers:Kiwi:SYD:DPS")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if len(got) != 1 || got[0].FlightNumber != "JQ37" {
		t.Fatalf("payload lost in round trip: %+v", got)
	}
	if got[0].PriceAUD == nil || *got[0].PriceAUD != 399.50 {
		t.Fatalf("price = %v", got[0].PriceAUD)
	}
}

func TestSQLOfferCacheMiss(t *testing.T) {
	c := NewSQLOfferCache(newTestDB(t), time.Hour, false)

	_, ok, err := c.Get(context.Background(), "offers:absent")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}

func TestSQLOfferCacheExpiry(t *testing.T) {
	c := NewSQLOfferCache(newTestDB(t), time.Minute, false)
	ctx := context.Background()

	if err := c.Put(ctx, "offers:short", []ports.Offer{{Provider: "Kiwi", ProviderCode: "KW"}}); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Advance the cache's clock past the entry's expiry.
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, ok, err := c.Get(ctx, "offers:short")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected the entry to expire")
	}
}

func TestSQLOfferCachePutReplaces(t *testing.T) {
	c := NewSQLOfferCache(newTestDB(t), time.Hour, false)
	ctx := context.Background()

	if err := c.Put(ctx, "offers:k", []ports.Offer{{Provider: "Kiwi", ProviderCode: "KW", FlightNumber: "JQ37"}}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := c.Put(ctx, "offers:k", []ports.Offer{{Provider: "Kiwi", ProviderCode: "KW", FlightNumber: "JQ38"}}); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, ok, err := c.Get(ctx, "offers:k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].FlightNumber != "JQ38" {
		t.Fatalf("expected the second payload, got %+v", got)
	}
}
