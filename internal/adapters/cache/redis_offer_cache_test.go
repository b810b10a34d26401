package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"flight-deals-service/internal/ports"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisOfferCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewRedisOfferCache(mr.Addr(), ttl), mr
}

func TestRedisOfferCacheRoundTrip(t *testing.T) {
	c, _ := newTestRedisCache(t, time.Hour)
	ctx := context.Background()

	price := 450.0
	offers := []ports.Offer{{
		Provider:     "Kiwi",
		ProviderCode: "KW",
		PriceAUD:     &price,
		URL:          "https://kiwi.example/deep",
		Carrier:      "QF",
		FlightNumber: "QF43",
		OperatedBy:   "QF",
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
	if len(got) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(got))
	}
	if got[0].PriceAUD == nil || *got[0].PriceAUD != 450 {
		t.Fatalf("price lost in round trip: %+v", got[0])
	}
	if got[0].URL != "https://kiwi.example/deep" {
		t.Fatalf("url = %q", got[0].URL)
	}
}

func TestRedisOfferCacheMiss(t *testing.T) {
	c, _ := newTestRedisCache(t, time.Hour)

	_, ok, err := c.Get(context.Background(), "offers:absent")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}

func TestRedisOfferCacheExpiry(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	if err := c.Put(ctx, "offers:short", []ports.Offer{{Provider: "Kiwi", ProviderCode: "KW"}}); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "offers:short")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected the entry to expire")
	}
}
