package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"flight-deals-service/internal/ports"
)

// RedisOfferCache is a Redis-backed TTL cache for provider search
// results. Offers are stored as a JSON array; expiry is delegated to
// Redis key TTLs.
type RedisOfferCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisOfferCache(addr string, ttl time.Duration) *RedisOfferCache {
	return &RedisOfferCache{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		TTL:    ttl,
	}
}

func (c *RedisOfferCache) Get(ctx context.Context, key string) ([]ports.Offer, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("offer cache: redis client is nil")
	}

	data, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get offer cache key=%q: %w", key, err)
	}

	var offers []ports.Offer
	if err := json.Unmarshal([]byte(data), &offers); err != nil {
		return nil, false, fmt.Errorf("get offer cache: parse payload: %w", err)
	}

	return offers, true, nil
}

func (c *RedisOfferCache) Put(ctx context.Context, key string, offers []ports.Offer) error {
	if c.Client == nil {
		return errors.New("offer cache: redis client is nil")
	}

	payload, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("insert offer cache: marshal payload: %w", err)
	}

	if err := c.Client.Set(ctx, key, payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert offer cache key=%q: %w", key, err)
	}

	return nil
}
