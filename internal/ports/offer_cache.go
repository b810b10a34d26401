package ports

import "context"

// Port: a TTL-bounded cache of provider search results, keyed by a
// deterministic request key. A miss is (nil, false, nil); cache errors
// are reported but callers may treat them as misses.
type OfferCache interface {
	Get(ctx context.Context, key string) ([]Offer, bool, error)
	Put(ctx context.Context, key string, offers []Offer) error
}
