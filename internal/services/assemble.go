package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"flight-deals-service/internal/domain"
	"flight-deals-service/internal/platform/obs"
	"flight-deals-service/internal/ports"
)

// ReduceScope selects where deduplication runs.
type ReduceScope string

const (
	// ReduceScopeRoute reduces each route's Deals independently. This is
	// the default: the dedup key carries no route fields, so reducing
	// per route is the only scope that cannot collapse offers from
	// different routes.
	ReduceScopeRoute ReduceScope = "route"
	// ReduceScopeGlobal runs one reduction over the concatenated Deals
	// of all routes, matching the legacy single-pass behavior. Routes
	// sharing a provider code collapse to one Deal under this scope.
	ReduceScopeGlobal ReduceScope = "global"
)

const (
	linkOnlyProvider     = "Google Flights (link)"
	linkOnlyProviderCode = "GF"
)

// Source pairs a provider adapter with the cabin translation its API
// expects. The translation stays outside the adapter so the adapter
// contract deals only in its own codes.
type Source struct {
	Provider  ports.FlightProvider
	CabinCode func(domain.Cabin) string
}

// Assembler runs the aggregation pipeline: for each configured route it
// queries every source, normalizes the offers, appends the synthetic
// link-only Deal, and reduces to the cheapest offer per provider.
// Provider failures never abort a run; the assembler always produces a
// ResultSet.
type Assembler struct {
	Sources  []Source
	Cache    ports.OfferCache
	Scope    ReduceScope
	Currency string
	Limit    int
	Now      func() time.Time
}

// Run processes routes sequentially in configured order.
func (a *Assembler) Run(ctx context.Context, routes []domain.RouteQuery) *domain.ResultSet {
	defer obs.Time(ctx, "assembler.Run")(nil)

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	generatedAt := now().UTC().Format(time.RFC3339)

	scope := a.Scope
	if scope == "" {
		scope = ReduceScopeRoute
	}

	all := make([]domain.Deal, 0, 16)
	for _, route := range routes {
		routeDeals := make([]domain.Deal, 0, 8)

		for _, src := range a.Sources {
			offers := a.fetch(ctx, src, route)
			routeDeals = append(routeDeals, Normalize(route, offers, generatedAt)...)
		}

		// Every route contributes at least one Deal, even when every
		// provider is unreachable.
		routeDeals = append(routeDeals, domain.Deal{
			From:         route.Origin,
			To:           route.Destination,
			Cabin:        route.Cabin,
			Provider:     linkOnlyProvider,
			ProviderCode: linkOnlyProviderCode,
			URL:          RouteFallbackURL(route),
			GeneratedAt:  generatedAt,
		})

		if scope == ReduceScopeRoute {
			routeDeals = Reduce(routeDeals)
		}

		all = append(all, routeDeals...)
	}

	if scope == ReduceScopeGlobal {
		all = Reduce(all)
	}

	return &domain.ResultSet{
		Meta:  domain.Meta{LastUpdated: generatedAt},
		Items: all,
	}
}

// fetch returns the offers one source contributes for a route. Any
// failure degrades to zero offers: missing credentials disable the
// source silently, and a transport or decode failure earns exactly one
// narrower retry (return leg and nonstop constraint dropped, smaller
// limit) before the source is written off for this route.
func (a *Assembler) fetch(ctx context.Context, src Source, route domain.RouteQuery) []ports.Offer {
	name := src.Provider.Name()
	req := a.buildRequest(src, route)

	key := cacheKey(name, req)
	if a.Cache != nil {
		offers, ok, err := a.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("op=cache.get provider=%s key=%s err=%v", name, key, err)
		} else if ok {
			log.Printf("op=cache.hit provider=%s route=%s-%s offers=%d", name, route.Origin, route.Destination, len(offers))
			return offers
		}
	}

	offers, err := src.Provider.Search(ctx, req)
	if errors.Is(err, ports.ErrNoCredentials) {
		log.Printf("op=search provider=%s route=%s-%s disabled: no credentials", name, route.Origin, route.Destination)
		return nil
	}
	if err != nil {
		log.Printf("op=search provider=%s route=%s-%s err=%v (retrying narrowed)", name, route.Origin, route.Destination, err)

		narrowed := req
		narrowed.ReturnDate = ""
		narrowed.Nonstop = false
		narrowed.Limit = 3

		offers, err = src.Provider.Search(ctx, narrowed)
		if err != nil {
			log.Printf("op=search provider=%s route=%s-%s err=%v (giving up)", name, route.Origin, route.Destination, err)
			return nil
		}
	}

	if a.Cache != nil && len(offers) > 0 {
		if err := a.Cache.Put(ctx, key, offers); err != nil {
			log.Printf("op=cache.put provider=%s key=%s err=%v", name, key, err)
		}
	}

	return offers
}

func (a *Assembler) buildRequest(src Source, route domain.RouteQuery) ports.SearchRequest {
	currency := a.Currency
	if currency == "" {
		currency = "AUD"
	}

	limit := a.Limit
	if limit <= 0 {
		limit = 5
	}

	passengers := route.Passengers
	if passengers < 1 {
		passengers = 1
	}

	return ports.SearchRequest{
		Origin:      route.Origin,
		Destination: route.Destination,
		DepartDate:  route.Date,
		ReturnDate:  route.ReturnDate,
		Passengers:  passengers,
		Cabin:       src.CabinCode(route.Cabin),
		Currency:    currency,
		Nonstop:     route.Nonstop,
		Limit:       limit,
	}
}

func cacheKey(provider string, req ports.SearchRequest) string {
	return fmt.Sprintf("offers:%s:%s:%s:%s:%s:%d:%s:%s:%t:%d",
		provider, req.Origin, req.Destination, req.DepartDate, req.ReturnDate,
		req.Passengers, req.Cabin, req.Currency, req.Nonstop, req.Limit)
}
