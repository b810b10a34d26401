package services

import "flight-deals-service/internal/domain"

type dedupKey struct {
	provider string
	code     string
}

// Reduce keeps the single cheapest Deal per (provider, provider_code)
// pair. A nil price ranks above any concrete price, so a nil-priced
// Deal survives only when no priced alternative exists for its key;
// among multiple nil-priced Deals the first seen wins. Output keys
// appear in first-seen order. Single O(n) pass.
func Reduce(deals []domain.Deal) []domain.Deal {
	best := make(map[dedupKey]int, len(deals))
	order := make([]dedupKey, 0, len(deals))

	for i, d := range deals {
		k := dedupKey{provider: d.Provider, code: d.ProviderCode}
		j, ok := best[k]
		if !ok {
			best[k] = i
			order = append(order, k)
			continue
		}
		if cheaper(d, deals[j]) {
			best[k] = i
		}
	}

	out := make([]domain.Deal, 0, len(order))
	for _, k := range order {
		out = append(out, deals[best[k]])
	}

	return out
}

func cheaper(a, b domain.Deal) bool {
	if a.PriceAUD == nil {
		return false
	}
	if b.PriceAUD == nil {
		return true
	}
	return *a.PriceAUD < *b.PriceAUD
}
