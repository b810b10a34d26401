package services

import (
	"flight-deals-service/internal/domain"
	"flight-deals-service/internal/ports"
)

// CabinToAmadeus translates the route cabin into the Amadeus travel
// class word. The upstream API is case-sensitive, so values are the
// exact uppercase forms it accepts. Unrecognized cabins fall back to
// economy.
func CabinToAmadeus(cabin domain.Cabin) string {
	switch cabin {
	case domain.CabinPremium:
		return "PREMIUM_ECONOMY"
	case domain.CabinBusiness:
		return "BUSINESS"
	case domain.CabinFirst:
		return "FIRST"
	default:
		return "ECONOMY"
	}
}

// CabinToKiwi translates the route cabin into the Tequila one-letter
// cabin code. Unrecognized cabins fall back to economy.
func CabinToKiwi(cabin domain.Cabin) string {
	switch cabin {
	case domain.CabinPremium:
		return "W"
	case domain.CabinBusiness:
		return "C"
	case domain.CabinFirst:
		return "F"
	default:
		return "M"
	}
}

// Normalize maps one adapter's raw offers into canonical Deals for a
// route. Origin, destination and cabin are copied from the route; an
// offer without its own deep link gets the deterministic fallback URL.
// Missing offer fields degrade to empty values, never to an error.
func Normalize(route domain.RouteQuery, offers []ports.Offer, generatedAt string) []domain.Deal {
	deals := make([]domain.Deal, 0, len(offers))
	for _, o := range offers {
		u := o.URL
		if u == "" {
			u = RouteFallbackURL(route)
		}

		operatedBy := o.OperatedBy
		if operatedBy == "" {
			operatedBy = o.Carrier
		}

		price := o.PriceAUD
		if price != nil && *price < 0 {
			price = nil
		}

		deals = append(deals, domain.Deal{
			From:         route.Origin,
			To:           route.Destination,
			Cabin:        route.Cabin,
			Provider:     o.Provider,
			ProviderCode: o.ProviderCode,
			FlightNumber: o.FlightNumber,
			OperatedBy:   operatedBy,
			PriceAUD:     price,
			URL:          u,
			GeneratedAt:  generatedAt,
		})
	}

	return deals
}
