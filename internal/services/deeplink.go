package services

import (
	"fmt"
	"net/url"

	"flight-deals-service/internal/domain"
)

var googleCabinCodes = map[domain.Cabin]string{
	domain.CabinEconomy:  "e",
	domain.CabinPremium:  "p",
	domain.CabinBusiness: "c",
	domain.CabinFirst:    "f",
}

// BuildGoogleFlightsURL produces the fallback search-engine URL for a
// route when a provider supplies no deep link. It is pure: identical
// inputs yield byte-identical output. An unrecognized cabin maps to
// economy. returnDate may be empty for a one-way search.
func BuildGoogleFlightsURL(origin, dest, departDate, returnDate string, cabin domain.Cabin, passengers int, nonstop bool) string {
	c, ok := googleCabinCodes[cabin]
	if !ok {
		c = "e"
	}

	path := fmt.Sprintf("%s.%s.%s", origin, dest, departDate)
	if returnDate != "" {
		path = fmt.Sprintf("%s.%s.%s*%s.%s.%s", origin, dest, departDate, dest, origin, returnDate)
	}

	u := fmt.Sprintf("https://www.google.com/flights?hl=en#flt=%s;c:%s;px:%d", url.QueryEscape(path), c, passengers)
	if nonstop {
		u += ";s:0"
	}

	return u
}

// RouteFallbackURL builds the fallback URL from a route's own parameters.
func RouteFallbackURL(route domain.RouteQuery) string {
	return BuildGoogleFlightsURL(
		route.Origin,
		route.Destination,
		route.Date,
		route.ReturnDate,
		route.Cabin,
		route.Passengers,
		route.Nonstop,
	)
}
