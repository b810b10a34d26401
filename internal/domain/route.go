package domain

// Cabin is the fare class requested for a route.
// Providers encode cabins differently; the services layer owns the
// translation into each provider's code.
type Cabin string

const (
	CabinEconomy  Cabin = "economy"
	CabinPremium  Cabin = "premium"
	CabinBusiness Cabin = "business"
	CabinFirst    Cabin = "first"
)

// Represents a single configured origin/destination search.
// A RouteQuery is immutable and comes from static configuration;
// dates are ISO-8601 calendar dates (YYYY-MM-DD).
type RouteQuery struct {
	Origin      string
	Destination string
	Date        string
	ReturnDate  string
	Passengers  int
	Cabin       Cabin
	Nonstop     bool
}
