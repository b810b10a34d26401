package ports

import (
	"context"
	"errors"
)

// ErrNoCredentials signals that a provider has no API credentials
// configured. Callers treat the provider as disabled, not as failed.
var ErrNoCredentials = errors.New("provider credentials missing")

// One search request against a single provider. Cabin carries the
// provider-specific code (the caller owns the translation) and dates
// are ISO-8601 calendar dates.
type SearchRequest struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	Passengers  int
	Cabin       string
	Currency    string
	Nonstop     bool
	Limit       int
}

// Offer is one provider result before route fields are attached.
// A nil price means the provider reported no usable total.
type Offer struct {
	Provider     string   `json:"provider"`
	ProviderCode string   `json:"provider_code"`
	PriceAUD     *float64 `json:"aud"`
	URL          string   `json:"url"`
	Carrier      string   `json:"carrier"`
	FlightNumber string   `json:"flight_number"`
	OperatedBy   string   `json:"operated_by"`
}

// Contract for one external flight-search API.
type FlightProvider interface {
	Name() string
	// Return raw offers for the request. Implementations never retry;
	// transport and decode failures surface as errors for the caller
	// to coalesce.
	Search(ctx context.Context, req SearchRequest) ([]Offer, error)
}
