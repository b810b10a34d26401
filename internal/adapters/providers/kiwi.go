package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"flight-deals-service/internal/platform/obs"
	"flight-deals-service/internal/ports"
)

// KiwiConfig carries the API key and endpoint for the Kiwi/Tequila
// search API. A missing key disables the provider.
type KiwiConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// KiwiProvider implements FlightProvider against the Tequila search
// API. Tequila reports prices in the requested currency and supplies a
// bookable deep link per itinerary.
type KiwiProvider struct {
	cfg    KiwiConfig
	client *http.Client
}

func NewKiwiProvider(cfg KiwiConfig) *KiwiProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://tequila-api.kiwi.com/v2/search"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &KiwiProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *KiwiProvider) Name() string {
	return "Kiwi"
}

type kiwiSearchResponse struct {
	Data []struct {
		Price    *float64 `json:"price"`
		DeepLink string   `json:"deep_link"`
		Route    []struct {
			Airline  string      `json:"airline"`
			FlightNo json.Number `json:"flight_no"`
		} `json:"route"`
	} `json:"data"`
}

// Search queries Tequila for one route. Dates go over the wire in the
// DD/MM/YYYY form the API requires; nonstop becomes a zero-stopover
// constraint, otherwise up to two stopovers are allowed.
func (p *KiwiProvider) Search(ctx context.Context, req ports.SearchRequest) (_ []ports.Offer, err error) {
	if p.cfg.APIKey == "" {
		return nil, ports.ErrNoCredentials
	}

	defer obs.Time(ctx, "kiwi.Search")(&err)

	depart, err := tequilaDate(req.DepartDate)
	if err != nil {
		return nil, fmt.Errorf("kiwi search: depart date: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("kiwi search: create request: %w", err)
	}
	httpReq.Header.Set("apikey", p.cfg.APIKey)
	httpReq.Header.Set("Accept", "application/json")

	maxStopovers := "2"
	if req.Nonstop {
		maxStopovers = "0"
	}

	q := httpReq.URL.Query()
	q.Set("fly_from", req.Origin)
	q.Set("fly_to", req.Destination)
	q.Set("date_from", depart)
	q.Set("date_to", depart)
	q.Set("adults", strconv.Itoa(req.Passengers))
	q.Set("selected_cabins", req.Cabin)
	q.Set("curr", req.Currency)
	q.Set("limit", strconv.Itoa(req.Limit))
	q.Set("sort", "price")
	q.Set("one_for_city", "1")
	q.Set("max_stopovers", maxStopovers)
	if req.ReturnDate != "" {
		ret, err := tequilaDate(req.ReturnDate)
		if err != nil {
			return nil, fmt.Errorf("kiwi search: return date: %w", err)
		}
		q.Set("return_from", ret)
		q.Set("return_to", ret)
	}
	httpReq.URL.RawQuery = q.Encode()

	resp, err := do(p.client, httpReq)
	if err != nil {
		return nil, fmt.Errorf("kiwi search: %w", err)
	}
	defer resp.Body.Close()

	var decoded kiwiSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("kiwi search: decode response: %w", err)
	}

	offers := make([]ports.Offer, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		var carrier, flightNumber string
		if len(item.Route) > 0 {
			seg := item.Route[0]
			carrier = seg.Airline
			flightNumber = carrier + seg.FlightNo.String()
		}

		offers = append(offers, ports.Offer{
			Provider:     "Kiwi",
			ProviderCode: "KW",
			PriceAUD:     item.Price,
			URL:          item.DeepLink,
			Carrier:      carrier,
			FlightNumber: flightNumber,
			OperatedBy:   carrier,
		})
	}

	return offers, nil
}

// tequilaDate converts YYYY-MM-DD to the DD/MM/YYYY form Tequila expects.
func tequilaDate(iso string) (string, error) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", iso, err)
	}
	return t.Format("02/01/2006"), nil
}
