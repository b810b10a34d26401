package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"flight-deals-service/internal/platform/obs"
	"flight-deals-service/internal/ports"
)

// AmadeusConfig carries the credentials and endpoint for the Amadeus
// flight-offers search API. Credentials come from process configuration;
// an empty pair disables the provider rather than failing it.
type AmadeusConfig struct {
	APIKey    string
	APISecret string
	BaseURL   string
	Timeout   time.Duration
}

// AmadeusProvider implements FlightProvider against the Amadeus
// flight-offers search API using the client-credentials token flow.
// Amadeus supplies no public deep link, so offers carry an empty URL.
type AmadeusProvider struct {
	cfg    AmadeusConfig
	client *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewAmadeusProvider(cfg AmadeusConfig) *AmadeusProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.amadeus.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &AmadeusProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *AmadeusProvider) Name() string {
	return "Amadeus"
}

type amadeusOffersResponse struct {
	Data []struct {
		Price struct {
			GrandTotal string `json:"grandTotal"`
			Total      string `json:"total"`
		} `json:"price"`
		Itineraries []struct {
			Segments []struct {
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
				Operating   struct {
					CarrierCode string `json:"carrierCode"`
				} `json:"operating"`
			} `json:"segments"`
		} `json:"itineraries"`
	} `json:"data"`
}

// Search queries flight-offers search for one route. A malformed price
// or missing itinerary degrades that field to its zero value; the offer
// itself is still returned.
func (p *AmadeusProvider) Search(ctx context.Context, req ports.SearchRequest) (_ []ports.Offer, err error) {
	if p.cfg.APIKey == "" || p.cfg.APISecret == "" {
		return nil, ports.ErrNoCredentials
	}

	defer obs.Time(ctx, "amadeus.Search")(&err)

	token, err := p.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("amadeus search: token: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/v2/shopping/flight-offers", nil)
	if err != nil {
		return nil, fmt.Errorf("amadeus search: create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")

	q := httpReq.URL.Query()
	q.Set("originLocationCode", req.Origin)
	q.Set("destinationLocationCode", req.Destination)
	q.Set("departureDate", req.DepartDate)
	q.Set("adults", strconv.Itoa(req.Passengers))
	q.Set("nonStop", strconv.FormatBool(req.Nonstop))
	q.Set("currencyCode", req.Currency)
	// The API is case-sensitive about travel class values.
	q.Set("travelClass", strings.ToUpper(req.Cabin))
	q.Set("max", strconv.Itoa(req.Limit))
	if req.ReturnDate != "" {
		q.Set("returnDate", req.ReturnDate)
	}
	httpReq.URL.RawQuery = q.Encode()

	resp, err := do(p.client, httpReq)
	if err != nil {
		return nil, fmt.Errorf("amadeus search: %w", err)
	}
	defer resp.Body.Close()

	var decoded amadeusOffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("amadeus search: decode response: %w", err)
	}

	offers := make([]ports.Offer, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		var price *float64
		total := item.Price.GrandTotal
		if total == "" {
			total = item.Price.Total
		}
		if total != "" {
			if v, err := strconv.ParseFloat(total, 64); err == nil {
				price = &v
			}
		}

		var carrier, flightNumber, operatedBy string
		if len(item.Itineraries) > 0 && len(item.Itineraries[0].Segments) > 0 {
			seg := item.Itineraries[0].Segments[0]
			carrier = seg.CarrierCode
			if carrier != "" || seg.Number != "" {
				flightNumber = carrier + seg.Number
			}
			operatedBy = seg.Operating.CarrierCode
			if operatedBy == "" {
				operatedBy = carrier
			}
		}

		offers = append(offers, ports.Offer{
			Provider:     "Amadeus",
			ProviderCode: "AM",
			PriceAUD:     price,
			URL:          "",
			Carrier:      carrier,
			FlightNumber: flightNumber,
			OperatedBy:   operatedBy,
		})
	}

	return offers, nil
}

// token returns a cached access token, fetching a fresh one via the
// client-credentials grant when the cached token is near expiry.
func (p *AmadeusProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.cfg.APIKey)
	form.Set("client_secret", p.cfg.APISecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := do(p.client, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var decoded struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if decoded.AccessToken == "" {
		return "", fmt.Errorf("empty access token in response")
	}

	p.accessToken = decoded.AccessToken
	// Refresh slightly early so an in-flight search never races expiry.
	p.tokenExpiry = time.Now().Add(time.Duration(decoded.ExpiresIn)*time.Second - 30*time.Second)

	return p.accessToken, nil
}
