package domain

// Deal is the canonical normalized flight offer produced by the pipeline.
// Exactly one Deal survives reduction per (provider, provider_code) pair:
// the one with the lowest price, a nil price ranking below any priced
// alternative. The JSON keys match the published snapshot format.
type Deal struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	Cabin        Cabin    `json:"cabin"`
	Provider     string   `json:"provider"`
	ProviderCode string   `json:"provider_code"`
	FlightNumber string   `json:"flight_number"`
	OperatedBy   string   `json:"operated_by"`
	PriceAUD     *float64 `json:"aud"`
	URL          string   `json:"url"`
	GeneratedAt  string   `json:"generated_at"`
}

// Meta carries run-level information for a snapshot.
type Meta struct {
	LastUpdated string `json:"lastUpdated"`
}

// ResultSet is the full output of one pipeline run. It is rebuilt from
// scratch on every run and fully replaces any prior snapshot.
type ResultSet struct {
	Meta  Meta   `json:"meta"`
	Items []Deal `json:"items"`
}
