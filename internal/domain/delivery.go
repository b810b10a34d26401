package domain

// DeliveryItem is the loosely-typed snapshot item consumed by the
// delivery stage. The two pipeline stages historically drifted apart,
// so the struct accepts both the GDS-era keys (origin/destination/price)
// and the snapshot keys this pipeline writes (from/to/aud); the
// transform resolves the overlap.
type DeliveryItem struct {
	Airline       string   `json:"airline"`
	OperatedBy    string   `json:"operated_by"`
	FlightNumber  string   `json:"flight_number"`
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	From          string   `json:"from"`
	To            string   `json:"to"`
	DepartureTime string   `json:"departure_time"`
	ArrivalTime   string   `json:"arrival_time"`
	Duration      string   `json:"duration"`
	Price         float64  `json:"price"`
	PriceAUD      *float64 `json:"aud"`
	Currency      string   `json:"currency"`
	CabinClass    string   `json:"cabin_class"`
	Cabin         string   `json:"cabin"`
	Stops         int      `json:"stops"`
	URL           string   `json:"url"`
}

// DeliveryRecord is the payload shape expected by the ingestion webhook.
// It is never persisted; records exist only inside a delivery batch.
type DeliveryRecord struct {
	Airline            string   `json:"airline"`
	FlightNumber       string   `json:"flight_number"`
	OriginAirport      string   `json:"origin_airport"`
	OriginCity         string   `json:"origin_city"`
	DestinationAirport string   `json:"destination_airport"`
	DestinationCity    string   `json:"destination_city"`
	DepartureTime      string   `json:"departure_time"`
	ArrivalTime        string   `json:"arrival_time"`
	Duration           string   `json:"duration"`
	Price              int      `json:"price"`
	Currency           string   `json:"currency"`
	Stops              int      `json:"stops"`
	CabinClass         string   `json:"cabin_class"`
	BookingURL         string   `json:"booking_url"`
	Features           []string `json:"features"`
	Rating             float64  `json:"rating"`
}
