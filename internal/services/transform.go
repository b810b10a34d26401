package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"flight-deals-service/internal/domain"
	"flight-deals-service/internal/ports"
)

// Placeholder values used when a snapshot item carries no timing data.
const (
	defaultDepartureTime = "08:00:00"
	defaultArrivalTime   = "11:30:00"
	defaultDuration      = "3h 30m"
)

// City names for common airports. Codes absent from the table pass
// through unchanged as the city name.
var airportCities = map[string]string{
	"SYD": "Sydney", "MEL": "Melbourne", "BNE": "Brisbane", "PER": "Perth", "ADL": "Adelaide",
	"DPS": "Denpasar", "NRT": "Tokyo", "HND": "Tokyo", "LAX": "Los Angeles", "SFO": "San Francisco",
	"JFK": "New York", "LHR": "London", "CDG": "Paris", "DXB": "Dubai", "SIN": "Singapore",
	"HKG": "Hong Kong", "BKK": "Bangkok", "ICN": "Seoul", "AKL": "Auckland", "CHC": "Christchurch",
}

// CityName resolves an airport code to a city name.
func CityName(code string) string {
	if city, ok := airportCities[code]; ok {
		return city
	}
	return code
}

// TransformForDelivery maps one snapshot item into the webhook schema.
// Returns nil when the item has no usable price, which drops the item
// from the batch without error. Missing timing fields degrade to fixed
// placeholders.
func TransformForDelivery(item domain.DeliveryItem) *domain.DeliveryRecord {
	price := item.Price
	if price == 0 && item.PriceAUD != nil {
		price = *item.PriceAUD
	}
	if price == 0 {
		return nil
	}

	origin := strings.ToUpper(item.Origin)
	if origin == "" {
		origin = strings.ToUpper(item.From)
	}
	destination := strings.ToUpper(item.Destination)
	if destination == "" {
		destination = strings.ToUpper(item.To)
	}

	airline := item.Airline
	if airline == "" {
		airline = item.OperatedBy
	}
	if airline == "" {
		airline = "Unknown"
	}

	cabin := strings.ToLower(item.CabinClass)
	if cabin == "" {
		cabin = strings.ToLower(item.Cabin)
	}
	if cabin == "" {
		cabin = "economy"
	}

	currency := item.Currency
	if currency == "" {
		currency = "AUD"
	}

	return &domain.DeliveryRecord{
		Airline:            airline,
		FlightNumber:       item.FlightNumber,
		OriginAirport:      origin,
		OriginCity:         CityName(origin),
		DestinationAirport: destination,
		DestinationCity:    CityName(destination),
		DepartureTime:      clockTime(item.DepartureTime, defaultDepartureTime),
		ArrivalTime:        clockTime(item.ArrivalTime, defaultArrivalTime),
		Duration:           humanDuration(item.Duration),
		Price:              int(price),
		Currency:           currency,
		Stops:              item.Stops,
		CabinClass:         cabin,
		BookingURL:         item.URL,
		Features:           []string{},
		Rating:             4.0,
	}
}

// TransformAll collects the non-nil transformations of a snapshot's items.
func TransformAll(items []domain.DeliveryItem) []domain.DeliveryRecord {
	records := make([]domain.DeliveryRecord, 0, len(items))
	for _, item := range items {
		if r := TransformForDelivery(item); r != nil {
			records = append(records, *r)
		}
	}
	return records
}

// DeliverSnapshot transforms a snapshot's items and hands the resulting
// batch to the sink. Items without a usable price are dropped; when
// nothing remains the sink is not called and zero counts are returned.
// The first int is the number of records sent, the second the count the
// sink reported as inserted.
func DeliverSnapshot(ctx context.Context, items []domain.DeliveryItem, sink ports.DeliverySink) (int, int, error) {
	records := TransformAll(items)
	if len(records) == 0 {
		return 0, 0, nil
	}
	inserted, err := sink.Deliver(ctx, records)
	if err != nil {
		return len(records), 0, fmt.Errorf("deliver snapshot: %w", err)
	}
	return len(records), inserted, nil
}

// clockTime extracts the clock substring of an ISO-8601 timestamp by
// splitting on the "T" separator and stripping any trailing offset or
// "Z" suffix.
func clockTime(ts, fallback string) string {
	if !strings.Contains(ts, "T") {
		return fallback
	}
	t := strings.SplitN(ts, "T", 2)[1]
	t = strings.SplitN(t, "+", 2)[0]
	t = strings.SplitN(t, "Z", 2)[0]
	return t
}

// humanDuration renders a restricted ISO-8601 duration of the form
// PT<h>H<m>M (hours-only and minutes-only included) as "<h>h <m>m".
// Anything else, including day or second components, is unsupported
// and falls back to the placeholder.
func humanDuration(iso string) string {
	if !strings.HasPrefix(iso, "PT") {
		return defaultDuration
	}
	rest := strings.TrimPrefix(iso, "PT")

	var hours, minutes string
	switch {
	case strings.Contains(rest, "H") && strings.Contains(rest, "M"):
		parts := strings.SplitN(rest, "H", 2)
		hours = parts[0]
		minutes = strings.TrimSuffix(parts[1], "M")
	case strings.Contains(rest, "H"):
		hours = strings.TrimSuffix(rest, "H")
		minutes = "0"
	case strings.Contains(rest, "M"):
		hours = "0"
		minutes = strings.TrimSuffix(rest, "M")
	default:
		return defaultDuration
	}

	if _, err := strconv.Atoi(hours); err != nil {
		return defaultDuration
	}
	if _, err := strconv.Atoi(minutes); err != nil {
		return defaultDuration
	}

	return hours + "h " + minutes + "m"
}
