package services

import (
	"context"
	"errors"
	"testing"

	"flight-deals-service/internal/domain"
)

type fakeSink struct {
	batches [][]domain.DeliveryRecord
	err     error
}

func (s *fakeSink) Deliver(_ context.Context, records []domain.DeliveryRecord) (int, error) {
	s.batches = append(s.batches, records)
	if s.err != nil {
		return 0, s.err
	}
	return len(records), nil
}

func TestTransformForDeliveryDropsUnpriced(t *testing.T) {
	if r := TransformForDelivery(domain.DeliveryItem{Origin: "SYD", Destination: "DPS"}); r != nil {
		t.Fatalf("missing price should drop the item, got %+v", r)
	}
	if r := TransformForDelivery(domain.DeliveryItem{Price: 0, Origin: "SYD"}); r != nil {
		t.Fatalf("zero price should drop the item, got %+v", r)
	}
}

func TestTransformForDeliveryDefaults(t *testing.T) {
	r := TransformForDelivery(domain.DeliveryItem{Price: 450, Origin: "SYD", Destination: "DPS"})
	if r == nil {
		t.Fatal("expected a record")
	}

	if r.DepartureTime != "08:00:00" {
		t.Fatalf("departure = %q, want 08:00:00", r.DepartureTime)
	}
	if r.ArrivalTime != "11:30:00" {
		t.Fatalf("arrival = %q, want 11:30:00", r.ArrivalTime)
	}
	if r.Duration != "3h 30m" {
		t.Fatalf("duration = %q, want 3h 30m", r.Duration)
	}
	if r.Airline != "Unknown" {
		t.Fatalf("airline = %q, want Unknown", r.Airline)
	}
	if r.CabinClass != "economy" {
		t.Fatalf("cabin = %q, want economy", r.CabinClass)
	}
	if r.Currency != "AUD" {
		t.Fatalf("currency = %q, want AUD", r.Currency)
	}
	if r.Rating != 4.0 {
		t.Fatalf("rating = %v, want 4.0", r.Rating)
	}
	if r.Features == nil || len(r.Features) != 0 {
		t.Fatalf("features = %v, want empty list", r.Features)
	}
}

func TestTransformForDeliveryClockTimes(t *testing.T) {
	r := TransformForDelivery(domain.DeliveryItem{
		Price:         450,
		Origin:        "SYD",
		Destination:   "DPS",
		DepartureTime: "2025-01-15T10:30:00+10:00",
		ArrivalTime:   "2025-01-15T16:45:00Z",
	})

	if r.DepartureTime != "10:30:00" {
		t.Fatalf("departure = %q, want 10:30:00", r.DepartureTime)
	}
	if r.ArrivalTime != "16:45:00" {
		t.Fatalf("arrival = %q, want 16:45:00", r.ArrivalTime)
	}
}

func TestTransformForDeliveryCityLookup(t *testing.T) {
	r := TransformForDelivery(domain.DeliveryItem{Price: 450, Origin: "syd", Destination: "XXX"})

	if r.OriginAirport != "SYD" || r.OriginCity != "Sydney" {
		t.Fatalf("origin = %s/%s, want SYD/Sydney", r.OriginAirport, r.OriginCity)
	}
	if r.DestinationCity != "XXX" {
		t.Fatalf("unknown code should pass through, got %q", r.DestinationCity)
	}
}

func TestTransformForDeliveryPriceTruncation(t *testing.T) {
	r := TransformForDelivery(domain.DeliveryItem{Price: 450.99, Origin: "SYD", Destination: "DPS"})
	if r.Price != 450 {
		t.Fatalf("price = %d, want 450", r.Price)
	}
}

func TestTransformForDeliverySnapshotKeys(t *testing.T) {
	aud := 380.0
	r := TransformForDelivery(domain.DeliveryItem{
		PriceAUD:   &aud,
		From:       "SYD",
		To:         "DPS",
		OperatedBy: "QF",
		Cabin:      "business",
		URL:        "https://kiwi.example/deep",
	})
	if r == nil {
		t.Fatal("aud-keyed price should count as priced")
	}

	if r.Price != 380 {
		t.Fatalf("price = %d, want 380", r.Price)
	}
	if r.OriginAirport != "SYD" || r.DestinationAirport != "DPS" {
		t.Fatalf("from/to keys not honored: %s-%s", r.OriginAirport, r.DestinationAirport)
	}
	if r.Airline != "QF" {
		t.Fatalf("airline = %q, want QF", r.Airline)
	}
	if r.CabinClass != "business" {
		t.Fatalf("cabin = %q, want business", r.CabinClass)
	}
	if r.BookingURL != "https://kiwi.example/deep" {
		t.Fatalf("booking url = %q", r.BookingURL)
	}
}

func TestHumanDuration(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"PT6H15M", "6h 15m"},
		{"PT45M", "0h 45m"},
		{"PT2H", "2h 0m"},
		{"", "3h 30m"},
		{"PT", "3h 30m"},
		{"P1DT2H", "3h 30m"},
		{"PT2H30M45S", "3h 30m"},
		{"nonsense", "3h 30m"},
	}

	for _, c := range cases {
		if got := humanDuration(c.in); got != c.want {
			t.Fatalf("humanDuration(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTransformAllCollectsNonNil(t *testing.T) {
	items := []domain.DeliveryItem{
		{Price: 450, Origin: "SYD", Destination: "DPS"},
		{Origin: "SYD", Destination: "LAX"},
		{Price: 1200, Origin: "MEL", Destination: "NRT"},
	}

	records := TransformAll(items)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestDeliverSnapshotSendsBatch(t *testing.T) {
	sink := &fakeSink{}
	items := []domain.DeliveryItem{
		{Price: 450, Origin: "SYD", Destination: "DPS"},
		{Origin: "SYD", Destination: "LAX"},
	}

	sent, inserted, err := DeliverSnapshot(context.Background(), items, sink)
	if err != nil {
		t.Fatalf("DeliverSnapshot: %v", err)
	}

	if sent != 1 || inserted != 1 {
		t.Fatalf("sent=%d inserted=%d, want 1/1", sent, inserted)
	}
	if len(sink.batches) != 1 || len(sink.batches[0]) != 1 {
		t.Fatalf("sink saw %v, want one batch of one record", sink.batches)
	}
}

func TestDeliverSnapshotSkipsEmptyBatch(t *testing.T) {
	sink := &fakeSink{}
	items := []domain.DeliveryItem{{Origin: "SYD", Destination: "LAX"}}

	sent, inserted, err := DeliverSnapshot(context.Background(), items, sink)
	if err != nil {
		t.Fatalf("DeliverSnapshot: %v", err)
	}

	if sent != 0 || inserted != 0 {
		t.Fatalf("sent=%d inserted=%d, want 0/0", sent, inserted)
	}
	if len(sink.batches) != 0 {
		t.Fatalf("sink should not be called for an empty batch, saw %d", len(sink.batches))
	}
}

func TestDeliverSnapshotPropagatesSinkError(t *testing.T) {
	sinkErr := errors.New("webhook returned status 503")
	sink := &fakeSink{err: sinkErr}
	items := []domain.DeliveryItem{{Price: 450, Origin: "SYD", Destination: "DPS"}}

	_, _, err := DeliverSnapshot(context.Background(), items, sink)
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected wrapped sink error, got %v", err)
	}
}
