package services

import (
	"path/filepath"
	"testing"

	"flight-deals-service/internal/domain"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "live_deals.json")

	price := 450.0
	rs := &domain.ResultSet{
		Meta: domain.Meta{LastUpdated: "2025-08-19T03:00:00Z"},
		Items: []domain.Deal{
			{
				From: "SYD", To: "DPS", Cabin: domain.CabinEconomy,
				Provider: "Kiwi", ProviderCode: "KW",
				FlightNumber: "QF43", OperatedBy: "QF",
				PriceAUD: &price, URL: "https://kiwi.example/deep",
				GeneratedAt: "2025-08-19T03:00:00Z",
			},
			{
				From: "SYD", To: "DPS", Cabin: domain.CabinEconomy,
				Provider: "Google Flights (link)", ProviderCode: "GF",
				URL:         "https://www.google.com/flights?hl=en#flt=SYD.DPS.2025-08-19;c:e;px:1",
				GeneratedAt: "2025-08-19T03:00:00Z",
			},
		},
	}

	if err := WriteSnapshot(path, rs); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	items, err := ReadSnapshotItems(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	first := items[0]
	if first.From != "SYD" || first.To != "DPS" {
		t.Fatalf("route fields lost: %+v", first)
	}
	if first.PriceAUD == nil || *first.PriceAUD != 450 {
		t.Fatalf("price lost: %+v", first.PriceAUD)
	}
	if items[1].PriceAUD != nil {
		t.Fatalf("link-only item should keep nil price, got %v", *items[1].PriceAUD)
	}
}

func TestWriteSnapshotOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live_deals.json")

	old := &domain.ResultSet{
		Meta:  domain.Meta{LastUpdated: "2025-08-18T03:00:00Z"},
		Items: []domain.Deal{{From: "SYD", To: "LAX", Provider: "Kiwi", ProviderCode: "KW"}},
	}
	if err := WriteSnapshot(path, old); err != nil {
		t.Fatalf("first write: %v", err)
	}

	fresh := &domain.ResultSet{
		Meta:  domain.Meta{LastUpdated: "2025-08-19T03:00:00Z"},
		Items: []domain.Deal{{From: "MEL", To: "NRT", Provider: "Amadeus", ProviderCode: "AM"}},
	}
	if err := WriteSnapshot(path, fresh); err != nil {
		t.Fatalf("second write: %v", err)
	}

	items, err := ReadSnapshotItems(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if len(items) != 1 || items[0].From != "MEL" {
		t.Fatalf("snapshot not fully replaced: %+v", items)
	}
}
