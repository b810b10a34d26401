package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"flight-deals-service/internal/adapters/webhook"
	"flight-deals-service/internal/config"
	"flight-deals-service/internal/services"
)

// main is the transform+deliver entry point. It reads the snapshot the
// scraper wrote, maps each item into the webhook schema, and POSTs the
// batch. A delivery failure exits non-zero but leaves the snapshot
// untouched.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	if strings.TrimSpace(cfg.WebhookURL) == "" {
		log.Fatal("WEBHOOK_URL is required")
	}

	items, err := services.ReadSnapshotItems(cfg.OutputPath)
	if err != nil {
		log.Fatal(err)
	}
	if len(items) == 0 {
		log.Printf("no items in %s; run the scraper first", cfg.OutputPath)
		os.Exit(1)
	}

	sender, err := webhook.NewSender(webhook.Config{
		URL:     cfg.WebhookURL,
		Token:   cfg.WebhookToken,
		Source:  cfg.WebhookSource,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		log.Fatal(err)
	}

	sent, inserted, err := services.DeliverSnapshot(context.Background(), items, sender)
	if err != nil {
		log.Fatalf("deliver flights: %v", err)
	}
	if sent == 0 {
		log.Printf("items=%d deliverable=0; nothing to send", len(items))
		return
	}

	log.Printf("items=%d delivered=%d inserted=%d", len(items), sent, inserted)
}
