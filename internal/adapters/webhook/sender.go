package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flight-deals-service/internal/domain"
)

// Config for the outbound ingestion webhook.
type Config struct {
	URL     string
	Token   string
	Source  string
	Timeout time.Duration
}

// Sender POSTs delivery batches to the ingestion webhook. One batch per
// call; the receiver answers with the number of rows it inserted.
type Sender struct {
	cfg    Config
	client *http.Client
}

func NewSender(cfg Config) (*Sender, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("webhook sender: url is empty")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Sender{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type deliveryPayload struct {
	Flights []domain.DeliveryRecord `json:"flights"`
	Source  string                  `json:"source"`
}

// Deliver sends one batch and returns the receiver's inserted count.
func (s *Sender) Deliver(ctx context.Context, records []domain.DeliveryRecord) (int, error) {
	if len(records) == 0 {
		return 0, errors.New("deliver: empty batch")
	}

	body, err := json.Marshal(deliveryPayload{Flights: records, Source: s.cfg.Source})
	if err != nil {
		return 0, fmt.Errorf("deliver: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("deliver: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("deliver: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded struct {
		Inserted int `json:"inserted"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("deliver: decode response: %w", err)
	}

	return decoded.Inserted, nil
}
