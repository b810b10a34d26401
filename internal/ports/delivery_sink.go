package ports

import (
	"context"
	"flight-deals-service/internal/domain"
)

// Port: the outbound ingestion webhook. Deliver sends one batch and
// returns the number of records the receiver reports as inserted.
type DeliverySink interface {
	Deliver(ctx context.Context, records []domain.DeliveryRecord) (int, error)
}
