package ports

import (
	"context"
	"flight-deals-service/internal/domain"
)

// Port: a boundary for persisting the Deals of one pipeline run for
// later analysis. The JSON snapshot remains the canonical output; the
// archive is additive history keyed by run ID.
type DealArchive interface {
	SaveRun(ctx context.Context, runID, generatedAt string, deals []domain.Deal) error
}
