package outage

import (
	"context"
	"time"

	"prazo/pkg/domain"
)

// Store is the queryable record of electronic-system outages. Read-only from
// the engine's point of view; outages are registered by court notices.
type Store interface {
	// ListBetween returns outages with from <= date <= to affecting the
	// national system or the given state's system.
	ListBetween(ctx context.Context, from, to time.Time, state domain.StateCode) ([]Outage, error)
}
