package holiday

import (
	"context"

	"prazo/pkg/domain"
)

// Store is the queryable holiday source the calendar oracle reads. Memory,
// PostgreSQL, and the Redis read-through layer all satisfy it, so the oracle
// never knows where its data lives.
//
// ListByYear returns every national holiday of the year plus the state
// holidays for state, when state is non-empty. Implementations must treat an
// unreachable backend as an error (wrapped sentinel.ErrUnavailable), never as
// an empty calendar: an empty answer would make every day a business day and
// shorten deadlines.
type Store interface {
	ListByYear(ctx context.Context, year int, state domain.StateCode) ([]Holiday, error)
}
