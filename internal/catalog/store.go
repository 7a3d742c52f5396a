package catalog

import "context"

// Store is the queryable catalog of deadline-type definitions. Read-only from
// the engine's point of view; maintenance happens out of band.
type Store interface {
	// Get returns the entry for a deadline type ID, or a wrapped
	// sentinel.ErrNotFound when the type is not cataloged.
	Get(ctx context.Context, deadlineTypeID string) (*Entry, error)

	// List returns every entry, ordered by ID.
	List(ctx context.Context) ([]Entry, error)
}
