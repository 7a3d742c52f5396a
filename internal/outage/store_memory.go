package outage

import (
	"context"
	"sync"
	"time"

	"prazo/pkg/domain"
)

// InMemoryStore keeps outage records in a slice. Used in tests and when no
// database is configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	outages []Outage
}

// NewInMemoryStore creates an empty in-memory outage store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Add records outages, normalizing dates to midnight UTC.
func (s *InMemoryStore) Add(outages ...Outage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range outages {
		o.Date = time.Date(o.Date.Year(), o.Date.Month(), o.Date.Day(), 0, 0, 0, 0, time.UTC)
		s.outages = append(s.outages, o)
	}
}

// ListBetween returns outages in [from, to] for the national system or state.
func (s *InMemoryStore) ListBetween(ctx context.Context, from, to time.Time, state domain.StateCode) ([]Outage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Outage
	for _, o := range s.outages {
		if o.Date.Before(from) || o.Date.After(to) {
			continue
		}
		if o.State == "" || o.State == state {
			out = append(out, o)
		}
	}
	return out, nil
}
