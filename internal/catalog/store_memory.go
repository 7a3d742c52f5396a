package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"prazo/pkg/platform/sentinel"
)

// InMemoryStore keeps catalog entries in a map. Used in tests and as the
// default when no database is configured (seeded with the standard entries).
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewInMemoryStore creates an empty in-memory catalog store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string]Entry)}
}

// Put validates and stores an entry, replacing any previous definition.
func (s *InMemoryStore) Put(entry Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return nil
}

// Get returns the entry for a deadline type ID.
func (s *InMemoryStore) Get(ctx context.Context, deadlineTypeID string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[deadlineTypeID]
	if !ok {
		return nil, fmt.Errorf("catalog entry %s: %w", deadlineTypeID, sentinel.ErrNotFound)
	}
	return &entry, nil
}

// List returns every entry ordered by ID.
func (s *InMemoryStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
