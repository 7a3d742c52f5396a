package holiday

import (
	"context"
	"sync"
	"time"

	"prazo/pkg/domain"
)

// InMemoryStore keeps holidays in a map. Used in tests and as a fallback when
// no database is configured.
type InMemoryStore struct {
	mu       sync.RWMutex
	holidays []Holiday
}

// NewInMemoryStore creates an empty in-memory holiday store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Add records holidays. Dates are normalized to midnight UTC.
func (s *InMemoryStore) Add(holidays ...Holiday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range holidays {
		h.Date = Day(h.Date)
		s.holidays = append(s.holidays, h)
	}
}

// SeedNational installs the fixed-date national holidays for the given years.
// Movable feasts (Carnival, Good Friday, Corpus Christi) vary per year and
// per court and are expected to come from the holiday table, so they are not
// seeded here.
func (s *InMemoryStore) SeedNational(years ...int) {
	type md struct {
		month time.Month
		day   int
		name  string
	}
	fixed := []md{
		{time.January, 1, "Confraternização Universal"},
		{time.April, 21, "Tiradentes"},
		{time.May, 1, "Dia do Trabalho"},
		{time.September, 7, "Independência do Brasil"},
		{time.October, 12, "Nossa Senhora Aparecida"},
		{time.November, 2, "Finados"},
		{time.November, 15, "Proclamação da República"},
		{time.December, 25, "Natal"},
	}
	for _, year := range years {
		for _, f := range fixed {
			s.Add(Holiday{
				Date: time.Date(year, f.month, f.day, 0, 0, 0, 0, time.UTC),
				Name: f.name,
				Type: TypeNational,
			})
		}
	}
}

// ListByYear returns national holidays for the year plus state holidays for
// state, when provided.
func (s *InMemoryStore) ListByYear(ctx context.Context, year int, state domain.StateCode) ([]Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Holiday
	for _, h := range s.holidays {
		if h.Date.Year() != year {
			continue
		}
		if h.Type == TypeNational || (h.Type == TypeState && h.State == state) {
			out = append(out, h)
		}
	}
	return out, nil
}
