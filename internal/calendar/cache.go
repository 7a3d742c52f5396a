package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"prazo/internal/calendar/metrics"
	"prazo/internal/holiday"
	"prazo/pkg/domain"
)

// snapshot is one immutable `(year, state)` holiday set. Readers share it
// without locking once it is published; refreshes build a new snapshot and
// swap the map entry, they never mutate one in place.
type snapshot struct {
	dates     map[time.Time]holiday.Holiday
	fetchedAt time.Time
}

func (s *snapshot) isHoliday(d time.Time) bool {
	_, ok := s.dates[d]
	return ok
}

// snapshotCache caches holiday snapshots per `(year, state)` with a bounded
// TTL so holiday-table edits become visible without a restart. Concurrent
// fills for the same key are collapsed through singleflight, and the store
// fetch runs outside the lock so a miss on one key never blocks readers of
// another.
type snapshotCache struct {
	store   holiday.Store
	ttl     time.Duration
	metrics *metrics.Metrics

	mu      sync.RWMutex
	entries map[string]*snapshot
	group   singleflight.Group
}

func newSnapshotCache(store holiday.Store, ttl time.Duration, m *metrics.Metrics) *snapshotCache {
	return &snapshotCache{
		store:   store,
		ttl:     ttl,
		metrics: m,
		entries: make(map[string]*snapshot),
	}
}

func snapshotKey(year int, state domain.StateCode) string {
	return fmt.Sprintf("%d:%s", year, state)
}

// get returns the holiday snapshot for `(year, state)`, fetching it from the
// store on miss or expiry.
func (c *snapshotCache) get(ctx context.Context, year int, state domain.StateCode) (*snapshot, error) {
	key := snapshotKey(year, state)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Since(entry.fetchedAt) < c.ttl {
		c.metrics.RecordHit()
		return entry, nil
	}
	c.metrics.RecordMiss()

	fresh, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: another goroutine may have refreshed
		// the entry while this one waited its turn.
		c.mu.RLock()
		current, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && time.Since(current.fetchedAt) < c.ttl {
			return current, nil
		}

		start := time.Now()
		holidays, err := c.store.ListByYear(ctx, year, state)
		c.metrics.ObserveFetch(time.Since(start))
		if err != nil {
			// No stale fallback: staleness is bounded by the TTL, so an
			// expired snapshot may not stand in for the store. The
			// computation fails as data_unavailable instead.
			return nil, err
		}

		dates := make(map[time.Time]holiday.Holiday, len(holidays))
		for _, h := range holidays {
			dates[holiday.Day(h.Date)] = h
		}
		next := &snapshot{dates: dates, fetchedAt: time.Now()}

		c.mu.Lock()
		c.entries[key] = next
		c.mu.Unlock()
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return fresh.(*snapshot), nil
}

// invalidate drops the snapshot for `(year, state)`; the next read refetches.
func (c *snapshotCache) invalidate(year int, state domain.StateCode) {
	c.mu.Lock()
	delete(c.entries, snapshotKey(year, state))
	c.mu.Unlock()
}
