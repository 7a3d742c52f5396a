package calendar

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"prazo/internal/holiday"
	"prazo/pkg/domain"
)

// countingStore wraps an in-memory store and counts fetches so tests can
// observe cache behavior.
type countingStore struct {
	inner *holiday.InMemoryStore
	calls atomic.Int32
}

func (c *countingStore) ListByYear(ctx context.Context, year int, state domain.StateCode) ([]holiday.Holiday, error) {
	c.calls.Add(1)
	return c.inner.ListByYear(ctx, year, state)
}

type SnapshotCacheSuite struct {
	suite.Suite
	store *countingStore
}

func TestSnapshotCacheSuite(t *testing.T) {
	suite.Run(t, new(SnapshotCacheSuite))
}

func (s *SnapshotCacheSuite) SetupTest() {
	inner := holiday.NewInMemoryStore()
	inner.SeedNational(2026)
	s.store = &countingStore{inner: inner}
}

func (s *SnapshotCacheSuite) TestRepeatedReadsHitCache() {
	ctx := context.Background()
	cache := newSnapshotCache(s.store, time.Minute, nil)

	for i := 0; i < 10; i++ {
		snap, err := cache.get(ctx, 2026, "SP")
		s.Require().NoError(err)
		s.True(snap.isHoliday(date(2026, time.December, 25)))
	}
	s.Equal(int32(1), s.store.calls.Load())
}

func (s *SnapshotCacheSuite) TestDistinctKeysFetchSeparately() {
	ctx := context.Background()
	cache := newSnapshotCache(s.store, time.Minute, nil)

	_, err := cache.get(ctx, 2026, "SP")
	s.Require().NoError(err)
	_, err = cache.get(ctx, 2026, "RJ")
	s.Require().NoError(err)

	s.Equal(int32(2), s.store.calls.Load())
}

func (s *SnapshotCacheSuite) TestExpiryTriggersRefetch() {
	ctx := context.Background()
	cache := newSnapshotCache(s.store, time.Millisecond, nil)

	_, err := cache.get(ctx, 2026, "SP")
	s.Require().NoError(err)

	time.Sleep(5 * time.Millisecond)

	_, err = cache.get(ctx, 2026, "SP")
	s.Require().NoError(err)
	s.Equal(int32(2), s.store.calls.Load())
}

func (s *SnapshotCacheSuite) TestInvalidateDropsEntry() {
	ctx := context.Background()
	cache := newSnapshotCache(s.store, time.Minute, nil)

	_, err := cache.get(ctx, 2026, "SP")
	s.Require().NoError(err)

	cache.invalidate(2026, "SP")

	_, err = cache.get(ctx, 2026, "SP")
	s.Require().NoError(err)
	s.Equal(int32(2), s.store.calls.Load())
}

func (s *SnapshotCacheSuite) TestConcurrentMissesCollapse() {
	ctx := context.Background()
	cache := newSnapshotCache(s.store, time.Minute, nil)

	const readers = 32
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			snap, err := cache.get(ctx, 2026, "SP")
			if err == nil && snap != nil {
				_ = snap.isHoliday(date(2026, time.January, 1))
			}
		}()
	}
	wg.Wait()

	// Singleflight collapses the initial stampede; allow a second fetch for
	// a goroutine that lost the race after the first flight completed.
	s.LessOrEqual(s.store.calls.Load(), int32(2))
}
