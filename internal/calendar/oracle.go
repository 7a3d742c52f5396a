// Package calendar answers "is this date a business day?" for Brazilian
// courts: weekends, national and state holidays, and forensic recess windows.
// Everything in the deadline engine depends on it.
package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"prazo/internal/calendar/metrics"
	"prazo/internal/holiday"
	"prazo/pkg/domain"
)

// Oracle resolves business-day queries against the holiday store, caching one
// immutable snapshot per `(year, state)`. Safe for concurrent use.
type Oracle struct {
	cache  *snapshotCache
	recess RecessConfig
}

// Option configures an Oracle.
type Option func(*options)

type options struct {
	ttl     time.Duration
	recess  RecessConfig
	metrics *metrics.Metrics
}

// WithCacheTTL bounds holiday snapshot staleness. Default 5 minutes.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithRecessConfig overrides the statutory recess windows.
func WithRecessConfig(cfg RecessConfig) Option {
	return func(o *options) { o.recess = cfg }
}

// WithMetrics attaches cache and fetch metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New constructs an Oracle over the given holiday store.
func New(store holiday.Store, opts ...Option) *Oracle {
	o := options{
		ttl:    5 * time.Minute,
		recess: DefaultRecessConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Oracle{
		cache:  newSnapshotCache(store, o.ttl, o.metrics),
		recess: o.recess,
	}
}

// IsBusinessDay reports whether d is a weekday that is not a national holiday
// nor a state holiday for state. Recess windows are a separate axis: consult
// InRecess, because recess-sensitivity depends on the deadline type.
func (o *Oracle) IsBusinessDay(ctx context.Context, d time.Time, state domain.StateCode) (bool, error) {
	d = holiday.Day(d)
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false, nil
	}
	snap, err := o.cache.get(ctx, d.Year(), state)
	if err != nil {
		return false, fmt.Errorf("holiday lookup for %s: %w", d.Format(time.DateOnly), err)
	}
	return !snap.isHoliday(d), nil
}

// NextBusinessDay returns the first business day strictly after d.
func (o *Oracle) NextBusinessDay(ctx context.Context, d time.Time, state domain.StateCode) (time.Time, error) {
	d = holiday.Day(d)
	for {
		d = d.AddDate(0, 0, 1)
		ok, err := o.IsBusinessDay(ctx, d, state)
		if err != nil {
			return time.Time{}, err
		}
		if ok {
			return d, nil
		}
	}
}

// RollForward returns d itself when d is a business day, otherwise the next
// business day after it.
func (o *Oracle) RollForward(ctx context.Context, d time.Time, state domain.StateCode) (time.Time, error) {
	d = holiday.Day(d)
	ok, err := o.IsBusinessDay(ctx, d, state)
	if err != nil {
		return time.Time{}, err
	}
	if ok {
		return d, nil
	}
	return o.NextBusinessDay(ctx, d, state)
}

// CountBusinessDaysBetween counts business days d with from < d <= to.
// Returns 0 when to is not after from.
func (o *Oracle) CountBusinessDaysBetween(ctx context.Context, from, to time.Time, state domain.StateCode) (int, error) {
	from, to = holiday.Day(from), holiday.Day(to)
	count := 0
	for d := from.AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		ok, err := o.IsBusinessDay(ctx, d, state)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}

// InRecess reports whether d falls inside a recess window for the tier.
func (o *Oracle) InRecess(d time.Time, tier domain.CourtTier) bool {
	for _, w := range o.recess[tier] {
		if w.Contains(d) {
			return true
		}
	}
	return false
}

// RecessEnd returns the last day of the recess window containing d.
// Precondition: InRecess(d, tier).
func (o *Oracle) RecessEnd(d time.Time, tier domain.CourtTier) time.Time {
	for _, w := range o.recess[tier] {
		if w.Contains(d) {
			return w.End(d)
		}
	}
	return d
}

// Warm prefetches holiday snapshots for the given years in parallel. The
// orchestrator calls it before the counting loop so a computation spanning a
// year boundary pays both fetches concurrently, and batch recomputations hit
// a warm cache throughout.
func (o *Oracle) Warm(ctx context.Context, state domain.StateCode, years ...int) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, year := range years {
		g.Go(func() error {
			_, err := o.cache.get(ctx, year, state)
			return err
		})
	}
	return g.Wait()
}

// Invalidate drops the cached snapshot for `(year, state)`. Exposed for
// holiday-table maintenance hooks; normal expiry is TTL-driven.
func (o *Oracle) Invalidate(year int, state domain.StateCode) {
	o.cache.invalidate(year, state)
}
