package calendar

import (
	"time"

	"prazo/pkg/domain"
)

// RecessWindow is a yearly-recurring span of month-days during which
// procedural deadlines do not run (CPC art. 220). A window may wrap the year
// end (Dec 20 – Jan 20).
type RecessWindow struct {
	StartMonth time.Month
	StartDay   int
	EndMonth   time.Month
	EndDay     int
	Name       string
}

// Contains reports whether d falls inside the window, inclusive on both ends.
func (w RecessWindow) Contains(d time.Time) bool {
	start := monthDay(d.Month(), d.Day())
	from := monthDay(w.StartMonth, w.StartDay)
	to := monthDay(w.EndMonth, w.EndDay)

	if from <= to {
		return start >= from && start <= to
	}
	// Wrapping window: inside when on/after the start or on/before the end.
	return start >= from || start <= to
}

// End returns the last day of the window occurrence that contains d.
// Precondition: w.Contains(d).
func (w RecessWindow) End(d time.Time) time.Time {
	year := d.Year()
	from := monthDay(w.StartMonth, w.StartDay)
	to := monthDay(w.EndMonth, w.EndDay)
	if from > to && monthDay(d.Month(), d.Day()) >= from {
		// Wrapping window entered before the year turned.
		year++
	}
	return time.Date(year, w.EndMonth, w.EndDay, 0, 0, 0, 0, time.UTC)
}

func monthDay(m time.Month, d int) int {
	return int(m)*100 + d
}

// RecessConfig maps court tiers to their recess windows. Loaded once at
// construction; the oracle never mutates it.
type RecessConfig map[domain.CourtTier][]RecessWindow

// DefaultRecessConfig returns the statutory windows: the year-end recess for
// every tier, plus the July window for superior and appellate courts.
func DefaultRecessConfig() RecessConfig {
	yearEnd := RecessWindow{
		StartMonth: time.December, StartDay: 20,
		EndMonth: time.January, EndDay: 20,
		Name: "recesso forense",
	}
	july := RecessWindow{
		StartMonth: time.July, StartDay: 2,
		EndMonth: time.July, EndDay: 31,
		Name: "férias de julho",
	}
	return RecessConfig{
		domain.CourtTierOrdinary: {yearEnd},
		domain.CourtTierSuperior: {yearEnd, july},
	}
}
