package catalog

import (
	dErrors "prazo/pkg/domain-errors"
)

// CountingMode selects the unit of a deadline count.
type CountingMode string

const (
	// CountBusinessDays counts only business days (CPC art. 219).
	CountBusinessDays CountingMode = "business_days"
	// CountCalendarDays counts every day; the due date is still pushed to a
	// business day when it lands on a non-business day.
	CountCalendarDays CountingMode = "calendar_days"
)

var validCountingModes = map[CountingMode]bool{
	CountBusinessDays: true,
	CountCalendarDays: true,
}

// ParseCountingMode constructs a CountingMode from external input.
func ParseCountingMode(s string) (CountingMode, error) {
	m := CountingMode(s)
	if !validCountingModes[m] {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown counting mode %q", s)
	}
	return m, nil
}

// StartMethod maps the trigger date onto the date the count begins. The
// trigger day itself is never counted (CPC art. 224).
type StartMethod string

const (
	// StartNextDay begins on the day after the trigger. If that day is not a
	// business day, the start is postponed to the next business day
	// (CPC art. 224 §1).
	StartNextDay StartMethod = "next_day"
	// StartNextBusinessDay begins on the first business day after the
	// trigger, used for electronic publications deemed published on the next
	// business day.
	StartNextBusinessDay StartMethod = "next_business_day"
	// StartSameDay begins on the trigger date itself. Rare; used for counts
	// anchored on hearings held in session.
	StartSameDay StartMethod = "same_day"
)

var validStartMethods = map[StartMethod]bool{
	StartNextDay:         true,
	StartNextBusinessDay: true,
	StartSameDay:         true,
}

// ParseStartMethod constructs a StartMethod from external input.
func ParseStartMethod(s string) (StartMethod, error) {
	m := StartMethod(s)
	if !validStartMethods[m] {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown start method %q", s)
	}
	return m, nil
}

// Entry configures one deadline type. Entries are data: the pipeline reads
// the flags, it never hard-codes a deadline type.
type Entry struct {
	// ID is the deadline-type identifier requests reference.
	ID string
	// Description names the deadline in filings-facing language.
	Description string
	// LegalBasis cites the statute establishing the deadline.
	LegalBasis string
	// BaseDuration is the duration in days before any special rule runs.
	// Invariant: positive.
	BaseDuration int
	// CountingMode is the unit the count uses.
	CountingMode CountingMode
	// StartMethod maps the trigger date to the count start.
	StartMethod StartMethod
	// DoublingEligible allows privileged-party doubling (CPC arts. 180,
	// 183, 186).
	DoublingEligible bool
	// ColitigantEligible allows doubling for co-litigants with distinct
	// counsel (CPC art. 229).
	ColitigantEligible bool
	// RecessSensitive suspends the count during forensic recess windows
	// (CPC art. 220).
	RecessSensitive bool
	// Interruptible allows a clarification motion to restart the count
	// (CPC art. 1026).
	Interruptible bool
	// AllowCompounding lets privileged-party and co-litigant doubling stack
	// multiplicatively. Off by default: when both match, the larger single
	// multiplier wins and a warning records the ambiguity.
	AllowCompounding bool
}

// Validate checks entry invariants on load.
func (e Entry) Validate() error {
	if e.ID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "catalog entry ID is required")
	}
	if e.BaseDuration <= 0 {
		return dErrors.Newf(dErrors.CodeInvalidInput, "catalog entry %s: duration must be positive", e.ID)
	}
	if !validCountingModes[e.CountingMode] {
		return dErrors.Newf(dErrors.CodeInvalidInput, "catalog entry %s: invalid counting mode", e.ID)
	}
	if !validStartMethods[e.StartMethod] {
		return dErrors.Newf(dErrors.CodeInvalidInput, "catalog entry %s: invalid start method", e.ID)
	}
	return nil
}
