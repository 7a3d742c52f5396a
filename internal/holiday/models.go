package holiday

import (
	"time"

	"prazo/pkg/domain"
	dErrors "prazo/pkg/domain-errors"
)

// Type distinguishes nationwide holidays from state-scoped ones.
type Type string

const (
	TypeNational Type = "national"
	TypeState    Type = "state"
)

var validTypes = map[Type]bool{
	TypeNational: true,
	TypeState:    true,
}

// ParseType constructs a Type from external input.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !validTypes[t] {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown holiday type %q", s)
	}
	return t, nil
}

// Holiday is one non-working date in the court calendar.
// State is empty for national holidays and required for state ones.
type Holiday struct {
	Date  time.Time
	Name  string
	Type  Type
	State domain.StateCode
}

// Day truncates t to midnight UTC. All holiday dates and all engine working
// dates are normalized through this so date equality is plain ==.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
