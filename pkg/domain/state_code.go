package domain

import (
	"strings"

	dErrors "prazo/pkg/domain-errors"
)

// StateCode is the two-letter federative-unit code scoping state holidays and
// state-court outage records.
// Invariant: the value must be one of the 27 federative units.
//
// Usage: construct via ParseStateCode at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type StateCode string

// validStateCodes is the single source of truth for federative units.
var validStateCodes = map[StateCode]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
	"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
	"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
	"SP": true, "SE": true, "TO": true,
}

// ParseStateCode constructs a StateCode from external input. Input is
// case-insensitive; the canonical form is upper case.
//
// Errors: returns CodeInvalidInput when the value is empty or not a
// federative unit; no other errors are expected.
func ParseStateCode(s string) (StateCode, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "state code cannot be empty")
	}
	code := StateCode(strings.ToUpper(s))
	if !code.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown state code %q", s)
	}
	return code, nil
}

// IsValid checks if the state code is one of the federative units.
func (c StateCode) IsValid() bool {
	return validStateCodes[c]
}

// String returns the string representation of the state code.
func (c StateCode) String() string {
	return string(c)
}
