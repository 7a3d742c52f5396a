package domain

import dErrors "prazo/pkg/domain-errors"

// CourtTier selects which forensic recess window applies to a computation.
// Ordinary courts suspend deadlines over the year-end recess; superior and
// appellate courts additionally observe a July window.
type CourtTier string

const (
	CourtTierOrdinary CourtTier = "ordinary"
	CourtTierSuperior CourtTier = "superior"
)

var validCourtTiers = map[CourtTier]bool{
	CourtTierOrdinary: true,
	CourtTierSuperior: true,
}

// ParseCourtTier constructs a CourtTier from external input. An empty value
// defaults to the ordinary tier, which is the common case for trial courts.
func ParseCourtTier(s string) (CourtTier, error) {
	if s == "" {
		return CourtTierOrdinary, nil
	}
	tier := CourtTier(s)
	if !validCourtTiers[tier] {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown court tier %q", s)
	}
	return tier, nil
}

// IsValid reports whether the tier is a known value.
func (t CourtTier) IsValid() bool {
	return validCourtTiers[t]
}

// String returns the string representation of the tier.
func (t CourtTier) String() string {
	return string(t)
}
