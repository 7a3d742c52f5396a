package deadline

import (
	"time"

	"prazo/internal/catalog"
	"prazo/internal/holiday"
	"prazo/pkg/domain"
	dErrors "prazo/pkg/domain-errors"
)

// TriggerType is the procedural act that starts a deadline's count.
type TriggerType string

const (
	TriggerPersonalService       TriggerType = "personal_service"
	TriggerElectronicService     TriggerType = "electronic_service"
	TriggerElectronicPublication TriggerType = "electronic_publication"
	TriggerHearing               TriggerType = "hearing"
)

var validTriggerTypes = map[TriggerType]bool{
	TriggerPersonalService:       true,
	TriggerElectronicService:     true,
	TriggerElectronicPublication: true,
	TriggerHearing:               true,
}

// ParseTriggerType constructs a TriggerType from external input.
func ParseTriggerType(s string) (TriggerType, error) {
	t := TriggerType(s)
	if !validTriggerTypes[t] {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown trigger type %q", s)
	}
	return t, nil
}

// TriggerEvent is an immutable fact: the act and the date it occurred.
type TriggerEvent struct {
	Type TriggerType
	Date time.Time
}

// PartyRole classifies a party for special-rule purposes.
type PartyRole string

const (
	RoleOrdinary         PartyRole = "ordinary"
	RolePublicTreasury   PartyRole = "public_treasury"
	RolePublicDefender   PartyRole = "public_defender"
	RolePublicProsecutor PartyRole = "public_prosecutor"
)

var validPartyRoles = map[PartyRole]bool{
	RoleOrdinary:         true,
	RolePublicTreasury:   true,
	RolePublicDefender:   true,
	RolePublicProsecutor: true,
}

// ParsePartyRole constructs a PartyRole from external input.
func ParsePartyRole(s string) (PartyRole, error) {
	r := PartyRole(s)
	if !validPartyRoles[r] {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown party role %q", s)
	}
	return r, nil
}

// DoublingEligible reports whether the role enjoys doubled deadlines
// (public treasury CPC art. 183, public defender art. 186, prosecution
// art. 180).
func (r PartyRole) DoublingEligible() bool {
	switch r {
	case RolePublicTreasury, RolePublicDefender, RolePublicProsecutor:
		return true
	}
	return false
}

// Interruption records a post-decision motion that restarts the count
// (clarification motion, CPC art. 1026).
type Interruption struct {
	FiledAt    time.Time
	ResolvedAt time.Time
}

// ComputationRequest is the full input of one deadline computation.
type ComputationRequest struct {
	Trigger        TriggerEvent
	DeadlineTypeID string
	State          domain.StateCode
	Tier           domain.CourtTier

	// CountingMode, when set, must match the catalog entry's mode. It
	// exists so callers can assert the mode they expect; a mismatch is an
	// invalid request, not a silent override.
	CountingMode catalog.CountingMode

	// Roles present on the side the deadline runs against.
	Roles []PartyRole

	// ColitigantsDistinctCounsel flags multiple co-litigants represented by
	// different counsel (CPC art. 229).
	ColitigantsDistinctCounsel bool

	// Electronic marks a fully electronic process.
	Electronic bool

	// DurationOverride, when positive, replaces the catalog base duration.
	DurationOverride int

	// Interruption, when present, restarts the count (CPC art. 1026).
	Interruption *Interruption
}

// Validate enforces request invariants before any store is touched.
func (r ComputationRequest) Validate() error {
	if r.Trigger.Date.IsZero() {
		return dErrors.New(dErrors.CodeInvalidRequest, "trigger date is required")
	}
	if !validTriggerTypes[r.Trigger.Type] {
		return dErrors.Newf(dErrors.CodeInvalidRequest, "unknown trigger type %q", r.Trigger.Type)
	}
	if r.DeadlineTypeID == "" {
		return dErrors.New(dErrors.CodeInvalidRequest, "deadline type is required")
	}
	if r.State != "" && !r.State.IsValid() {
		return dErrors.Newf(dErrors.CodeInvalidRequest, "unknown state code %q", r.State)
	}
	if r.Tier != "" && !r.Tier.IsValid() {
		return dErrors.Newf(dErrors.CodeInvalidRequest, "unknown court tier %q", r.Tier)
	}
	for _, role := range r.Roles {
		if !validPartyRoles[role] {
			return dErrors.Newf(dErrors.CodeInvalidRequest, "unknown party role %q", role)
		}
	}
	if r.DurationOverride < 0 {
		return dErrors.New(dErrors.CodeInvalidRequest, "duration override must be positive")
	}
	if r.Interruption != nil {
		if r.Interruption.ResolvedAt.IsZero() {
			return dErrors.New(dErrors.CodeInvalidRequest, "interruption resolution date is required")
		}
		if r.Interruption.ResolvedAt.Before(r.Interruption.FiledAt) {
			return dErrors.New(dErrors.CodeInvalidRequest, "interruption resolved before it was filed")
		}
	}
	return nil
}

// HasDoublingEligibleRole reports whether any party role enjoys doubling.
func (r ComputationRequest) HasDoublingEligibleRole() bool {
	for _, role := range r.Roles {
		if role.DoublingEligible() {
			return true
		}
	}
	return false
}

// AuditEntry records one rule application. The ordered list of entries is the
// legal justification for the final date.
type AuditEntry struct {
	RuleID      string    `json:"rule_id"`
	Statute     string    `json:"statute,omitempty"`
	Description string    `json:"description"`
	DateBefore  time.Time `json:"date_before"`
	DateAfter   time.Time `json:"date_after"`
	DaysAdded   int       `json:"days_added"`
}

// Computation is the mutable working state threaded through the pipeline.
// Owned by exactly one computation; never shared or pooled.
type Computation struct {
	Entry catalog.Entry

	// StartDate is the dies a quo: the resolved beginning of the deadline.
	// It is itself excluded from the count (CPC art. 224).
	StartDate time.Time

	// Duration is the resolved unit count after overrides and doubling.
	Duration int

	// doublingApplied marks that the privileged-party multiplier ran, so
	// the co-litigant rule can detect the non-compounding conflict.
	doublingApplied bool

	DueDate             time.Time
	BusinessDaysCounted int
	CalendarDaysCounted int

	AppliedRules []AuditEntry
	Warnings     []string
}

func (c *Computation) audit(e AuditEntry) {
	c.AppliedRules = append(c.AppliedRules, e)
}

func (c *Computation) warn(msg string) {
	c.Warnings = append(c.Warnings, msg)
}

// ComputationResult is the immutable outcome returned to the caller.
// Deliberately free of identifiers and wall-clock timestamps: identical
// requests against the same holiday snapshot produce byte-identical results.
type ComputationResult struct {
	DeadlineTypeID string       `json:"deadline_type_id"`
	StartDate      time.Time    `json:"start_date"`
	DueDate        time.Time    `json:"due_date"`
	CountingMode   string       `json:"counting_mode"`
	Duration       int          `json:"duration"`
	BusinessDays   int          `json:"business_days_counted"`
	CalendarDays   int          `json:"calendar_days_counted"`
	AppliedRules   []AuditEntry `json:"applied_rules"`
	Warnings       []string     `json:"warnings"`
}

// day normalizes to midnight UTC; alias kept local so rules read naturally.
func day(t time.Time) time.Time {
	return holiday.Day(t)
}
