package deadline

import (
	"context"
	"fmt"

	"prazo/internal/calendar"
	"prazo/internal/outage"
)

// Deps bundles the read-only collaborators rule steps may consult.
type Deps struct {
	Oracle  *calendar.Oracle
	Outages outage.Store
}

// Rule is one step of the computation pipeline. Steps are pure: they read the
// request and the stores through deps, mutate only the Computation they were
// handed, and append an audit entry when they fire.
type Rule struct {
	// ID names the rule in audit entries and logs.
	ID string
	// Statute cites the legal basis.
	Statute string
	// Order fixes the canonical legal-precedence position. The pipeline is
	// a data structure ordered by this field, so reordering rules is a
	// reviewable diff, not a comment convention.
	Order int
	// Applies gates the step on the request and catalog flags.
	Applies func(comp *Computation, req ComputationRequest) bool
	// Apply transforms the computation.
	Apply func(ctx context.Context, comp *Computation, req ComputationRequest, deps Deps) error
}

// Rule IDs, referenced by audit entries and tests.
const (
	RuleStartDate           = "start_date_resolution"
	RuleDurationOverride    = "duration_override"
	RulePrivilegedDoubling  = "privileged_party_doubling"
	RuleColitigantDoubling  = "colitigant_doubling"
	RuleInterruptionRestart = "interruption_restart"
	RuleDayCounting         = "day_counting"
	RuleRecessSuspension    = "recess_suspension"
	RuleOutageExtension     = "system_unavailability_extension"
	RuleDueDateExtension    = "due_date_extension"
)

// DefaultPipeline returns the canonical ordered rule list. Duration rules run
// before the counting loop because multipliers apply to the resolved
// duration, not to days already counted; the recess and outage rules fire
// inside the counting step and record their own audit entries.
func DefaultPipeline() []Rule {
	return []Rule{
		{
			ID:      RuleStartDate,
			Statute: "CPC art. 224",
			Order:   1,
			Applies: func(*Computation, ComputationRequest) bool { return true },
			Apply:   applyStartDate,
		},
		{
			ID:      RuleDurationOverride,
			Statute: "",
			Order:   2,
			Applies: func(_ *Computation, req ComputationRequest) bool {
				return req.DurationOverride > 0
			},
			Apply: applyDurationOverride,
		},
		{
			ID:      RulePrivilegedDoubling,
			Statute: "CPC arts. 180, 183, 186",
			Order:   3,
			Applies: func(comp *Computation, req ComputationRequest) bool {
				return comp.Entry.DoublingEligible && req.HasDoublingEligibleRole()
			},
			Apply: applyPrivilegedDoubling,
		},
		{
			ID:      RuleColitigantDoubling,
			Statute: "CPC art. 229",
			Order:   4,
			Applies: func(comp *Computation, req ComputationRequest) bool {
				return comp.Entry.ColitigantEligible && req.ColitigantsDistinctCounsel
			},
			Apply: applyColitigantDoubling,
		},
		{
			ID:      RuleInterruptionRestart,
			Statute: "CPC art. 1026",
			Order:   5,
			Applies: func(_ *Computation, req ComputationRequest) bool {
				return req.Interruption != nil
			},
			Apply: applyInterruptionRestart,
		},
		{
			ID:      RuleDayCounting,
			Statute: "CPC arts. 219, 224",
			Order:   6,
			Applies: func(*Computation, ComputationRequest) bool { return true },
			Apply:   applyDayCounting,
		},
		{
			ID:      RuleDueDateExtension,
			Statute: "CPC art. 224 §1",
			Order:   7,
			Applies: func(*Computation, ComputationRequest) bool { return true },
			Apply:   applyDueDateExtension,
		},
	}
}

// Run executes the pipeline in order, skipping rules whose precondition does
// not match. The rules slice must already be in canonical order; Run does not
// sort so that the ordering stays an explicit, testable property of the list.
func Run(ctx context.Context, rules []Rule, comp *Computation, req ComputationRequest, deps Deps) error {
	for _, rule := range rules {
		if !rule.Applies(comp, req) {
			continue
		}
		if err := rule.Apply(ctx, comp, req, deps); err != nil {
			return fmt.Errorf("rule %s: %w", rule.ID, err)
		}
	}
	return nil
}
