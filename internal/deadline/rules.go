package deadline

import (
	"context"
	"fmt"
	"time"

	"prazo/internal/catalog"
	"prazo/internal/outage"
)

// applyStartDate resolves the dies a quo: the date the deadline begins, which
// is itself excluded from the count (CPC art. 224). A start that would fall
// on a non-business day is postponed (art. 224 §1).
func applyStartDate(ctx context.Context, comp *Computation, req ComputationRequest, deps Deps) error {
	trigger := day(req.Trigger.Date)

	var start time.Time
	var err error
	switch comp.Entry.StartMethod {
	case catalog.StartSameDay:
		start = trigger
	case catalog.StartNextDay:
		start, err = deps.Oracle.RollForward(ctx, trigger.AddDate(0, 0, 1), req.State)
	case catalog.StartNextBusinessDay:
		start, err = deps.Oracle.NextBusinessDay(ctx, trigger, req.State)
	default:
		return fmt.Errorf("unhandled start method %q", comp.Entry.StartMethod)
	}
	if err != nil {
		return err
	}

	comp.StartDate = start
	comp.audit(AuditEntry{
		RuleID:      RuleStartDate,
		Statute:     "CPC art. 224",
		Description: fmt.Sprintf("count begins %s (%s); the trigger day is excluded", start.Format(time.DateOnly), comp.Entry.StartMethod),
		DateBefore:  trigger,
		DateAfter:   start,
	})
	return nil
}

// applyDurationOverride replaces the catalog base duration with the
// request-supplied one. Overrides are legitimate (court-set deadlines) but
// always flagged so a reviewer sees the catalog was not followed.
func applyDurationOverride(_ context.Context, comp *Computation, req ComputationRequest, _ Deps) error {
	before := comp.Duration
	comp.Duration = req.DurationOverride
	comp.audit(AuditEntry{
		RuleID:      RuleDurationOverride,
		Description: fmt.Sprintf("catalog duration of %d days overridden to %d days by request", before, comp.Duration),
		DateBefore:  comp.StartDate,
		DateAfter:   comp.StartDate,
		DaysAdded:   comp.Duration - before,
	})
	comp.warn(fmt.Sprintf("duration override in effect: %d days instead of the catalog's %d", comp.Duration, before))
	return nil
}

// applyPrivilegedDoubling doubles the duration once when any privileged role
// is present. Multiple eligible roles do not stack: the prerogative is the
// party's, not additive per office.
func applyPrivilegedDoubling(_ context.Context, comp *Computation, _ ComputationRequest, _ Deps) error {
	before := comp.Duration
	comp.Duration *= 2
	comp.doublingApplied = true
	comp.audit(AuditEntry{
		RuleID:      RulePrivilegedDoubling,
		Statute:     "CPC arts. 180, 183, 186",
		Description: fmt.Sprintf("privileged party present: duration doubled from %d to %d days", before, comp.Duration),
		DateBefore:  comp.StartDate,
		DateAfter:   comp.StartDate,
		DaysAdded:   comp.Duration - before,
	})
	return nil
}

// applyColitigantDoubling doubles the duration for co-litigants with distinct
// counsel. It does not apply in fully electronic proceedings (art. 229 §2),
// and it does not compound with privileged-party doubling unless the catalog
// entry explicitly allows it: both rules claim the full deadline, so absent a
// compounding policy the engine applies the statutorily earlier rule only and
// records the ambiguity.
func applyColitigantDoubling(_ context.Context, comp *Computation, req ComputationRequest, _ Deps) error {
	if req.Electronic {
		comp.warn("co-litigant doubling not applied: CPC art. 229 §2 excludes fully electronic proceedings")
		return nil
	}
	if comp.doublingApplied && !comp.Entry.AllowCompounding {
		comp.warn("privileged-party and co-litigant doubling both matched; non-compounding policy keeps the privileged-party multiplier (CPC arts. 180/183/186 precede art. 229)")
		return nil
	}

	before := comp.Duration
	comp.Duration *= 2
	comp.audit(AuditEntry{
		RuleID:      RuleColitigantDoubling,
		Statute:     "CPC art. 229",
		Description: fmt.Sprintf("co-litigants with distinct counsel: duration doubled from %d to %d days", before, comp.Duration),
		DateBefore:  comp.StartDate,
		DateAfter:   comp.StartDate,
		DaysAdded:   comp.Duration - before,
	})
	return nil
}

// applyInterruptionRestart restarts the count from the day after the motion's
// resolution. Interruption is a true reset (CPC art. 1026): days already
// elapsed are discarded, unlike recess suspension which merely pauses.
func applyInterruptionRestart(ctx context.Context, comp *Computation, req ComputationRequest, deps Deps) error {
	if !comp.Entry.Interruptible {
		comp.warn(fmt.Sprintf("deadline type %s is not interruptible; motion of %s ignored",
			comp.Entry.ID, day(req.Interruption.FiledAt).Format(time.DateOnly)))
		return nil
	}

	resolved := day(req.Interruption.ResolvedAt)
	if resolved.Before(comp.StartDate) {
		comp.warn("interrupting motion resolved before the count began; restart has no effect")
		return nil
	}

	before := comp.StartDate
	start, err := deps.Oracle.RollForward(ctx, resolved.AddDate(0, 0, 1), req.State)
	if err != nil {
		return err
	}

	comp.StartDate = start
	comp.audit(AuditEntry{
		RuleID:      RuleInterruptionRestart,
		Statute:     "CPC art. 1026",
		Description: fmt.Sprintf("count restarted in full from %s, the day after the motion's resolution; days counted since %s discarded", start.Format(time.DateOnly), before.Format(time.DateOnly)),
		DateBefore:  before,
		DateAfter:   start,
	})
	return nil
}

// applyDayCounting runs the counting loop: one unit per qualifying day until
// the resolved duration is consumed. The day the loop stops on is the due
// date (the final day is included, CPC art. 224). Recess days are skipped for
// recess-sensitive business-day deadlines (art. 220) and recorded outage days
// are skipped for electronic processes (Lei 11.419 art. 10 §2).
func applyDayCounting(ctx context.Context, comp *Computation, req ComputationRequest, deps Deps) error {
	outageDays, err := fetchOutageDays(ctx, comp, req, deps)
	if err != nil {
		return err
	}

	business := comp.Entry.CountingMode == catalog.CountBusinessDays
	recessAware := business && comp.Entry.RecessSensitive

	d := comp.StartDate
	counted := 0
	recessSkipped := 0
	outageSkipped := 0
	var recessFrom, recessTo time.Time
	var outageFrom, outageTo time.Time

	for counted < comp.Duration {
		d = d.AddDate(0, 0, 1)

		if recessAware && deps.Oracle.InRecess(d, req.Tier) {
			recessSkipped++
			if recessFrom.IsZero() {
				recessFrom = d
			}
			recessTo = d
			continue
		}
		if business {
			ok, err := deps.Oracle.IsBusinessDay(ctx, d, req.State)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		if _, down := outageDays[d]; down {
			outageSkipped++
			if outageFrom.IsZero() {
				outageFrom = d
			}
			outageTo = d
			continue
		}
		counted++
	}

	comp.DueDate = d
	comp.CalendarDaysCounted = int(d.Sub(comp.StartDate).Hours() / 24)
	if business {
		comp.BusinessDaysCounted = counted
	} else {
		bd, err := deps.Oracle.CountBusinessDaysBetween(ctx, comp.StartDate, d, req.State)
		if err != nil {
			return err
		}
		comp.BusinessDaysCounted = bd
	}

	unit := "calendar"
	if business {
		unit = "business"
	}
	comp.audit(AuditEntry{
		RuleID:      RuleDayCounting,
		Statute:     "CPC arts. 219, 224",
		Description: fmt.Sprintf("counted %d %s days from the day after %s; final day included", counted, unit, comp.StartDate.Format(time.DateOnly)),
		DateBefore:  comp.StartDate,
		DateAfter:   d,
		DaysAdded:   counted,
	})
	if recessSkipped > 0 {
		comp.audit(AuditEntry{
			RuleID:      RuleRecessSuspension,
			Statute:     "CPC art. 220",
			Description: fmt.Sprintf("count suspended during forensic recess: %d days between %s and %s not counted", recessSkipped, recessFrom.Format(time.DateOnly), recessTo.Format(time.DateOnly)),
			DateBefore:  recessFrom,
			DateAfter:   recessTo,
			DaysAdded:   recessSkipped,
		})
	}
	if outageSkipped > 0 {
		comp.audit(AuditEntry{
			RuleID:      RuleOutageExtension,
			Statute:     "Lei 11.419 art. 10 §2",
			Description: fmt.Sprintf("%d recorded system outage days between %s and %s excluded from the count", outageSkipped, outageFrom.Format(time.DateOnly), outageTo.Format(time.DateOnly)),
			DateBefore:  outageFrom,
			DateAfter:   outageTo,
			DaysAdded:   outageSkipped,
		})
	}
	return nil
}

// fetchOutageDays loads recorded outage days over the counting horizon for
// electronic processes. The horizon is generous on purpose: skipped weekends,
// holidays, and a full recess window can stretch a deadline far past its
// nominal duration, and an over-wide query only costs rows.
func fetchOutageDays(ctx context.Context, comp *Computation, req ComputationRequest, deps Deps) (map[time.Time]outage.Outage, error) {
	if !req.Electronic || deps.Outages == nil {
		return nil, nil
	}
	horizon := comp.StartDate.AddDate(0, 0, comp.Duration*3+120)
	list, err := deps.Outages.ListBetween(ctx, comp.StartDate, horizon, req.State)
	if err != nil {
		return nil, err
	}
	days := make(map[time.Time]outage.Outage, len(list))
	for _, o := range list {
		days[day(o.Date)] = o
	}
	return days, nil
}

// applyDueDateExtension pushes a due date that landed on a non-business day
// to the next business day. Filing itself requires a business day, so the
// extension applies regardless of counting mode; under business-day counting
// the due date already is one and the rule is a no-op.
func applyDueDateExtension(ctx context.Context, comp *Computation, req ComputationRequest, deps Deps) error {
	before := comp.DueDate
	after, err := deps.Oracle.RollForward(ctx, before, req.State)
	if err != nil {
		return err
	}
	if after.Equal(before) {
		return nil
	}

	comp.DueDate = after
	comp.CalendarDaysCounted = int(after.Sub(comp.StartDate).Hours() / 24)
	comp.audit(AuditEntry{
		RuleID:      RuleDueDateExtension,
		Statute:     "CPC art. 224 §1",
		Description: fmt.Sprintf("due date %s is not a business day; extended to %s", before.Format(time.DateOnly), after.Format(time.DateOnly)),
		DateBefore:  before,
		DateAfter:   after,
		DaysAdded:   int(after.Sub(before).Hours() / 24),
	})
	return nil
}
