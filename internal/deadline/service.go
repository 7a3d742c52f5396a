// Package deadline computes the calendar date a procedural deadline expires
// on, given a trigger event and a cataloged deadline type. The computation is
// an ordered rule pipeline over the calendar oracle; every applied rule is
// recorded so the final date can be justified.
package deadline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"prazo/internal/calendar"
	"prazo/internal/catalog"
	"prazo/internal/deadline/metrics"
	"prazo/internal/outage"
	"prazo/pkg/domain"
	dErrors "prazo/pkg/domain-errors"
	"prazo/pkg/platform/audit"
	"prazo/pkg/platform/sentinel"
	"prazo/pkg/requestcontext"
)

// Service is the deadline calculator: it resolves the catalog entry, runs the
// rule pipeline, and assembles the result. Stateless aside from the oracle's
// holiday cache; safe for concurrent and batch use.
type Service struct {
	catalog      catalog.Store
	deps         Deps
	pipeline     []Rule
	metrics      *metrics.Metrics
	logger       *slog.Logger
	tracer       trace.Tracer
	auditCh      chan<- audit.Event
	storeTimeout time.Duration
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMetrics attaches engine metrics.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithLogger attaches a structured logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// WithAuditChannel routes a deadline.computed event per successful
// computation into ch. Emission is non-blocking: when ch is full the event is
// dropped, never the computation.
func WithAuditChannel(ch chan<- audit.Event) ServiceOption {
	return func(s *Service) { s.auditCh = ch }
}

// WithPipeline overrides the default rule list. Intended for tests that
// exercise a single rule in isolation.
func WithPipeline(rules []Rule) ServiceOption {
	return func(s *Service) { s.pipeline = rules }
}

// WithStoreTimeout caps catalog and holiday reads per computation. On expiry
// the computation fails with data_unavailable instead of hanging a caller on
// a slow database.
func WithStoreTimeout(d time.Duration) ServiceOption {
	return func(s *Service) { s.storeTimeout = d }
}

// NewService constructs the deadline calculator.
func NewService(catalogStore catalog.Store, oracle *calendar.Oracle, outages outage.Store, opts ...ServiceOption) *Service {
	s := &Service{
		catalog:  catalogStore,
		deps:     Deps{Oracle: oracle, Outages: outages},
		pipeline: DefaultPipeline(),
		logger:   slog.Default(),
		tracer:   otel.Tracer("prazo/deadline"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compute runs one deadline computation. Pure aside from store reads: no
// writes, no wall-clock dependency in the date math, so repeated calls with
// the same inputs and holiday data return the same result.
func (s *Service) Compute(ctx context.Context, req ComputationRequest) (*ComputationResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "deadline.compute")
	defer span.End()

	result, err := s.compute(ctx, req)

	outcome := "ok"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
	}
	s.metrics.IncrementComputation(req.DeadlineTypeID, outcome)
	s.metrics.ObserveCompute(time.Since(start))

	if err != nil {
		s.logger.ErrorContext(ctx, "deadline computation failed",
			"request_id", requestcontext.RequestID(ctx),
			"deadline_type", req.DeadlineTypeID,
			"error", err,
		)
		return nil, err
	}

	for _, entry := range result.AppliedRules {
		s.metrics.IncrementRule(entry.RuleID)
	}
	s.emitAudit(ctx, req, result)

	s.logger.InfoContext(ctx, "deadline computed",
		"request_id", requestcontext.RequestID(ctx),
		"deadline_type", req.DeadlineTypeID,
		"trigger_date", req.Trigger.Date.Format(time.DateOnly),
		"due_date", result.DueDate.Format(time.DateOnly),
		"rules_applied", len(result.AppliedRules),
		"warnings", len(result.Warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func (s *Service) compute(ctx context.Context, req ComputationRequest) (*ComputationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	// An unset tier means a trial court; without this the recess windows,
	// keyed by tier, would never match and the suspension would be skipped.
	if req.Tier == "" {
		req.Tier = domain.CourtTierOrdinary
	}

	catalogCtx, cancel := s.storeCtx(ctx)
	entry, err := s.catalog.Get(catalogCtx, req.DeadlineTypeID)
	cancel()
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.Newf(dErrors.CodeUnknownDeadlineType, "no catalog entry for deadline type %q", req.DeadlineTypeID)
		case errors.Is(err, sentinel.ErrUnavailable):
			return nil, dErrors.Wrap(dErrors.CodeDataUnavailable, "catalog store unreachable", err)
		default:
			return nil, dErrors.Wrap(dErrors.CodeInternal, "resolve catalog entry", err)
		}
	}

	if req.CountingMode != "" && req.CountingMode != entry.CountingMode {
		return nil, dErrors.Newf(dErrors.CodeInvalidRequest,
			"requested counting mode %s is incompatible with deadline type %s (%s)",
			req.CountingMode, entry.ID, entry.CountingMode)
	}

	// Prefetch both calendar years the count can touch, in parallel. The
	// counting loop then runs entirely against warm snapshots.
	triggerYear := req.Trigger.Date.Year()
	warmCtx, cancel := s.storeCtx(ctx)
	err = s.deps.Oracle.Warm(warmCtx, req.State, triggerYear, triggerYear+1)
	cancel()
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeDataUnavailable, "holiday store unreachable", err)
	}

	comp := &Computation{
		Entry:    *entry,
		Duration: entry.BaseDuration,
	}
	if err := Run(ctx, s.pipeline, comp, req, s.deps); err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			return nil, dErrors.Wrap(dErrors.CodeDataUnavailable, "calendar data unreachable during computation", err)
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "rule pipeline", err)
	}

	warnings := comp.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return &ComputationResult{
		DeadlineTypeID: entry.ID,
		StartDate:      comp.StartDate,
		DueDate:        comp.DueDate,
		CountingMode:   string(entry.CountingMode),
		Duration:       comp.Duration,
		BusinessDays:   comp.BusinessDaysCounted,
		CalendarDays:   comp.CalendarDaysCounted,
		AppliedRules:   comp.AppliedRules,
		Warnings:       warnings,
	}, nil
}

// storeCtx derives a context for one store-bound phase of a computation.
func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// emitAudit publishes a deadline.computed event without ever blocking the
// computation path.
func (s *Service) emitAudit(ctx context.Context, req ComputationRequest, result *ComputationResult) {
	if s.auditCh == nil {
		return
	}
	event := audit.Event{
		Action:         audit.ActionDeadlineComputed,
		Timestamp:      requestcontext.Now(ctx),
		RequestID:      requestcontext.RequestID(ctx),
		DeadlineTypeID: result.DeadlineTypeID,
		State:          req.State.String(),
		TriggerDate:    req.Trigger.Date,
		DueDate:        result.DueDate,
		RulesApplied:   len(result.AppliedRules),
		Warnings:       len(result.Warnings),
	}
	select {
	case s.auditCh <- event:
	default:
		s.logger.WarnContext(ctx, "audit inbox full; deadline.computed event dropped",
			"deadline_type", result.DeadlineTypeID,
		)
	}
}

// ComputeBatch runs computations for many requests sequentially, returning
// per-item outcomes. One bad request does not fail the batch; nightly
// reconciliation wants every answer it can get.
func (s *Service) ComputeBatch(ctx context.Context, reqs []ComputationRequest) []BatchItem {
	items := make([]BatchItem, len(reqs))
	for i, req := range reqs {
		result, err := s.Compute(ctx, req)
		items[i] = BatchItem{Result: result, Err: err}
	}
	return items
}

// BatchItem is one outcome of a batch computation.
type BatchItem struct {
	Result *ComputationResult
	Err    error
}
