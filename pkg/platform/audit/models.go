// Package audit records computation-level audit events: who asked for which
// deadline and what date came out. This is operational audit, distinct from
// the per-rule audit trail inside a ComputationResult, which is part of the
// result itself.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action names the audited operation.
const (
	ActionDeadlineComputed = "deadline.computed"
)

// Event is one audit record.
type Event struct {
	ID             uuid.UUID `json:"id"`
	Action         string    `json:"action"`
	Timestamp      time.Time `json:"timestamp"`
	RequestID      string    `json:"request_id,omitempty"`
	DeadlineTypeID string    `json:"deadline_type_id"`
	State          string    `json:"state,omitempty"`
	TriggerDate    time.Time `json:"trigger_date"`
	DueDate        time.Time `json:"due_date"`
	RulesApplied   int       `json:"rules_applied"`
	Warnings       int       `json:"warnings"`
}

// Store is an append-only audit sink. Kafka in production, memory in tests.
type Store interface {
	Append(ctx context.Context, event Event) error
}
