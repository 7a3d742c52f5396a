package handler

import (
	"time"

	"prazo/internal/deadline"
	dErrors "prazo/pkg/domain-errors"
)

// ComputeResponse is the HTTP response for POST /v1/deadlines/compute.
type ComputeResponse struct {
	DeadlineType string         `json:"deadline_type"`
	StartDate    string         `json:"start_date"`
	DueDate      string         `json:"due_date"`
	CountingMode string         `json:"counting_mode"`
	Duration     int            `json:"duration"`
	BusinessDays int            `json:"business_days_counted"`
	CalendarDays int            `json:"calendar_days_counted"`
	AppliedRules []RuleResponse `json:"applied_rules"`
	Warnings     []string       `json:"warnings"`
}

// RuleResponse is one audit-trail entry of the response.
type RuleResponse struct {
	RuleID      string `json:"rule_id"`
	Statute     string `json:"statute,omitempty"`
	Description string `json:"description"`
	DateBefore  string `json:"date_before"`
	DateAfter   string `json:"date_after"`
	DaysAdded   int    `json:"days_added,omitempty"`
}

// BatchResponse is the HTTP response for POST /v1/deadlines/compute-batch.
type BatchResponse struct {
	Results []BatchItemResponse `json:"results"`
}

// BatchItemResponse carries either a result or an error, never both.
type BatchItemResponse struct {
	Result *ComputeResponse `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// FromResult converts a domain ComputationResult to an HTTP response.
func FromResult(result *deadline.ComputationResult) *ComputeResponse {
	rules := make([]RuleResponse, len(result.AppliedRules))
	for i, entry := range result.AppliedRules {
		rules[i] = RuleResponse{
			RuleID:      entry.RuleID,
			Statute:     entry.Statute,
			Description: entry.Description,
			DateBefore:  entry.DateBefore.Format(time.DateOnly),
			DateAfter:   entry.DateAfter.Format(time.DateOnly),
			DaysAdded:   entry.DaysAdded,
		}
	}
	return &ComputeResponse{
		DeadlineType: result.DeadlineTypeID,
		StartDate:    result.StartDate.Format(time.DateOnly),
		DueDate:      result.DueDate.Format(time.DateOnly),
		CountingMode: result.CountingMode,
		Duration:     result.Duration,
		BusinessDays: result.BusinessDays,
		CalendarDays: result.CalendarDays,
		AppliedRules: rules,
		Warnings:     result.Warnings,
	}
}

// FromBatch converts batch outcomes to the HTTP response shape.
func FromBatch(items []deadline.BatchItem) *BatchResponse {
	out := &BatchResponse{Results: make([]BatchItemResponse, len(items))}
	for i, item := range items {
		if item.Err != nil {
			out.Results[i] = BatchItemResponse{Error: string(dErrors.CodeOf(item.Err))}
			continue
		}
		out.Results[i] = BatchItemResponse{Result: FromResult(item.Result)}
	}
	return out
}
