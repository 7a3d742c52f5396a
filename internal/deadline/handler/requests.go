package handler

import (
	"strings"
	"time"

	"prazo/internal/catalog"
	"prazo/internal/deadline"
	"prazo/pkg/domain"
	dErrors "prazo/pkg/domain-errors"
)

// ComputeRequest is the HTTP request body for POST /v1/deadlines/compute.
// Dates are calendar dates in "2006-01-02" form; the engine has no concept of
// time of day.
type ComputeRequest struct {
	Trigger struct {
		Type string `json:"type"`
		Date string `json:"date"`
	} `json:"trigger"`
	DeadlineType               string   `json:"deadline_type"`
	State                      string   `json:"state,omitempty"`
	Tier                       string   `json:"tier,omitempty"`
	CountingMode               string   `json:"counting_mode,omitempty"`
	PartyRoles                 []string `json:"party_roles,omitempty"`
	ColitigantsDistinctCounsel bool     `json:"colitigants_distinct_counsel,omitempty"`
	Electronic                 bool     `json:"electronic,omitempty"`
	DurationOverride           int      `json:"duration_override,omitempty"`
	Interruption               *struct {
		FiledAt    string `json:"filed_at"`
		ResolvedAt string `json:"resolved_at"`
	} `json:"interruption,omitempty"`
}

// BatchRequest is the HTTP request body for POST /v1/deadlines/compute-batch.
type BatchRequest struct {
	Requests []ComputeRequest `json:"requests"`
}

// ToDomain parses the wire request into a domain ComputationRequest. Full
// semantic validation happens in the service; this layer only parses.
func (r ComputeRequest) ToDomain() (deadline.ComputationRequest, error) {
	var out deadline.ComputationRequest

	triggerType, err := deadline.ParseTriggerType(strings.TrimSpace(r.Trigger.Type))
	if err != nil {
		return out, err
	}
	triggerDate, err := parseDate(r.Trigger.Date, "trigger.date")
	if err != nil {
		return out, err
	}
	out.Trigger = deadline.TriggerEvent{Type: triggerType, Date: triggerDate}

	out.DeadlineTypeID = strings.TrimSpace(r.DeadlineType)
	if out.DeadlineTypeID == "" {
		return out, dErrors.New(dErrors.CodeInvalidRequest, "deadline_type is required")
	}

	if s := strings.TrimSpace(r.State); s != "" {
		state, err := domain.ParseStateCode(s)
		if err != nil {
			return out, err
		}
		out.State = state
	}

	tier, err := domain.ParseCourtTier(strings.TrimSpace(r.Tier))
	if err != nil {
		return out, err
	}
	out.Tier = tier

	if m := strings.TrimSpace(r.CountingMode); m != "" {
		mode, err := catalog.ParseCountingMode(m)
		if err != nil {
			return out, err
		}
		out.CountingMode = mode
	}

	for _, raw := range r.PartyRoles {
		role, err := deadline.ParsePartyRole(strings.TrimSpace(raw))
		if err != nil {
			return out, err
		}
		out.Roles = append(out.Roles, role)
	}

	out.ColitigantsDistinctCounsel = r.ColitigantsDistinctCounsel
	out.Electronic = r.Electronic
	out.DurationOverride = r.DurationOverride

	if r.Interruption != nil {
		filed, err := parseDate(r.Interruption.FiledAt, "interruption.filed_at")
		if err != nil {
			return out, err
		}
		resolved, err := parseDate(r.Interruption.ResolvedAt, "interruption.resolved_at")
		if err != nil {
			return out, err
		}
		out.Interruption = &deadline.Interruption{FiledAt: filed, ResolvedAt: resolved}
	}

	return out, nil
}

func parseDate(s, field string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", field)
	}
	d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be a date in 2006-01-02 form", field)
	}
	return d, nil
}
