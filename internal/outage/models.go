package outage

import (
	"time"

	"prazo/pkg/domain"
)

// Outage records one day on which an official electronic filing system was
// unavailable. Outage days do not count against electronic-process deadlines
// (Lei 11.419 art. 10 §2).
type Outage struct {
	// Date is the affected day, midnight UTC.
	Date time.Time
	// State scopes the outage to one state's court system; empty means the
	// national system.
	State domain.StateCode
	// System names the affected filing system (PJe, e-SAJ, Projudi, ...).
	System string
}
