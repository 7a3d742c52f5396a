package deadline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"prazo/internal/calendar"
	"prazo/internal/catalog"
	"prazo/internal/holiday"
	"prazo/internal/outage"
	"prazo/pkg/domain"
	dErrors "prazo/pkg/domain-errors"
	"prazo/pkg/platform/audit"
	"prazo/pkg/platform/sentinel"
)

func date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

type ServiceSuite struct {
	suite.Suite
	holidays *holiday.InMemoryStore
	catalog  *catalog.InMemoryStore
	outages  *outage.InMemoryStore
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.holidays = holiday.NewInMemoryStore()
	s.holidays.SeedNational(2026, 2027)

	s.catalog = catalog.NewInMemoryStore()
	s.Require().NoError(catalog.Seed(s.catalog))

	s.outages = outage.NewInMemoryStore()

	oracle := calendar.New(s.holidays)
	s.service = NewService(s.catalog, oracle, s.outages)
}

// appealRequest is the baseline: an appeal published electronically on Friday
// 2026-03-13. The count begins the next business day, Monday 2026-03-16,
// which is itself excluded.
func (s *ServiceSuite) appealRequest() ComputationRequest {
	return ComputationRequest{
		Trigger: TriggerEvent{
			Type: TriggerElectronicPublication,
			Date: date(2026, time.March, 13),
		},
		DeadlineTypeID: "appeal",
		State:          "SP",
	}
}

func (s *ServiceSuite) TestAppealFromFridayPublication() {
	result, err := s.service.Compute(context.Background(), s.appealRequest())
	s.Require().NoError(err)

	// Saturday 2026-03-14 is postponed to Monday 2026-03-16; 15 business
	// days counted from Tuesday 2026-03-17 land on Monday 2026-04-06.
	s.Equal(date(2026, time.March, 16), result.StartDate)
	s.Equal(date(2026, time.April, 6), result.DueDate)
	s.Equal(15, result.Duration)
	s.Equal(15, result.BusinessDays)
	s.Equal(21, result.CalendarDays)
	s.Empty(result.Warnings)

	s.Require().Len(result.AppliedRules, 2)
	s.Equal(RuleStartDate, result.AppliedRules[0].RuleID)
	s.Equal(RuleDayCounting, result.AppliedRules[1].RuleID)
}

func (s *ServiceSuite) TestPrivilegedPartyDoubling() {
	req := s.appealRequest()
	req.Roles = []PartyRole{RolePublicTreasury}

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	// 30 business days from Tuesday 2026-03-17; Tiradentes (Tue 2026-04-21)
	// is skipped along the way.
	s.Equal(30, result.Duration)
	s.Equal(date(2026, time.April, 28), result.DueDate)

	s.Require().Len(result.AppliedRules, 3)
	s.Equal(RulePrivilegedDoubling, result.AppliedRules[1].RuleID)
	s.Equal(15, result.AppliedRules[1].DaysAdded)
}

func (s *ServiceSuite) TestColitigantDoubling() {
	req := s.appealRequest()
	req.ColitigantsDistinctCounsel = true

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(30, result.Duration)
	s.Equal(date(2026, time.April, 28), result.DueDate)
}

func (s *ServiceSuite) TestColitigantDoublingExcludedElectronically() {
	req := s.appealRequest()
	req.ColitigantsDistinctCounsel = true
	req.Electronic = true

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	s.Equal(15, result.Duration)
	s.Equal(date(2026, time.April, 6), result.DueDate)
	s.Require().Len(result.Warnings, 1)
	s.Contains(result.Warnings[0], "art. 229 §2")
}

func (s *ServiceSuite) TestDoublingDoesNotCompound() {
	req := s.appealRequest()
	req.Roles = []PartyRole{RolePublicDefender}
	req.ColitigantsDistinctCounsel = true

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	// Both multipliers matched; only the privileged-party one applies.
	s.Equal(30, result.Duration)
	s.Require().Len(result.Warnings, 1)
	s.Contains(result.Warnings[0], "non-compounding")
	for _, entry := range result.AppliedRules {
		s.NotEqual(RuleColitigantDoubling, entry.RuleID)
	}
}

func (s *ServiceSuite) TestDoublingCompoundsWhenCatalogAllows() {
	entry := catalog.Entry{
		ID:                 "stacking_appeal",
		Description:        "Apelação (compounding)",
		LegalBasis:         "CPC art. 1003 §5",
		BaseDuration:       15,
		CountingMode:       catalog.CountBusinessDays,
		StartMethod:        catalog.StartNextDay,
		DoublingEligible:   true,
		ColitigantEligible: true,
		AllowCompounding:   true,
	}
	s.Require().NoError(s.catalog.Put(entry))

	req := s.appealRequest()
	req.DeadlineTypeID = "stacking_appeal"
	req.Roles = []PartyRole{RolePublicTreasury}
	req.ColitigantsDistinctCounsel = true

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(60, result.Duration)
}

func (s *ServiceSuite) TestCalendarDaysDueDateExtension() {
	req := ComputationRequest{
		Trigger: TriggerEvent{
			Type: TriggerPersonalService,
			Date: date(2026, time.April, 16), // Thursday
		},
		DeadlineTypeID: "injunction_compliance",
		State:          "SP",
	}

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	// Five calendar days from Thursday 2026-04-16 end on Tiradentes
	// (Tue 2026-04-21); filing is pushed to Wednesday 2026-04-22.
	s.Equal(date(2026, time.April, 16), result.StartDate)
	s.Equal(date(2026, time.April, 22), result.DueDate)
	s.Equal(2, result.BusinessDays)
	s.Equal(6, result.CalendarDays)

	last := result.AppliedRules[len(result.AppliedRules)-1]
	s.Equal(RuleDueDateExtension, last.RuleID)
	s.Equal(date(2026, time.April, 21), last.DateBefore)
	s.Equal(date(2026, time.April, 22), last.DateAfter)
}

func (s *ServiceSuite) TestRecessSuspendsTheCount() {
	req := s.appealRequest()
	req.Trigger.Date = date(2026, time.December, 10) // Thursday

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	// Five business days run before 2026-12-20; the count resumes on
	// 2027-01-21 and finishes on Wednesday 2027-02-03.
	s.Equal(date(2026, time.December, 11), result.StartDate)
	s.Equal(date(2027, time.February, 3), result.DueDate)
	s.Equal(15, result.BusinessDays)

	var recess *AuditEntry
	for i := range result.AppliedRules {
		if result.AppliedRules[i].RuleID == RuleRecessSuspension {
			recess = &result.AppliedRules[i]
		}
	}
	s.Require().NotNil(recess)
	s.Equal(date(2026, time.December, 20), recess.DateBefore)
	s.Equal(date(2027, time.January, 20), recess.DateAfter)
	s.Equal(32, recess.DaysAdded)
}

func (s *ServiceSuite) TestUnsetTierCountsAsOrdinary() {
	req := s.appealRequest()
	req.Trigger.Date = date(2026, time.December, 10)

	unset, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	req.Tier = domain.CourtTierOrdinary
	ordinary, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	// The year-end suspension must apply either way; a request without a
	// tier is a trial-court request, not one exempt from the recess.
	s.Equal(date(2027, time.February, 3), unset.DueDate)
	s.Equal(ordinary, unset)
}

func (s *ServiceSuite) TestUnknownTierRejected() {
	req := s.appealRequest()
	req.Tier = domain.CourtTier("municipal")

	_, err := s.service.Compute(context.Background(), req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidRequest))
}

func (s *ServiceSuite) TestSuperiorTierJulyRecess() {
	req := s.appealRequest()
	req.Tier = domain.CourtTierSuperior
	req.Trigger.Date = date(2026, time.June, 25) // Thursday

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	// Three business days run before July 2; the count resumes on
	// Saturday August 1 and finishes on Tuesday 2026-08-18.
	s.Equal(date(2026, time.June, 26), result.StartDate)
	s.Equal(date(2026, time.August, 18), result.DueDate)
	s.Equal(15, result.BusinessDays)

	var recess *AuditEntry
	for i := range result.AppliedRules {
		if result.AppliedRules[i].RuleID == RuleRecessSuspension {
			recess = &result.AppliedRules[i]
		}
	}
	s.Require().NotNil(recess)
	s.Equal(date(2026, time.July, 2), recess.DateBefore)
	s.Equal(date(2026, time.July, 31), recess.DateAfter)
	s.Equal(30, recess.DaysAdded)
}

func (s *ServiceSuite) TestJulyRecessIgnoredForOrdinaryTier() {
	req := s.appealRequest()
	req.Trigger.Date = date(2026, time.June, 25)

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	// Trial courts sit through July; fifteen plain business days from
	// Saturday June 27 land on Friday 2026-07-17.
	s.Equal(date(2026, time.July, 17), result.DueDate)
	for _, entry := range result.AppliedRules {
		s.NotEqual(RuleRecessSuspension, entry.RuleID)
	}
}

func (s *ServiceSuite) TestHolidayMidCountShiftsDueDate() {
	req := s.appealRequest()
	req.Trigger.Date = date(2026, time.April, 6) // Monday

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	// Tiradentes (Tuesday April 21) would have been the tenth business day;
	// skipping it pushes the due date from April 28 to Wednesday April 29.
	s.Equal(date(2026, time.April, 7), result.StartDate)
	s.Equal(date(2026, time.April, 29), result.DueDate)
	s.Equal(15, result.BusinessDays)
}

func (s *ServiceSuite) TestRecessIgnoredForInsensitiveType() {
	req := s.appealRequest()
	req.DeadlineTypeID = "voluntary_payment"
	req.Trigger.Date = date(2026, time.December, 10)

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	// Recess days still count for a non-sensitive type; only weekends and
	// holidays (Natal, Confraternização) are skipped.
	s.True(result.DueDate.Before(date(2027, time.February, 1)))
	for _, entry := range result.AppliedRules {
		s.NotEqual(RuleRecessSuspension, entry.RuleID)
	}
}

func (s *ServiceSuite) TestInterruptionRestartsTheCount() {
	req := s.appealRequest()
	req.Interruption = &Interruption{
		FiledAt:    date(2026, time.March, 20),
		ResolvedAt: date(2026, time.April, 6), // Monday
	}

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	// The count restarts in full from Tuesday 2026-04-07.
	s.Equal(date(2026, time.April, 7), result.StartDate)
	s.Equal(date(2026, time.April, 29), result.DueDate)
	s.Equal(15, result.BusinessDays)
}

func (s *ServiceSuite) TestInterruptionIgnoredForNonInterruptibleType() {
	req := s.appealRequest()
	req.DeadlineTypeID = "response"
	req.Interruption = &Interruption{
		FiledAt:    date(2026, time.March, 20),
		ResolvedAt: date(2026, time.April, 6),
	}

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(date(2026, time.April, 6), result.DueDate)
	s.Require().Len(result.Warnings, 1)
	s.Contains(result.Warnings[0], "not interruptible")
}

func (s *ServiceSuite) TestOutageDayExcludedForElectronicProcess() {
	s.outages.Add(outage.Outage{
		Date:   date(2026, time.March, 18),
		State:  "SP",
		System: "pje",
	})

	req := s.appealRequest()
	req.Electronic = true

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(date(2026, time.April, 7), result.DueDate)

	var found bool
	for _, entry := range result.AppliedRules {
		if entry.RuleID == RuleOutageExtension {
			found = true
			s.Equal(1, entry.DaysAdded)
		}
	}
	s.True(found)
}

func (s *ServiceSuite) TestOutageIgnoredForPaperProcess() {
	s.outages.Add(outage.Outage{
		Date:   date(2026, time.March, 18),
		State:  "SP",
		System: "pje",
	})

	result, err := s.service.Compute(context.Background(), s.appealRequest())
	s.Require().NoError(err)
	s.Equal(date(2026, time.April, 6), result.DueDate)
}

func (s *ServiceSuite) TestDurationOverride() {
	req := s.appealRequest()
	req.DurationOverride = 10

	result, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(10, result.Duration)
	s.Equal(date(2026, time.March, 30), result.DueDate)
	s.Require().Len(result.Warnings, 1)
	s.Contains(result.Warnings[0], "override")
}

func (s *ServiceSuite) TestDeterministic() {
	req := s.appealRequest()
	req.Roles = []PartyRole{RolePublicProsecutor}

	first, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)
	second, err := s.service.Compute(context.Background(), req)
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *ServiceSuite) TestCountingModeMismatch() {
	req := s.appealRequest()
	req.CountingMode = catalog.CountCalendarDays

	_, err := s.service.Compute(context.Background(), req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidRequest))
}

func (s *ServiceSuite) TestUnknownDeadlineType() {
	req := s.appealRequest()
	req.DeadlineTypeID = "habeas_data"

	_, err := s.service.Compute(context.Background(), req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnknownDeadlineType))
}

func (s *ServiceSuite) TestInvalidRequest() {
	req := s.appealRequest()
	req.Trigger.Date = time.Time{}

	_, err := s.service.Compute(context.Background(), req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidRequest))
}

// unreachableHolidayStore stands in for a database that is down.
type unreachableHolidayStore struct{}

func (unreachableHolidayStore) ListByYear(context.Context, int, domain.StateCode) ([]holiday.Holiday, error) {
	return nil, sentinel.ErrUnavailable
}

func (s *ServiceSuite) TestHolidayStoreDownFailsClosed() {
	service := NewService(s.catalog, calendar.New(unreachableHolidayStore{}), s.outages)

	_, err := service.Compute(context.Background(), s.appealRequest())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeDataUnavailable))
}

type unreachableCatalogStore struct{}

func (unreachableCatalogStore) Get(context.Context, string) (*catalog.Entry, error) {
	return nil, sentinel.ErrUnavailable
}

func (unreachableCatalogStore) List(context.Context) ([]catalog.Entry, error) {
	return nil, sentinel.ErrUnavailable
}

func (s *ServiceSuite) TestCatalogStoreDownFailsClosed() {
	service := NewService(unreachableCatalogStore{}, calendar.New(s.holidays), s.outages)

	_, err := service.Compute(context.Background(), s.appealRequest())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeDataUnavailable))
}

func (s *ServiceSuite) TestAuditEventEmitted() {
	ch := make(chan audit.Event, 1)
	oracle := calendar.New(s.holidays)
	service := NewService(s.catalog, oracle, s.outages, WithAuditChannel(ch))

	result, err := service.Compute(context.Background(), s.appealRequest())
	s.Require().NoError(err)

	select {
	case event := <-ch:
		s.Equal(audit.ActionDeadlineComputed, event.Action)
		s.Equal("appeal", event.DeadlineTypeID)
		s.Equal("SP", event.State)
		s.Equal(result.DueDate, event.DueDate)
		s.Equal(len(result.AppliedRules), event.RulesApplied)
	default:
		s.Fail("no audit event emitted")
	}
}

func (s *ServiceSuite) TestComputeBatch() {
	good := s.appealRequest()
	bad := s.appealRequest()
	bad.DeadlineTypeID = "habeas_data"

	items := s.service.ComputeBatch(context.Background(), []ComputationRequest{good, bad})
	s.Require().Len(items, 2)

	s.Require().NoError(items[0].Err)
	s.Equal(date(2026, time.April, 6), items[0].Result.DueDate)

	s.Require().Error(items[1].Err)
	s.True(dErrors.HasCode(items[1].Err, dErrors.CodeUnknownDeadlineType))
}
