package timesheet

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lodgetrack/timeclock-backend/internal/domain/payperiod"
	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
	"github.com/lodgetrack/timeclock-backend/internal/domain/timesheet"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/jwt"
)

type TimesheetServiceImpl struct {
	punchRepo     punch.PunchRepository
	payPeriodRepo payperiod.PayPeriodRepository
	jwtService    jwt.Service
}

func NewTimesheetService(
	punchRepo punch.PunchRepository,
	payPeriodRepo payperiod.PayPeriodRepository,
	jwtService jwt.Service,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		punchRepo:     punchRepo,
		payPeriodRepo: payPeriodRepo,
		jwtService:    jwtService,
	}
}

// load pulls the filtered punches and runs the daily allocation. The
// allocator needs complete days: when the filter carries a period id,
// the period's range also resolves the grid columns.
func (s *TimesheetServiceImpl) load(ctx context.Context, filter punch.Filter) ([]timesheet.AllocatedPunch, *payperiod.PayPeriod, error) {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}
	ownerID := actor.UserID

	var period *payperiod.PayPeriod
	if filter.PayPeriodID != nil && *filter.PayPeriodID != "" {
		p, err := s.payPeriodRepo.GetByID(ctx, *filter.PayPeriodID, ownerID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get pay period: %w", err)
		}
		period = &p
	}

	punches, err := s.punchRepo.List(ctx, filter, ownerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list punches: %w", err)
	}

	return Allocate(punches), period, nil
}

// Grid implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Grid(ctx context.Context, filter punch.Filter) (timesheet.Grid, error) {
	allocated, period, err := s.load(ctx, filter)
	if err != nil {
		return timesheet.Grid{}, err
	}

	var periodStart, periodEnd *time.Time
	if period != nil {
		periodStart, periodEnd = &period.StartDate, &period.EndDate
	}
	columns := DateRange(filter.StartDate, filter.EndDate, periodStart, periodEnd, allocated)

	return BuildGrid(allocated, columns), nil
}

// Allocated implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Allocated(ctx context.Context, filter punch.Filter) ([]timesheet.AllocatedPunch, error) {
	allocated, _, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(allocated, func(i, j int) bool {
		ni, nj := "", ""
		if allocated[i].EmployeeName != nil {
			ni = *allocated[i].EmployeeName
		}
		if allocated[j].EmployeeName != nil {
			nj = *allocated[j].EmployeeName
		}
		if ni != nj {
			return ni < nj
		}
		return allocated[i].ClockIn.Before(allocated[j].ClockIn)
	})

	return allocated, nil
}

// Export implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Export(ctx context.Context, filter punch.Filter) ([]timesheet.FlatRow, error) {
	allocated, err := s.Allocated(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]timesheet.FlatRow, 0, len(allocated))
	for _, p := range allocated {
		resp := punch.ToResponse(p.Punch)
		clockOut := punch.UnresolvedLabel
		if resp.ClockOut != nil {
			clockOut = *resp.ClockOut
		}
		rows = append(rows, timesheet.FlatRow{
			EmployeeName:  resp.EmployeeName,
			PropertyName:  resp.PropertyName,
			Date:          resp.Date,
			ClockIn:       resp.ClockIn,
			ClockOut:      clockOut,
			RegularHours:  p.RegularHours,
			OvertimeHours: p.OvertimeHours,
			TotalHours:    p.TotalHours,
			Status:        p.Status,
		})
	}

	return rows, nil
}

// Active implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Active(ctx context.Context, filter punch.Filter) ([]punch.Response, error) {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter.OpenOnly = true
	punches, err := s.punchRepo.List(ctx, filter, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open punches: %w", err)
	}

	responses := make([]punch.Response, 0, len(punches))
	for _, p := range punches {
		responses = append(responses, punch.ToResponse(p))
	}
	return responses, nil
}
