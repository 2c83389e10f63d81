package payroll

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lodgetrack/timeclock-backend/internal/domain/employee"
	"github.com/lodgetrack/timeclock-backend/internal/domain/payroll"
	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/jwt"
	"github.com/lodgetrack/timeclock-backend/internal/service/timesheet"
)

var overtimeMultiplier = decimal.NewFromFloat(1.5)

type PayrollServiceImpl struct {
	punchRepo    punch.PunchRepository
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
	now          func() time.Time
}

func NewPayrollService(
	punchRepo punch.PunchRepository,
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
		now:          time.Now,
	}
}

// weekBounds returns the Monday and Sunday of the week containing t.
func weekBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// Dashboard implements payroll.PayrollService. Rows come from the same
// daily regular/overtime allocation the timesheet grid uses, then fold
// pay rates in: gross pay per punch is regular·rate + overtime·rate·1.5,
// summed per employee across the week.
func (s *PayrollServiceImpl) Dashboard(ctx context.Context, search string) (payroll.DashboardResponse, error) {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return payroll.DashboardResponse{}, err
	}

	weekStart, weekEnd := weekBounds(s.now())
	startDate := weekStart.Format("2006-01-02")
	endDate := weekEnd.Format("2006-01-02")

	resp := payroll.DashboardResponse{
		WeekStart: startDate,
		WeekEnd:   endDate,
		Rows:      []payroll.SummaryRow{},
		Totals:    payroll.KPITotals{Payroll: decimal.Zero},
	}

	punches, err := s.punchRepo.List(ctx, punch.Filter{
		StartDate: &startDate,
		EndDate:   &endDate,
	}, actor.UserID)
	if err != nil {
		return payroll.DashboardResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}
	if len(punches) == 0 {
		return resp, nil
	}

	rates := make(map[string]decimal.Decimal)
	for _, p := range punches {
		if _, ok := rates[p.EmployeeID]; ok {
			continue
		}
		emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			// A deleted employee's punches still count hours, at a zero rate.
			rates[p.EmployeeID] = decimal.Zero
			continue
		}
		if err != nil {
			return payroll.DashboardResponse{}, fmt.Errorf("failed to get employee %s: %w", p.EmployeeID, err)
		}
		rates[p.EmployeeID] = emp.HourlyRate
	}

	rows := make(map[string]*payroll.SummaryRow)
	for _, a := range timesheet.Allocate(punches) {
		if a.TotalHours == 0 {
			continue
		}

		row, ok := rows[a.EmployeeID]
		if !ok {
			row = &payroll.SummaryRow{
				EmployeeID:   a.EmployeeID,
				EmployeeName: nameOrUnknown(a.EmployeeName),
				PropertyName: nameOrDash(a.PropertyName),
				Rate:         rates[a.EmployeeID],
				GrossPay:     decimal.Zero,
				Status:       punch.StatusApproved,
			}
			rows[a.EmployeeID] = row
		}

		rate := rates[a.EmployeeID]
		reg := decimal.NewFromFloat(a.RegularHours)
		ot := decimal.NewFromFloat(a.OvertimeHours)

		row.Regular += a.RegularHours
		row.Overtime += a.OvertimeHours
		row.GrossHours += a.TotalHours
		row.GrossPay = row.GrossPay.Add(reg.Mul(rate)).Add(ot.Mul(rate).Mul(overtimeMultiplier))
		if a.Status != punch.StatusApproved {
			row.Status = punch.StatusPending
		}
	}

	needle := strings.ToLower(search)
	for _, row := range rows {
		if needle != "" &&
			!strings.Contains(strings.ToLower(row.EmployeeName), needle) &&
			!strings.Contains(strings.ToLower(row.PropertyName), needle) {
			continue
		}

		row.Regular = round2(row.Regular)
		row.Overtime = round2(row.Overtime)
		row.GrossHours = round2(row.GrossHours)
		row.GrossPay = row.GrossPay.Round(2)

		resp.Rows = append(resp.Rows, *row)
		resp.Totals.Payroll = resp.Totals.Payroll.Add(row.GrossPay)
		resp.Totals.GrossHours = round2(resp.Totals.GrossHours + row.GrossHours)
		if row.Status == punch.StatusPending {
			resp.Totals.Pending++
		}
		resp.Totals.Employees++
	}

	sort.Slice(resp.Rows, func(i, j int) bool {
		if resp.Rows[i].EmployeeName != resp.Rows[j].EmployeeName {
			return resp.Rows[i].EmployeeName < resp.Rows[j].EmployeeName
		}
		return resp.Rows[i].EmployeeID < resp.Rows[j].EmployeeID
	})

	return resp, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func nameOrUnknown(s *string) string {
	if s == nil || *s == "" {
		return "Unknown"
	}
	return *s
}

func nameOrDash(s *string) string {
	if s == nil || *s == "" {
		return punch.UnresolvedLabel
	}
	return *s
}
