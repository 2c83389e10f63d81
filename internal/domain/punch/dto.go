package punch

import (
	"time"

	"github.com/lodgetrack/timeclock-backend/internal/pkg/validator"
)

// Filter selects punches for listing and aggregation. Either PayPeriodID
// or an explicit StartDate/EndDate window scopes the query; Search matches
// employee or property names case-insensitively.
type Filter struct {
	PropertyIDs []string
	PayPeriodID *string
	StartDate   *string // YYYY-MM-DD
	EndDate     *string // YYYY-MM-DD
	EmployeeID  *string
	Search      *string
	Status      *string
	OpenOnly    bool
}

// EditTimesRequest corrects a punch's clock-in/clock-out pair.
// A nil ClockOut reopens the punch.
type EditTimesRequest struct {
	ID       string  `json:"id"`
	ClockIn  string  `json:"clock_in"`
	ClockOut *string `json:"clock_out"`
}

func (r *EditTimesRequest) Validate() (time.Time, *time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	clockIn, ok := validator.IsValidDateTime(r.ClockIn)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in must be a valid RFC3339 timestamp",
		})
	}

	var clockOut *time.Time
	if r.ClockOut != nil && *r.ClockOut != "" {
		t, ok := validator.IsValidDateTime(*r.ClockOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be a valid RFC3339 timestamp",
			})
		} else {
			clockOut = &t
		}
	}

	if len(errs) > 0 {
		return time.Time{}, nil, errs
	}

	if clockOut != nil && clockOut.Before(clockIn) {
		return time.Time{}, nil, ErrClockOutBeforeIn
	}

	return clockIn, clockOut, nil
}

// ApprovalUpdate is the all-or-nothing status write for one punch: the
// status, approver and approval timestamp change together or not at all.
type ApprovalUpdate struct {
	ID         string
	Status     string
	ApprovedBy *string
	ApprovedAt *time.Time
}

// Response is the punch as rendered to API consumers.
type Response struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	PropertyID   string  `json:"property_id"`
	PropertyName string  `json:"property_name"`
	Date         string  `json:"date"`
	ClockIn      string  `json:"clock_in"`
	ClockOut     *string `json:"clock_out"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	PayPeriodID  *string `json:"pay_period_id,omitempty"`
}

// UnresolvedLabel is shown when a joined employee or property name is
// missing from the store.
const UnresolvedLabel = "—"

func label(s *string) string {
	if s == nil || *s == "" {
		return UnresolvedLabel
	}
	return *s
}

// ToResponse maps a punch entity onto its API shape.
func ToResponse(p Punch) Response {
	var clockOut *string
	if p.ClockOut != nil {
		s := p.ClockOut.Format(time.RFC3339)
		clockOut = &s
	}
	var approvedAt *string
	if p.ApprovedAt != nil {
		s := p.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}
	return Response{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: label(p.EmployeeName),
		PropertyID:   p.PropertyID,
		PropertyName: label(p.PropertyName),
		Date:         p.DayKey(),
		ClockIn:      p.ClockIn.Format(time.RFC3339),
		ClockOut:     clockOut,
		Status:       p.Status,
		ApprovedBy:   p.ApprovedBy,
		ApprovedAt:   approvedAt,
		PayPeriodID:  p.PayPeriodID,
	}
}
