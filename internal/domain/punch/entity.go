package punch

import (
	"time"
)

// Status values for a punch.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Punch is one clock-in/clock-out interval for an employee at a property.
// ClockOut is nil while the employee is still clocked in.
type Punch struct {
	ID          string
	EmployeeID  string
	PropertyID  string
	ClockIn     time.Time
	ClockOut    *time.Time
	Status      string
	ApprovedBy  *string
	ApprovedAt  *time.Time
	PayPeriodID *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined labels, resolved by the repository.
	EmployeeName *string
	PropertyName *string
}

// IsOpen reports whether the punch has no clock-out yet.
func (p Punch) IsOpen() bool {
	return p.ClockOut == nil
}

// DayKey returns the calendar date of the clock-in in UTC, formatted
// YYYY-MM-DD. A punch spanning midnight belongs entirely to its start
// day.
func (p Punch) DayKey() string {
	return p.ClockIn.UTC().Format("2006-01-02")
}

// Duration returns the punch length in hours, clamped at zero. Open
// punches contribute nothing until closed.
func (p Punch) Duration() float64 {
	if p.ClockOut == nil {
		return 0
	}
	h := p.ClockOut.Sub(p.ClockIn).Hours()
	if h < 0 {
		return 0
	}
	return h
}
