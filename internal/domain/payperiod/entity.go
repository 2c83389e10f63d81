package payperiod

import "time"

// Period types. Informational only: allocation logic does not change
// between weekly and biweekly periods.
const (
	TypeWeekly   = "weekly"
	TypeBiweekly = "biweekly"
)

// PayPeriod is a contiguous, inclusive date range payroll is approved
// and locked against.
type PayPeriod struct {
	ID         string
	StartDate  time.Time
	EndDate    time.Time
	PeriodType string
	IsLocked   bool
	OwnerID    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Contains reports whether a calendar day (truncated to date) falls
// inside the period.
func (p PayPeriod) Contains(day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	s := time.Date(p.StartDate.Year(), p.StartDate.Month(), p.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(p.EndDate.Year(), p.EndDate.Month(), p.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(s) && !d.After(e)
}

// CanEdit is the effective-edit predicate gating every punch mutation:
// edits pass while the period is unlocked, or when an admin has an
// active session override. Reads and aggregation are never gated.
func CanEdit(locked bool, isAdmin bool, overrideActive bool) bool {
	return !locked || (isAdmin && overrideActive)
}
