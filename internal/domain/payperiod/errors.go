package payperiod

import "errors"

// Pay period domain errors
var (
	ErrPayPeriodNotFound = errors.New("pay period not found")
	ErrPeriodLocked      = errors.New("pay period is locked")
	ErrInvalidDateRange  = errors.New("start date must not be after end date")
	ErrInvalidPeriodType = errors.New("period type must be weekly or biweekly")
	ErrPeriodOverlap     = errors.New("pay period overlaps an existing period")
)
