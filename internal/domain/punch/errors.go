package punch

import "errors"

// Punch domain errors
var (
	ErrPunchNotFound    = errors.New("punch not found")
	ErrAlreadyClockedIn = errors.New("employee already has an open punch")
	ErrNotClockedIn     = errors.New("employee has no open punch")
	ErrClockOutBeforeIn = errors.New("clock-out must not be before clock-in")
)
