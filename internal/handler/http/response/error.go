package response

import (
	"errors"
	"net/http"

	"github.com/lodgetrack/timeclock-backend/internal/domain/auth"
	"github.com/lodgetrack/timeclock-backend/internal/domain/employee"
	"github.com/lodgetrack/timeclock-backend/internal/domain/payperiod"
	"github.com/lodgetrack/timeclock-backend/internal/domain/property"
	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Punch domain errors
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "Punch not found")
	case errors.Is(err, punch.ErrAlreadyClockedIn):
		Conflict(w, "Employee already has an open punch")
	case errors.Is(err, punch.ErrNotClockedIn):
		Conflict(w, "Employee has no open punch")
	case errors.Is(err, punch.ErrClockOutBeforeIn):
		BadRequest(w, "Clock-out must not be before clock-in", nil)

	// Pay period domain errors
	case errors.Is(err, payperiod.ErrPayPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, payperiod.ErrPeriodLocked):
		Locked(w, "Pay period is locked")
	case errors.Is(err, payperiod.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)
	case errors.Is(err, payperiod.ErrInvalidPeriodType):
		BadRequest(w, "Invalid period type", nil)
	case errors.Is(err, payperiod.ErrPeriodOverlap):
		Conflict(w, "Pay period overlaps an existing period")

	// Employee / property domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidPIN):
		Unauthorized(w, "Invalid PIN")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, property.ErrPropertyNotFound):
		NotFound(w, "Property not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
