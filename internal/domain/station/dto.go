package station

import (
	"github.com/lodgetrack/timeclock-backend/internal/pkg/validator"
)

type VerifyPINRequest struct {
	PropertyID string `json:"property_id"`
	PIN        string `json:"pin"`
}

func (r *VerifyPINRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PropertyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "property_id",
			Message: "property_id is required",
		})
	}

	if len(r.PIN) != 4 || !validator.IsNumeric(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be exactly 4 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// VerifyPINResponse identifies the employee behind a PIN and their open
// punch, if the employee is currently clocked in.
type VerifyPINResponse struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	PropertyName string  `json:"property_name"`
	ActivePunch  *Active `json:"active_punch,omitempty"`
}

type Active struct {
	PunchID string `json:"punch_id"`
	ClockIn string `json:"clock_in"`
}

type ClockRequest struct {
	PropertyID string `json:"property_id"`
	EmployeeID string `json:"employee_id"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PropertyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "property_id",
			Message: "property_id is required",
		})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
