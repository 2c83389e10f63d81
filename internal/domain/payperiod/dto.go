package payperiod

import (
	"github.com/lodgetrack/timeclock-backend/internal/pkg/validator"
)

type CreateRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	PeriodType string `json:"period_type"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid YYYY-MM-DD date",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid YYYY-MM-DD date",
		})
	}
	if len(errs) > 0 {
		return errs
	}

	if start.After(end) {
		return ErrInvalidDateRange
	}
	if r.PeriodType != TypeWeekly && r.PeriodType != TypeBiweekly {
		return ErrInvalidPeriodType
	}
	return nil
}

type Response struct {
	ID         string `json:"id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	PeriodType string `json:"period_type"`
	IsLocked   bool   `json:"is_locked"`
}

func ToResponse(p PayPeriod) Response {
	return Response{
		ID:         p.ID,
		StartDate:  p.StartDate.Format("2006-01-02"),
		EndDate:    p.EndDate.Format("2006-01-02"),
		PeriodType: p.PeriodType,
		IsLocked:   p.IsLocked,
	}
}
