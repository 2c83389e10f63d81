package http

import (
	"net/http"

	"github.com/lodgetrack/timeclock-backend/internal/domain/payroll"
	"github.com/lodgetrack/timeclock-backend/internal/handler/http/response"
)

type PayrollHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Dashboard implements PayrollHandler.
func (h *payrollHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Dashboard(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
