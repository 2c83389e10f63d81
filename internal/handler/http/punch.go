package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
	"github.com/lodgetrack/timeclock-backend/internal/handler/http/response"
)

type PunchHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	EditTimes(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Unapprove(w http.ResponseWriter, r *http.Request)
	Toggle(w http.ResponseWriter, r *http.Request)
	ApprovePayroll(w http.ResponseWriter, r *http.Request)
	ApproveEmployee(w http.ResponseWriter, r *http.Request)
	ApproveEmployeeDay(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
	}
}

// filterFromQuery builds a punch filter from list-style query params.
func filterFromQuery(r *http.Request) punch.Filter {
	q := r.URL.Query()

	var filter punch.Filter
	if ids, ok := q["property_id"]; ok {
		filter.PropertyIDs = ids
	}
	if v := q.Get("pay_period_id"); v != "" {
		filter.PayPeriodID = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}

	return filter
}

// List implements PunchHandler.
func (h *punchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.punchService.List(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements PunchHandler.
func (h *punchHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.punchService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EditTimes implements PunchHandler.
func (h *punchHandlerImpl) EditTimes(w http.ResponseWriter, r *http.Request) {
	var req punch.EditTimesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.punchService.EditTimes(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch times updated", result)
}

// Approve implements PunchHandler.
func (h *punchHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.punchService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch approved", result)
}

// Unapprove implements PunchHandler.
func (h *punchHandlerImpl) Unapprove(w http.ResponseWriter, r *http.Request) {
	result, err := h.punchService.Unapprove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch set back to pending", result)
}

// Toggle implements PunchHandler.
func (h *punchHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	result, err := h.punchService.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

type approvedCount struct {
	Approved int `json:"approved"`
}

// ApprovePayroll implements PunchHandler.
func (h *punchHandlerImpl) ApprovePayroll(w http.ResponseWriter, r *http.Request) {
	count, err := h.punchService.ApprovePayroll(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll approved", approvedCount{Approved: count})
}

// ApproveEmployee implements PunchHandler.
func (h *punchHandlerImpl) ApproveEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	count, err := h.punchService.ApproveEmployee(r.Context(), filterFromQuery(r), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee punches approved", approvedCount{Approved: count})
}

// ApproveEmployeeDay implements PunchHandler.
func (h *punchHandlerImpl) ApproveEmployeeDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	count, err := h.punchService.ApproveEmployeeDay(r.Context(), filterFromQuery(r), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day punches approved", approvedCount{Approved: count})
}

// Delete implements PunchHandler.
func (h *punchHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.punchService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch deleted", nil)
}
