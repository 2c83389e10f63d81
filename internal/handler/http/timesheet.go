package http

import (
	"net/http"

	"github.com/lodgetrack/timeclock-backend/internal/domain/timesheet"
	"github.com/lodgetrack/timeclock-backend/internal/handler/http/response"
)

type TimesheetHandler interface {
	Grid(w http.ResponseWriter, r *http.Request)
	Allocated(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Active(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

// Grid implements TimesheetHandler.
func (h *timesheetHandlerImpl) Grid(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.Grid(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Allocated implements TimesheetHandler.
func (h *timesheetHandlerImpl) Allocated(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.Allocated(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements TimesheetHandler.
func (h *timesheetHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.Export(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Active implements TimesheetHandler.
func (h *timesheetHandlerImpl) Active(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.Active(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
