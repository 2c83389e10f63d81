package http

import (
	"encoding/json"
	"net/http"

	"github.com/lodgetrack/timeclock-backend/internal/domain/station"
	"github.com/lodgetrack/timeclock-backend/internal/handler/http/response"
)

type StationHandler interface {
	VerifyPIN(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
}

type stationHandlerImpl struct {
	stationService station.StationService
}

func NewStationHandler(stationService station.StationService) StationHandler {
	return &stationHandlerImpl{
		stationService: stationService,
	}
}

// VerifyPIN implements StationHandler.
func (h *stationHandlerImpl) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req station.VerifyPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.stationService.VerifyPIN(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ClockIn implements StationHandler.
func (h *stationHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req station.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.stationService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements StationHandler.
func (h *stationHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req station.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.stationService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}
