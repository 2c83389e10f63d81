package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lodgetrack/timeclock-backend/internal/domain/payperiod"
	"github.com/lodgetrack/timeclock-backend/internal/handler/http/response"
)

type PayPeriodHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Lock(w http.ResponseWriter, r *http.Request)
	Unlock(w http.ResponseWriter, r *http.Request)
	SetOverride(w http.ResponseWriter, r *http.Request)
}

type payPeriodHandlerImpl struct {
	payPeriodService payperiod.PayPeriodService
}

func NewPayPeriodHandler(payPeriodService payperiod.PayPeriodService) PayPeriodHandler {
	return &payPeriodHandlerImpl{
		payPeriodService: payPeriodService,
	}
}

// Create implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payperiod.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payPeriodService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay period created", result)
}

// List implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Lock implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Lock(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.Lock(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay period locked", result)
}

// Unlock implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Unlock(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.Unlock(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay period unlocked", result)
}

type overrideRequest struct {
	Active bool `json:"active"`
}

// SetOverride implements PayPeriodHandler. Admin-only; the override is
// session-scoped and any period lock revokes it.
func (h *payPeriodHandlerImpl) SetOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.payPeriodService.SetOverride(r.Context(), req.Active); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Override updated", map[string]bool{"active": req.Active})
}
