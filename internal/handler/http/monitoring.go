package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MonitoringHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Enroll(w http.ResponseWriter, r *http.Request)
	RecordLeave(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
}

type monitoringHandlerImpl struct {
	automaton   monitoring.Automaton
	viewService dashboard.ViewService
}

func NewMonitoringHandler(automaton monitoring.Automaton, viewService dashboard.ViewService) MonitoringHandler {
	return &monitoringHandlerImpl{automaton: automaton, viewService: viewService}
}

// List implements MonitoringHandler.
func (h *monitoringHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.viewService.GetLeaveMonitoring(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Enroll implements MonitoringHandler.
func (h *monitoringHandlerImpl) Enroll(w http.ResponseWriter, r *http.Request) {
	var req monitoring.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.automaton.Enroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee enrolled in leave monitoring", result)
}

// RecordLeave implements MonitoringHandler.
func (h *monitoringHandlerImpl) RecordLeave(w http.ResponseWriter, r *http.Request) {
	var req monitoring.RecordLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.automaton.RecordLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave recorded", result)
}

// Recompute implements MonitoringHandler.
func (h *monitoringHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	result, err := h.automaton.Recompute(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
