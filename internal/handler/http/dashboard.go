package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

type DashboardHandler interface {
	GetDaily(w http.ResponseWriter, r *http.Request)
	GetRosterAttendance(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	viewService dashboard.ViewService
	clock       clock.Clock
}

func NewDashboardHandler(viewService dashboard.ViewService, clk clock.Clock) DashboardHandler {
	return &dashboardHandlerImpl{viewService: viewService, clock: clk}
}

// GetDaily implements DashboardHandler.
func (h *dashboardHandlerImpl) GetDaily(w http.ResponseWriter, r *http.Request) {
	date, ok := getDateQueryParam(r, h.clock)
	if !ok {
		response.BadRequest(w, "date must be YYYY-MM-DD", nil)
		return
	}

	result, err := h.viewService.GetDailyDashboard(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetRosterAttendance implements DashboardHandler.
func (h *dashboardHandlerImpl) GetRosterAttendance(w http.ResponseWriter, r *http.Request) {
	date, ok := getDateQueryParam(r, h.clock)
	if !ok {
		response.BadRequest(w, "date must be YYYY-MM-DD", nil)
		return
	}

	result, err := h.viewService.GetRosterAttendance(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
